package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/salonkit/backend/internal/domain/ledger"
	"github.com/salonkit/backend/internal/domain/sale"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// MockSaleRepository is a mock implementation of sale.Repository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*sale.Sale, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter sale.Filter) ([]sale.Sale, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockPersonRepository is a mock implementation of staff.PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*staff.Person, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Person), args.Error(1)
}

func (m *MockPersonRepository) FindActiveExpert(ctx context.Context, businessID, id uuid.UUID) (*staff.Person, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Person), args.Error(1)
}

// MockCommissionRepository is a mock implementation of commission.Repository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*commission.Commission, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindBySale(ctx context.Context, businessID, saleID uuid.UUID) ([]commission.Commission, error) {
	args := m.Called(ctx, businessID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindByExpert(ctx context.Context, businessID, expertID uuid.UUID, filter commission.Filter) ([]commission.Commission, error) {
	args := m.Called(ctx, businessID, expertID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) Save(ctx context.Context, c *commission.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommissionRepository) SaveWithLock(ctx context.Context, c *commission.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommissionRepository) CreateBatch(ctx context.Context, commissions []*commission.Commission) error {
	args := m.Called(ctx, commissions)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of ledger.Repository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockLedgerRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockLedgerRepository) FindByOrigin(ctx context.Context, businessID uuid.UUID, originType ledger.OriginType, originID uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, businessID, originType, originID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockLedgerRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter ledger.Filter) ([]ledger.Account, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, a *ledger.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveWithLock(ctx context.Context, a *ledger.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockSequenceGenerator is a mock implementation of shared.SequenceGenerator
type MockSequenceGenerator struct {
	mock.Mock
}

func (m *MockSequenceGenerator) Next(ctx context.Context, businessID uuid.UUID, name string) (int64, error) {
	args := m.Called(ctx, businessID, name)
	return args.Get(0).(int64), args.Error(1)
}

type closeFixture struct {
	saleRepo       *MockSaleRepository
	personRepo     *MockPersonRepository
	commissionRepo *MockCommissionRepository
	ledgerRepo     *MockLedgerRepository
	sequences      *MockSequenceGenerator
	service        *CloseSaleService
}

func newCloseFixture() *closeFixture {
	f := &closeFixture{
		saleRepo:       new(MockSaleRepository),
		personRepo:     new(MockPersonRepository),
		commissionRepo: new(MockCommissionRepository),
		ledgerRepo:     new(MockLedgerRepository),
		sequences:      new(MockSequenceGenerator),
	}
	f.service = NewCloseSaleService(
		f.saleRepo, f.personRepo, f.commissionRepo, f.ledgerRepo,
		f.sequences, shared.NoopTransactionManager{}, zap.NewNop(),
	)
	return f
}

func testExpert(t *testing.T, businessID uuid.UUID) *staff.Person {
	expert, err := staff.NewExpert(businessID, "Ana", staff.CommissionConfig{
		ServicePercent:    d("25"),
		RetailPercent:     d("15"),
		CalculationMethod: staff.CalculationAfterInputs,
		MinimumService:    d("10"),
	})
	require.NoError(t, err)
	return expert
}

func inProcessSale(t *testing.T, businessID, expertID uuid.UUID) *sale.Sale {
	s, err := sale.NewSale(businessID, "S-000001", uuid.New())
	require.NoError(t, err)

	dye, err := sale.NewInputCost("color dye", d("40"))
	require.NoError(t, err)
	service, err := sale.NewServiceLine(s.ID, expertID, "color treatment", d("120"), []sale.InputCost{dye})
	require.NoError(t, err)
	require.NoError(t, s.AddItem(service))

	retail, err := sale.NewRetailLine(s.ID, expertID, "shampoo", d("30"))
	require.NoError(t, err)
	require.NoError(t, s.AddItem(retail))

	require.NoError(t, s.StartProcessing(""))
	s.ClearDomainEvents()
	return s
}

func TestCloseSaleService_Close(t *testing.T) {
	f := newCloseFixture()
	businessID := uuid.New()
	expert := testExpert(t, businessID)
	s := inProcessSale(t, businessID, expert.ID)

	f.saleRepo.On("FindByIDForBusiness", mock.Anything, businessID, s.ID).Return(s, nil)
	f.personRepo.On("FindActiveExpert", mock.Anything, businessID, expert.ID).Return(expert, nil).Once()
	f.sequences.On("Next", mock.Anything, businessID, shared.SequenceInvoice).Return(int64(1001), nil)
	f.sequences.On("Next", mock.Anything, businessID, shared.SequenceAccount).Return(int64(7), nil)
	f.saleRepo.On("SaveWithLock", mock.Anything, s).Return(nil)
	f.commissionRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.ledgerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Close(context.Background(), businessID, s.ID, CloseSaleRequest{ActorID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, sale.StatusClosed, resp.Sale.Status)
	require.NotNil(t, resp.Sale.InvoiceNumber)
	assert.Equal(t, int64(1001), *resp.Sale.InvoiceNumber)

	require.Len(t, resp.Commissions, 2)
	byType := map[commission.LineType]CommissionResponse{}
	for _, c := range resp.Commissions {
		byType[c.LineType] = c
	}
	// Service: (120 - 40) * 25% = 20.00, above the 10 minimum
	assert.True(t, d("20.00").Equal(byType[commission.LineTypeService].CommissionAmount))
	assert.True(t, d("80").Equal(byType[commission.LineTypeService].BaseAmount))
	// Retail: 30 * 15% = 4.50, no clamping
	assert.True(t, d("4.50").Equal(byType[commission.LineTypeRetail].CommissionAmount))

	// Receivable opened for the sale total
	f.ledgerRepo.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(a *ledger.Account) bool {
		return a.Kind == ledger.KindReceivable &&
			a.OriginType == ledger.OriginSale &&
			a.OriginID == s.ID &&
			a.TotalAmount.Equal(d("150")) &&
			a.AccountNumber == "AR-000007"
	}))

	// The expert appears on both lines but is fetched once
	f.personRepo.AssertNumberOfCalls(t, "FindActiveExpert", 1)
}

func TestCloseSaleService_CloseFromOpenFails(t *testing.T) {
	f := newCloseFixture()
	businessID := uuid.New()
	expert := testExpert(t, businessID)

	s, err := sale.NewSale(businessID, "S-000002", uuid.New())
	require.NoError(t, err)
	retail, err := sale.NewRetailLine(s.ID, expert.ID, "shampoo", d("30"))
	require.NoError(t, err)
	require.NoError(t, s.AddItem(retail))

	f.saleRepo.On("FindByIDForBusiness", mock.Anything, businessID, s.ID).Return(s, nil)

	_, err = f.service.Close(context.Background(), businessID, s.ID, CloseSaleRequest{})
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeSaleNotClosable, de.Code)

	// Nothing downstream runs: no invoice number burned, nothing saved
	f.sequences.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
	f.saleRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	f.commissionRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestCloseSaleService_CloseEmptySaleFails(t *testing.T) {
	f := newCloseFixture()
	businessID := uuid.New()

	s, err := sale.NewSale(businessID, "S-000003", uuid.New())
	require.NoError(t, err)
	require.NoError(t, s.StartProcessing(""))

	f.saleRepo.On("FindByIDForBusiness", mock.Anything, businessID, s.ID).Return(s, nil)

	_, err = f.service.Close(context.Background(), businessID, s.ID, CloseSaleRequest{})
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeSaleNotClosable, de.Code)
}

func TestCloseSaleService_InactiveExpertFailsWholeClose(t *testing.T) {
	f := newCloseFixture()
	businessID := uuid.New()
	expert := testExpert(t, businessID)
	s := inProcessSale(t, businessID, expert.ID)

	f.saleRepo.On("FindByIDForBusiness", mock.Anything, businessID, s.ID).Return(s, nil)
	f.personRepo.On("FindActiveExpert", mock.Anything, businessID, expert.ID).
		Return(nil, shared.ErrNotFound)

	_, err := f.service.Close(context.Background(), businessID, s.ID, CloseSaleRequest{})
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeSaleNotClosable, de.Code)

	assert.Equal(t, sale.StatusInProcess, s.Status, "sale must stay in-process")
	f.commissionRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCloseSaleService_InvalidConfigFailsWholeClose(t *testing.T) {
	f := newCloseFixture()
	businessID := uuid.New()
	expert := testExpert(t, businessID)
	// Config drifted out of range after creation
	expert.CommissionConfig.ServicePercent = d("150")
	s := inProcessSale(t, businessID, expert.ID)

	f.saleRepo.On("FindByIDForBusiness", mock.Anything, businessID, s.ID).Return(s, nil)
	f.personRepo.On("FindActiveExpert", mock.Anything, businessID, expert.ID).Return(expert, nil)

	_, err := f.service.Close(context.Background(), businessID, s.ID, CloseSaleRequest{})
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInvalidCommissionConfig, de.Code)
	f.commissionRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestCloseSaleService_ConcurrencyConflictPropagates(t *testing.T) {
	f := newCloseFixture()
	businessID := uuid.New()
	expert := testExpert(t, businessID)
	s := inProcessSale(t, businessID, expert.ID)

	conflict := shared.NewDomainError(shared.CodeConcurrencyConflict, "Sale was modified concurrently")

	f.saleRepo.On("FindByIDForBusiness", mock.Anything, businessID, s.ID).Return(s, nil)
	f.personRepo.On("FindActiveExpert", mock.Anything, businessID, expert.ID).Return(expert, nil)
	f.sequences.On("Next", mock.Anything, businessID, mock.Anything).Return(int64(1), nil)
	f.saleRepo.On("SaveWithLock", mock.Anything, s).Return(conflict)

	_, err := f.service.Close(context.Background(), businessID, s.ID, CloseSaleRequest{})
	require.Error(t, err)
	assert.True(t, shared.IsRetryable(err))

	f.commissionRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}
