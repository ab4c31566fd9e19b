package cashdesk

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/cashbox"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// MockRegisterRepository is a mock implementation of cashbox.RegisterRepository
type MockRegisterRepository struct {
	mock.Mock
}

func (m *MockRegisterRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashbox.Register, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashbox.Register), args.Error(1)
}

func (m *MockRegisterRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*cashbox.Register, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashbox.Register), args.Error(1)
}

func (m *MockRegisterRepository) Save(ctx context.Context, r *cashbox.Register) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRegisterRepository) SaveWithLock(ctx context.Context, r *cashbox.Register) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of cashbox.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *cashbox.CashTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByRegister(ctx context.Context, businessID, registerID uuid.UUID, filter cashbox.TransactionFilter) ([]cashbox.CashTransaction, error) {
	args := m.Called(ctx, businessID, registerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cashbox.CashTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByRegisterAndDay(ctx context.Context, businessID, registerID uuid.UUID, day time.Time) ([]cashbox.CashTransaction, error) {
	args := m.Called(ctx, businessID, registerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cashbox.CashTransaction), args.Error(1)
}

func newCashFixture() (*MockRegisterRepository, *MockTransactionRepository, *CashService) {
	registerRepo := new(MockRegisterRepository)
	transactionRepo := new(MockTransactionRepository)
	service := NewCashService(registerRepo, transactionRepo, shared.NoopTransactionManager{}, zap.NewNop())
	return registerRepo, transactionRepo, service
}

func testRegister(t *testing.T, businessID uuid.UUID) *cashbox.Register {
	r, err := cashbox.NewRegister(businessID, "front desk")
	require.NoError(t, err)
	return r
}

func TestCashService_RecordTransaction(t *testing.T) {
	registerRepo, transactionRepo, service := newCashFixture()
	businessID := uuid.New()
	register := testRegister(t, businessID)

	registerRepo.On("FindByIDForBusiness", mock.Anything, businessID, register.ID).Return(register, nil)
	registerRepo.On("SaveWithLock", mock.Anything, register).Return(nil)
	transactionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.RecordTransaction(context.Background(), businessID, register.ID, RecordTransactionRequest{
		TransactionType: cashbox.TransactionTypeTip,
		Amount:          d("20"),
		ActorID:         uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, cashbox.DirectionIncrease, resp.Direction)
	assert.True(t, resp.PreviousBalance.IsZero())
	assert.True(t, d("20").Equal(resp.NewBalance))
	assert.True(t, d("20").Equal(register.Balance))
}

func TestCashService_RecordTransactionInsufficientBalance(t *testing.T) {
	registerRepo, transactionRepo, service := newCashFixture()
	businessID := uuid.New()
	register := testRegister(t, businessID)

	registerRepo.On("FindByIDForBusiness", mock.Anything, businessID, register.ID).Return(register, nil)

	_, err := service.RecordTransaction(context.Background(), businessID, register.ID, RecordTransactionRequest{
		TransactionType: cashbox.TransactionTypeChange,
		Amount:          d("50"),
	})
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInsufficientBalance, de.Code)

	registerRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCashService_RecordTransactionConflictPropagates(t *testing.T) {
	registerRepo, transactionRepo, service := newCashFixture()
	businessID := uuid.New()
	register := testRegister(t, businessID)

	conflict := shared.NewDomainError(shared.CodeConcurrencyConflict, "Register was modified concurrently")
	registerRepo.On("FindByIDForBusiness", mock.Anything, businessID, register.ID).Return(register, nil)
	registerRepo.On("SaveWithLock", mock.Anything, register).Return(conflict)

	_, err := service.RecordTransaction(context.Background(), businessID, register.ID, RecordTransactionRequest{
		TransactionType: cashbox.TransactionTypeTip,
		Amount:          d("10"),
	})
	require.Error(t, err)
	assert.True(t, shared.IsRetryable(err))
	transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCashService_GetDaySummary(t *testing.T) {
	registerRepo, transactionRepo, service := newCashFixture()
	businessID := uuid.New()
	register := testRegister(t, businessID)
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	var transactions []cashbox.CashTransaction
	for _, step := range []struct {
		txType cashbox.TransactionType
		dir    cashbox.Direction
		amount string
	}{
		{cashbox.TransactionTypeTip, cashbox.DirectionDefault, "100"},
		{cashbox.TransactionTypeChange, cashbox.DirectionDefault, "30"},
	} {
		tx, err := register.ApplyTransaction(step.txType, step.dir,
			valueobject.NewMoneyUSD(d(step.amount)), uuid.Nil, "")
		require.NoError(t, err)
		transactions = append(transactions, *tx)
	}

	registerRepo.On("FindByIDForBusiness", mock.Anything, businessID, register.ID).Return(register, nil)
	transactionRepo.On("FindByRegisterAndDay", mock.Anything, businessID, register.ID, day).Return(transactions, nil)

	resp, err := service.GetDaySummary(context.Background(), businessID, register.ID, day)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", resp.Day)
	assert.Equal(t, 2, resp.TransactionCount)
	assert.True(t, resp.OpeningBalance.IsZero())
	assert.True(t, d("70").Equal(resp.ClosingBalance))
	assert.True(t, d("100").Equal(resp.TotalsByType["TIP"]))
	assert.True(t, d("-30").Equal(resp.TotalsByType["CHANGE"]))
}
