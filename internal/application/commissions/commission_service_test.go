package commissions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

func newTestCommission(t *testing.T, businessID uuid.UUID) *commission.Commission {
	t.Helper()
	c, err := commission.NewCommission(businessID, uuid.New(), uuid.New(),
		commission.LineInput{
			LineItemID:  uuid.New(),
			LineType:    commission.LineTypeService,
			GrossAmount: decimal.RequireFromString("120.00"),
			InputCosts:  decimal.RequireFromString("20.00"),
		},
		commission.Result{
			BaseAmount:  decimal.RequireFromString("120.00"),
			InputCosts:  decimal.RequireFromString("20.00"),
			NetAmount:   decimal.RequireFromString("100.00"),
			AppliedRate: decimal.RequireFromString("25"),
			Amount:      decimal.RequireFromString("25.00"),
		},
	)
	require.NoError(t, err)
	return c
}

func TestCommissionService_GetByID_NotFound(t *testing.T) {
	repo := new(MockCommissionRepository)
	service := NewCommissionService(repo, zap.NewNop())

	businessID := uuid.New()
	unknownID := uuid.New()

	repo.On("FindByIDForBusiness", mock.Anything, businessID, unknownID).Return(nil, shared.ErrNotFound)

	_, err := service.GetByID(context.Background(), businessID, unknownID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCommissionService_MarkPaid(t *testing.T) {
	repo := new(MockCommissionRepository)
	service := NewCommissionService(repo, zap.NewNop())

	businessID := uuid.New()
	pending := newTestCommission(t, businessID)

	repo.On("FindByIDForBusiness", mock.Anything, businessID, pending.ID).Return(pending, nil)
	repo.On("SaveWithLock", mock.Anything, pending).Return(nil)

	resp, err := service.MarkPaid(context.Background(), businessID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, commission.StatusPaid, resp.Status)
	assert.NotNil(t, resp.PaidAt)
	repo.AssertExpectations(t)
}

func TestCommissionService_MarkPaid_AlreadyTerminal(t *testing.T) {
	repo := new(MockCommissionRepository)
	service := NewCommissionService(repo, zap.NewNop())

	businessID := uuid.New()
	paid := newTestCommission(t, businessID)
	require.NoError(t, paid.MarkPaid())

	repo.On("FindByIDForBusiness", mock.Anything, businessID, paid.ID).Return(paid, nil)

	_, err := service.MarkPaid(context.Background(), businessID, paid.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestCommissionService_Cancel(t *testing.T) {
	repo := new(MockCommissionRepository)
	service := NewCommissionService(repo, zap.NewNop())

	businessID := uuid.New()
	pending := newTestCommission(t, businessID)

	repo.On("FindByIDForBusiness", mock.Anything, businessID, pending.ID).Return(pending, nil)
	repo.On("SaveWithLock", mock.Anything, pending).Return(nil)

	resp, err := service.Cancel(context.Background(), businessID, pending.ID, CancelRequest{Reason: "sale reversed"})
	require.NoError(t, err)
	assert.Equal(t, commission.StatusCancelled, resp.Status)
	assert.Equal(t, "sale reversed", resp.CancelReason)
}

func TestCommissionService_ListByExpert_AppliesPaging(t *testing.T) {
	repo := new(MockCommissionRepository)
	service := NewCommissionService(repo, zap.NewNop())

	businessID := uuid.New()
	expertID := uuid.New()
	status := commission.StatusPending

	repo.On("FindByExpert", mock.Anything, businessID, expertID,
		mock.MatchedBy(func(f commission.Filter) bool {
			return f.Page == 2 && f.PageSize == 10 && f.Status != nil && *f.Status == status
		})).Return([]commission.Commission{}, nil)

	_, err := service.ListByExpert(context.Background(), businessID, expertID, ListFilter{
		Page:     2,
		PageSize: 10,
		Status:   &status,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
