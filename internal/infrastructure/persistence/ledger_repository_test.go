package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/ledger"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/staff"
	"github.com/salonkit/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.LedgerAccountModel{}, &models.PersonModel{})
	require.NoError(t, err)

	return db
}

func newTestReceivable(t *testing.T, businessID uuid.UUID) *ledger.Account {
	t.Helper()
	a, err := ledger.CreateFromOrigin(
		businessID,
		"AR-000001",
		ledger.KindReceivable,
		uuid.New(),
		ledger.OriginSale,
		uuid.New(),
		money("150.00"),
		nil,
	)
	require.NoError(t, err)
	return a
}

func TestLedgerRepository_SaveAndFindByOrigin(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormLedgerRepository(db)
	ctx := context.Background()
	businessID := uuid.New()

	a := newTestReceivable(t, businessID)
	require.NoError(t, repo.Save(ctx, a))

	found, err := repo.FindByOrigin(ctx, businessID, ledger.OriginSale, a.OriginID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)
	assert.Equal(t, ledger.KindReceivable, found.Kind)
	assert.Equal(t, ledger.StatusPending, found.Status)
	assert.True(t, found.TotalAmount.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, found.PendingAmount.Equal(decimal.RequireFromString("150.00")))
	assert.Empty(t, found.Payments)

	_, err = repo.FindByOrigin(ctx, businessID, ledger.OriginSale, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLedgerRepository_SaveWithLock(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormLedgerRepository(db)
	ctx := context.Background()
	businessID := uuid.New()

	a := newTestReceivable(t, businessID)
	require.NoError(t, repo.Save(ctx, a))

	t.Run("persists an applied payment", func(t *testing.T) {
		loaded, err := repo.FindByIDForBusiness(ctx, businessID, a.ID)
		require.NoError(t, err)

		_, err = loaded.AddPayment(money("50.00"), ledger.MethodCash, uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.StatusPartial, found.Status)
		assert.True(t, found.PaidAmount.Equal(decimal.RequireFromString("50.00")))
		assert.True(t, found.PendingAmount.Equal(decimal.RequireFromString("100.00")))
		require.Len(t, found.Payments, 1)
		assert.Equal(t, ledger.MethodCash, found.Payments[0].Method)
		assert.NotNil(t, found.LastPaymentDate)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		first, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)

		_, err = first.AddPayment(money("100.00"), ledger.MethodCard, uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, first))

		_, err = second.AddPayment(money("25.00"), ledger.MethodCash, uuid.New())
		require.NoError(t, err)
		err = repo.SaveWithLock(ctx, second)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeConcurrencyConflict, de.Code)
		assert.True(t, shared.IsRetryable(err))

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.StatusPaid, found.Status)
		require.Len(t, found.Payments, 2)
	})
}

func TestLedgerRepository_FindAllForBusiness(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormLedgerRepository(db)
	ctx := context.Background()
	businessID := uuid.New()

	receivable := newTestReceivable(t, businessID)
	require.NoError(t, repo.Save(ctx, receivable))

	payable, err := ledger.CreateFromOrigin(
		businessID,
		"AP-000001",
		ledger.KindPayable,
		uuid.New(),
		ledger.OriginPurchaseInvoice,
		uuid.New(),
		money("80.00"),
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, payable))

	kind := ledger.KindPayable
	found, err := repo.FindAllForBusiness(ctx, businessID, ledger.Filter{
		Filter: shared.DefaultFilter(),
		Kind:   &kind,
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "AP-000001", found[0].AccountNumber)
}

func TestPersonRepository_FindActiveExpert(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormPersonRepository(db)
	ctx := context.Background()
	businessID := uuid.New()

	expert, err := staff.NewExpert(businessID, "Dana", staff.CommissionConfig{
		ServicePercent:    decimal.RequireFromString("25"),
		RetailPercent:     decimal.RequireFromString("15"),
		CalculationMethod: staff.CalculationAfterInputs,
		MinimumService:    decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(models.PersonModelFromDomain(expert)).Error)

	t.Run("returns the active expert with config", func(t *testing.T) {
		found, err := repo.FindActiveExpert(ctx, businessID, expert.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dana", found.Name)
		assert.True(t, found.IsActiveExpert())

		cfg, err := found.ExpertConfig()
		require.NoError(t, err)
		assert.True(t, cfg.ServicePercent.Equal(decimal.RequireFromString("25")))
		assert.Equal(t, staff.CalculationAfterInputs, cfg.CalculationMethod)
	})

	t.Run("misses inactive experts", func(t *testing.T) {
		expert.Deactivate()
		require.NoError(t, db.Save(models.PersonModelFromDomain(expert)).Error)

		_, err := repo.FindActiveExpert(ctx, businessID, expert.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("misses other businesses", func(t *testing.T) {
		_, err := repo.FindActiveExpert(ctx, uuid.New(), expert.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
