package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/ledger"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerRepository implements ledger.Repository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a ledger account by its ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.LedgerAccountModel
	if err := r.conn(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForBusiness finds a ledger account by ID for a specific business
func (r *GormLedgerRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*ledger.Account, error) {
	var model models.LedgerAccountModel
	if err := r.conn(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrigin finds the account spawned by an origin document
func (r *GormLedgerRepository) FindByOrigin(ctx context.Context, businessID uuid.UUID, originType ledger.OriginType, originID uuid.UUID) (*ledger.Account, error) {
	var model models.LedgerAccountModel
	if err := r.conn(ctx).
		Where("business_id = ? AND origin_type = ? AND origin_id = ?", businessID, originType, originID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness finds ledger accounts for a business with filtering
func (r *GormLedgerRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter ledger.Filter) ([]ledger.Account, error) {
	var accountModels []models.LedgerAccountModel
	query := r.conn(ctx).Model(&models.LedgerAccountModel{}).
		Where("business_id = ?", businessID)

	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *filter.CounterpartyID)
	}
	if filter.Overdue != nil && *filter.Overdue {
		query = query.Where("due_date < ? AND status IN ?", time.Now(),
			[]ledger.AccountStatus{ledger.StatusPending, ledger.StatusPartial})
	}
	query = applyPaging(query, filter.Filter)

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Save creates or updates a ledger account
func (r *GormLedgerRepository) Save(ctx context.Context, a *ledger.Account) error {
	model := models.LedgerAccountModelFromDomain(a)
	if err := r.conn(ctx).Save(model).Error; err != nil {
		return err
	}
	a.MarkLoaded()
	return nil
}

// SaveWithLock saves with optimistic locking. Payment application rewrites
// the whole payment sequence, so a stale version must never win. The row is
// matched against the version the account was loaded with.
func (r *GormLedgerRepository) SaveWithLock(ctx context.Context, a *ledger.Account) error {
	model := models.LedgerAccountModelFromDomain(a)
	result := r.conn(ctx).
		Model(&models.LedgerAccountModel{}).
		Where("id = ? AND version = ?", a.ID, a.LoadedVersion()).
		Updates(map[string]interface{}{
			"paid_amount":       model.PaidAmount,
			"pending_amount":    model.PendingAmount,
			"status":            model.Status,
			"due_date":          model.DueDate,
			"payments":          model.Payments,
			"last_payment_date": model.LastPaymentDate,
			"remark":            model.Remark,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"The ledger account has been modified by another transaction")
	}
	a.MarkLoaded()
	return nil
}

// Ensure GormLedgerRepository implements ledger.Repository
var _ ledger.Repository = (*GormLedgerRepository)(nil)
