package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/cashbox"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCashRegisterRepository implements cashbox.RegisterRepository using GORM
type GormCashRegisterRepository struct {
	db *gorm.DB
}

// NewGormCashRegisterRepository creates a new GormCashRegisterRepository
func NewGormCashRegisterRepository(db *gorm.DB) *GormCashRegisterRepository {
	return &GormCashRegisterRepository{db: db}
}

func (r *GormCashRegisterRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a register by its ID
func (r *GormCashRegisterRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashbox.Register, error) {
	var model models.CashRegisterModel
	if err := r.conn(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForBusiness finds a register by ID for a specific business
func (r *GormCashRegisterRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*cashbox.Register, error) {
	var model models.CashRegisterModel
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

// Save creates or updates a register
func (r *GormCashRegisterRepository) Save(ctx context.Context, reg *cashbox.Register) error {
	model := models.CashRegisterModelFromDomain(reg)
	if err := r.conn(ctx).Save(model).Error; err != nil {
		return err
	}
	reg.MarkLoaded()
	return nil
}

// SaveWithLock saves with optimistic locking. The running balance is
// read-modify-write state, so concurrent drawers lose instead of clobbering.
// The row is matched against the version the register was loaded with.
func (r *GormCashRegisterRepository) SaveWithLock(ctx context.Context, reg *cashbox.Register) error {
	model := models.CashRegisterModelFromDomain(reg)
	result := r.conn(ctx).
		Model(&models.CashRegisterModel{}).
		Where("id = ? AND version = ?", reg.ID, reg.LoadedVersion()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"balance":    model.Balance,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"The register has been modified by another transaction")
	}
	reg.MarkLoaded()
	return nil
}

// Ensure GormCashRegisterRepository implements cashbox.RegisterRepository
var _ cashbox.RegisterRepository = (*GormCashRegisterRepository)(nil)

// GormCashTransactionRepository implements cashbox.TransactionRepository
// using GORM. The table is append-only; there is no update path.
type GormCashTransactionRepository struct {
	db *gorm.DB
}

// NewGormCashTransactionRepository creates a new GormCashTransactionRepository
func NewGormCashTransactionRepository(db *gorm.DB) *GormCashTransactionRepository {
	return &GormCashTransactionRepository{db: db}
}

func (r *GormCashTransactionRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// Create appends a transaction entry
func (r *GormCashTransactionRepository) Create(ctx context.Context, tx *cashbox.CashTransaction) error {
	model := models.CashTransactionModelFromDomain(tx)
	return r.conn(ctx).Create(model).Error
}

// FindByRegister finds transactions for a register with filtering
func (r *GormCashTransactionRepository) FindByRegister(ctx context.Context, businessID, registerID uuid.UUID, filter cashbox.TransactionFilter) ([]cashbox.CashTransaction, error) {
	var txModels []models.CashTransactionModel
	query := r.conn(ctx).Model(&models.CashTransactionModel{}).
		Where("business_id = ? AND register_id = ?", businessID, registerID)

	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}
	query = applyPaging(query, filter.Filter)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toDomainCashTransactions(txModels), nil
}

// FindByRegisterAndDay finds a register's transactions within one calendar
// day, ordered by transaction date ascending
func (r *GormCashTransactionRepository) FindByRegisterAndDay(ctx context.Context, businessID, registerID uuid.UUID, day time.Time) ([]cashbox.CashTransaction, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var txModels []models.CashTransactionModel
	if err := r.conn(ctx).
		Where("business_id = ? AND register_id = ? AND transaction_date >= ? AND transaction_date < ?",
			businessID, registerID, start, end).
		Order("transaction_date ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toDomainCashTransactions(txModels), nil
}

func toDomainCashTransactions(txModels []models.CashTransactionModel) []cashbox.CashTransaction {
	transactions := make([]cashbox.CashTransaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions
}

// Ensure GormCashTransactionRepository implements cashbox.TransactionRepository
var _ cashbox.TransactionRepository = (*GormCashTransactionRepository)(nil)
