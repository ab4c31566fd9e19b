package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommissionRepository implements commission.Repository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

func (r *GormCommissionRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a commission by its ID
func (r *GormCommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	var model models.CommissionModel
	if err := r.conn(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForBusiness finds a commission by ID for a specific business
func (r *GormCommissionRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*commission.Commission, error) {
	var model models.CommissionModel
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

// FindBySale finds all commissions created for a sale
func (r *GormCommissionRepository) FindBySale(ctx context.Context, businessID, saleID uuid.UUID) ([]commission.Commission, error) {
	var commissionModels []models.CommissionModel
	if err := r.conn(ctx).
		Where("business_id = ? AND sale_id = ?", businessID, saleID).
		Order("created_at ASC").
		Find(&commissionModels).Error; err != nil {
		return nil, err
	}
	return toDomainCommissions(commissionModels), nil
}

// FindByExpert finds commissions for an expert with filtering
func (r *GormCommissionRepository) FindByExpert(ctx context.Context, businessID, expertID uuid.UUID, filter commission.Filter) ([]commission.Commission, error) {
	var commissionModels []models.CommissionModel
	query := r.conn(ctx).Model(&models.CommissionModel{}).
		Where("business_id = ? AND expert_id = ?", businessID, expertID)

	if filter.SaleID != nil {
		query = query.Where("sale_id = ?", *filter.SaleID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.LineType != nil {
		query = query.Where("line_type = ?", *filter.LineType)
	}
	query = applyPaging(query, filter.Filter)

	if err := query.Find(&commissionModels).Error; err != nil {
		return nil, err
	}
	return toDomainCommissions(commissionModels), nil
}

// Save creates or updates a commission
func (r *GormCommissionRepository) Save(ctx context.Context, c *commission.Commission) error {
	model := models.CommissionModelFromDomain(c)
	if err := r.conn(ctx).Save(model).Error; err != nil {
		return err
	}
	c.MarkLoaded()
	return nil
}

// SaveWithLock saves with optimistic locking. The row is matched against the
// version the commission was loaded with.
func (r *GormCommissionRepository) SaveWithLock(ctx context.Context, c *commission.Commission) error {
	model := models.CommissionModelFromDomain(c)
	result := r.conn(ctx).
		Model(&models.CommissionModel{}).
		Where("id = ? AND version = ?", c.ID, c.LoadedVersion()).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"paid_at":       model.PaidAt,
			"cancelled_at":  model.CancelledAt,
			"cancel_reason": model.CancelReason,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"The commission has been modified by another transaction")
	}
	c.MarkLoaded()
	return nil
}

// CreateBatch persists a set of commissions atomically
func (r *GormCommissionRepository) CreateBatch(ctx context.Context, commissions []*commission.Commission) error {
	if len(commissions) == 0 {
		return nil
	}
	commissionModels := make([]models.CommissionModel, len(commissions))
	for i, c := range commissions {
		commissionModels[i] = *models.CommissionModelFromDomain(c)
	}
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&commissionModels).Error
	})
	if err != nil {
		return err
	}
	for _, c := range commissions {
		c.MarkLoaded()
	}
	return nil
}

func toDomainCommissions(commissionModels []models.CommissionModel) []commission.Commission {
	commissions := make([]commission.Commission, len(commissionModels))
	for i, model := range commissionModels {
		commissions[i] = *model.ToDomain()
	}
	return commissions
}

// Ensure GormCommissionRepository implements commission.Repository
var _ commission.Repository = (*GormCommissionRepository)(nil)
