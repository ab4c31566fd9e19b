package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/sale"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements sale.Repository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	var model models.SaleModel
	if err := r.conn(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForBusiness finds a sale by ID for a specific business
func (r *GormSaleRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*sale.Sale, error) {
	var model models.SaleModel
	if err := r.conn(ctx).
		Preload("Items").
		Where("business_id = ? AND id = ?", businessID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness finds sales for a business with filtering
func (r *GormSaleRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter sale.Filter) ([]sale.Sale, error) {
	var saleModels []models.SaleModel
	query := r.conn(ctx).Model(&models.SaleModel{}).
		Preload("Items").
		Where("business_id = ?", businessID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = applyPaging(query, filter.Filter)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	sales := make([]sale.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// Save creates or updates a sale together with its line items
func (r *GormSaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	model := models.SaleModelFromDomain(s)
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		return saveSaleItems(tx, model.Items)
	})
	if err != nil {
		return err
	}
	s.MarkLoaded()
	return nil
}

// SaveWithLock saves with optimistic locking. The row is matched against the
// version the aggregate was loaded with, so any number of domain mutations
// may happen between load and save.
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, s *sale.Sale) error {
	model := models.SaleModelFromDomain(s)
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SaleModel{}).
			Where("id = ? AND version = ?", s.ID, s.LoadedVersion()).
			Updates(map[string]interface{}{
				"client_id":      model.ClientID,
				"total_amount":   model.TotalAmount,
				"status":         model.Status,
				"invoice_number": model.InvoiceNumber,
				"notes":          model.Notes,
				"in_process_at":  model.InProcessAt,
				"closed_at":      model.ClosedAt,
				"closed_by":      model.ClosedBy,
				"cancelled_at":   model.CancelledAt,
				"cancel_reason":  model.CancelReason,
				"version":        model.Version,
				"updated_at":     model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError(shared.CodeConcurrencyConflict,
				"The sale has been modified by another transaction")
		}
		return saveSaleItems(tx, model.Items)
	})
	if err != nil {
		return err
	}
	s.MarkLoaded()
	return nil
}

// saveSaleItems upserts the sale's line items. Items are append-only in the
// domain, so an upsert keeps existing rows stable and adds new ones.
func saveSaleItems(tx *gorm.DB, items []models.SaleLineItemModel) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&items).Error
}

// Ensure GormSaleRepository implements sale.Repository
var _ sale.Repository = (*GormSaleRepository)(nil)
