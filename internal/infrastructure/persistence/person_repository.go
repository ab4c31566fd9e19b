package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/staff"
	"github.com/salonkit/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPersonRepository implements staff.PersonRepository using GORM.
// The settlement core only reads people; writes belong to the identity
// subsystem.
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new GormPersonRepository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

func (r *GormPersonRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a person by its ID
func (r *GormPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Person, error) {
	var model models.PersonModel
	if err := r.conn(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForBusiness finds a person by ID for a specific business
func (r *GormPersonRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*staff.Person, error) {
	var model models.PersonModel
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

// FindActiveExpert finds a person that is an active expert
func (r *GormPersonRepository) FindActiveExpert(ctx context.Context, businessID, id uuid.UUID) (*staff.Person, error) {
	var model models.PersonModel
	if err := r.conn(ctx).
		Where("business_id = ? AND id = ? AND role = ? AND active = ?",
			businessID, id, staff.RoleExpert, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormPersonRepository implements staff.PersonRepository
var _ staff.PersonRepository = (*GormPersonRepository)(nil)
