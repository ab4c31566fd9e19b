package commission

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
)

// Filter defines filtering options for commission queries
type Filter struct {
	shared.Filter
	ExpertID *uuid.UUID
	SaleID   *uuid.UUID
	Status   *Status
	LineType *LineType
}

// Repository defines the interface for commission persistence
type Repository interface {
	// FindByID finds a commission by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Commission, error)

	// FindByIDForBusiness finds a commission by ID for a specific business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Commission, error)

	// FindBySale finds all commissions created for a sale
	FindBySale(ctx context.Context, businessID, saleID uuid.UUID) ([]Commission, error)

	// FindByExpert finds commissions for an expert with filtering
	FindByExpert(ctx context.Context, businessID, expertID uuid.UUID, filter Filter) ([]Commission, error)

	// Save creates or updates a commission
	Save(ctx context.Context, c *Commission) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, c *Commission) error

	// CreateBatch persists a set of commissions atomically.
	// Either every commission is written or none is.
	CreateBatch(ctx context.Context, commissions []*Commission) error
}
