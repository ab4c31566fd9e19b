package sale

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
)

// Filter defines filtering options for sale queries
type Filter struct {
	shared.Filter
	ClientID *uuid.UUID
	Status   *Status
}

// Repository defines the interface for sale persistence
type Repository interface {
	// FindByID finds a sale by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDForBusiness finds a sale by ID for a specific business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Sale, error)

	// FindAllForBusiness finds sales for a business with filtering
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter Filter) ([]Sale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, s *Sale) error

	// SaveWithLock saves with optimistic locking (version check).
	// Returns a CONCURRENCY_CONFLICT domain error when the stored version
	// does not match, which guards the close transition against races.
	SaveWithLock(ctx context.Context, s *Sale) error
}
