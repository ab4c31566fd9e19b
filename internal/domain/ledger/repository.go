package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
)

// Filter defines filtering options for ledger account queries
type Filter struct {
	shared.Filter
	Kind           *AccountKind
	Status         *AccountStatus
	CounterpartyID *uuid.UUID
	Overdue        *bool
}

// Repository defines the interface for ledger account persistence
type Repository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByIDForBusiness finds an account by ID for a specific business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Account, error)

	// FindByOrigin finds the account spawned by an origin document
	FindByOrigin(ctx context.Context, businessID uuid.UUID, originType OriginType, originID uuid.UUID) (*Account, error)

	// FindAllForBusiness finds accounts for a business with filtering
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter Filter) ([]Account, error)

	// Save creates or updates an account
	Save(ctx context.Context, a *Account) error

	// SaveWithLock saves with optimistic locking (version check).
	// Payment application is a read-modify-write over the full payment
	// history, so concurrent writers must be serialized through this.
	SaveWithLock(ctx context.Context, a *Account) error
}
