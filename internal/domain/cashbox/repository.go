package cashbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
)

// RegisterRepository defines the interface for cash register persistence
type RegisterRepository interface {
	// FindByID finds a register by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Register, error)

	// FindByIDForBusiness finds a register by ID for a specific business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Register, error)

	// Save creates or updates a register
	Save(ctx context.Context, r *Register) error

	// SaveWithLock saves with optimistic locking (version check).
	// The running balance is read-modify-write state, so concurrent
	// transactions on the same register must be serialized through this.
	SaveWithLock(ctx context.Context, r *Register) error
}

// TransactionFilter defines filtering options for cash transaction queries
type TransactionFilter struct {
	shared.Filter
	TransactionType *TransactionType
	From            *time.Time
	To              *time.Time
}

// TransactionRepository defines the interface for cash transaction persistence.
// Transactions are append-only: there is deliberately no update or delete.
type TransactionRepository interface {
	// Create appends a transaction entry
	Create(ctx context.Context, tx *CashTransaction) error

	// FindByRegister finds transactions for a register with filtering
	FindByRegister(ctx context.Context, businessID, registerID uuid.UUID, filter TransactionFilter) ([]CashTransaction, error)

	// FindByRegisterAndDay finds a register's transactions within one day,
	// ordered by transaction date ascending
	FindByRegisterAndDay(ctx context.Context, businessID, registerID uuid.UUID, day time.Time) ([]CashTransaction, error)
}
