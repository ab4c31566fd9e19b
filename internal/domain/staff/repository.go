package staff

import (
	"context"

	"github.com/google/uuid"
)

// PersonRepository defines the lookup contract the settlement core depends on.
// Person CRUD is owned by the identity subsystem; only reads happen here.
type PersonRepository interface {
	// FindByID finds a person by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Person, error)

	// FindByIDForBusiness finds a person by ID for a specific business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Person, error)

	// FindActiveExpert finds a person that is an active expert.
	// Returns shared.ErrNotFound when the id does not resolve to one.
	FindActiveExpert(ctx context.Context, businessID, id uuid.UUID) (*Person, error)
}
