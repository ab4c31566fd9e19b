package shared

import (
	"context"

	"github.com/google/uuid"
)

// Sequence names used by the settlement core
const (
	SequenceInvoice = "invoice"
	SequenceSale    = "sale"
	SequenceAccount = "account"
)

// SequenceGenerator hands out gapless-enough monotonic numbers per business
// and sequence name. Invoice numbers come from here so that two concurrent
// closes can never share one.
type SequenceGenerator interface {
	// Next returns the next number in the named sequence, starting at 1
	Next(ctx context.Context, businessID uuid.UUID, name string) (int64, error)
}
