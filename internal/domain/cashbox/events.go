package cashbox

import (
	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BalanceChangedEvent is raised when a cash transaction moves a register balance
type BalanceChangedEvent struct {
	shared.BaseDomainEvent
	RegisterID      uuid.UUID       `json:"register_id"`
	TransactionID   uuid.UUID       `json:"transaction_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	NewBalance      decimal.Decimal `json:"new_balance"`
}

// NewBalanceChangedEvent creates a new BalanceChangedEvent
func NewBalanceChangedEvent(r *Register, tx *CashTransaction) *BalanceChangedEvent {
	return &BalanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CashBalanceChanged", "CashRegister", r.ID, r.BusinessID),
		RegisterID:      r.ID,
		TransactionID:   tx.ID,
		TransactionType: tx.TransactionType,
		Amount:          tx.Amount,
		NewBalance:      tx.NewBalance,
	}
}
