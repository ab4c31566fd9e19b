package cashbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of cash movement
type TransactionType string

const (
	// TransactionTypeTip records gratuities left for experts (balance increase)
	TransactionTypeTip TransactionType = "TIP"
	// TransactionTypeChange records change handed back to a client (balance decrease)
	TransactionTypeChange TransactionType = "CHANGE"
	// TransactionTypeRefund records cash returned to a client (balance decrease)
	TransactionTypeRefund TransactionType = "REFUND"
	// TransactionTypeAdjustment records a manual correction (either direction)
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeTip, TransactionTypeChange, TransactionTypeRefund, TransactionTypeAdjustment:
		return true
	}
	return false
}

// Direction represents whether a transaction adds to or subtracts from the balance
type Direction string

const (
	DirectionIncrease Direction = "INCREASE"
	DirectionDecrease Direction = "DECREASE"
	// DirectionDefault lets the transaction type pick its inherent direction
	DirectionDefault Direction = ""
)

// ResolveDirection returns the effective direction for this type. Tips always
// increase, change and refunds always decrease; only adjustments accept an
// explicit direction.
func (t TransactionType) ResolveDirection(requested Direction) (Direction, error) {
	switch t {
	case TransactionTypeTip:
		return DirectionIncrease, nil
	case TransactionTypeChange, TransactionTypeRefund:
		return DirectionDecrease, nil
	case TransactionTypeAdjustment:
		if requested == DirectionIncrease || requested == DirectionDecrease {
			return requested, nil
		}
		return "", shared.NewDomainError("INVALID_DIRECTION", "Adjustment transactions require an explicit direction")
	}
	return "", shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown cash transaction type")
}

// CashTransaction is an immutable record of one register balance change.
// Entries are append-only; the running balance of a register/day is the
// NewBalance of its most recent entry.
type CashTransaction struct {
	shared.BaseEntity
	BusinessID      uuid.UUID       `json:"business_id"`
	RegisterID      uuid.UUID       `json:"register_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Direction       Direction       `json:"direction"`
	Amount          decimal.Decimal `json:"amount"` // Always positive; direction carries the sign
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	ActorID         *uuid.UUID      `json:"actor_id,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// NewCashTransaction creates a cash transaction entry
func NewCashTransaction(
	businessID, registerID uuid.UUID,
	txType TransactionType,
	direction Direction,
	amount, previousBalance, newBalance decimal.Decimal,
) (*CashTransaction, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if registerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGISTER", "Register ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown cash transaction type")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if previousBalance.IsNegative() || newBalance.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInsufficientBalance, "Register balance cannot go negative")
	}

	return &CashTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		BusinessID:      businessID,
		RegisterID:      registerID,
		TransactionType: txType,
		Direction:       direction,
		Amount:          amount,
		PreviousBalance: previousBalance,
		NewBalance:      newBalance,
		TransactionDate: time.Now(),
	}, nil
}

// WithActorID sets the user who performed the transaction
func (t *CashTransaction) WithActorID(actorID uuid.UUID) *CashTransaction {
	t.ActorID = &actorID
	return t
}

// WithRemark sets the remark
func (t *CashTransaction) WithRemark(remark string) *CashTransaction {
	t.Remark = remark
	return t
}

// SignedAmount returns the amount with its direction applied
func (t *CashTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionDecrease {
		return t.Amount.Neg()
	}
	return t.Amount
}

// BalanceChange returns the net balance change recorded by the entry
func (t *CashTransaction) BalanceChange() decimal.Decimal {
	return t.NewBalance.Sub(t.PreviousBalance)
}
