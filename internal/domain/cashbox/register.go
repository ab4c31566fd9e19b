package cashbox

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Register is a cash drawer with a running balance. The balance only moves
// through ApplyTransaction, which emits an append-only CashTransaction per
// change; corrections are new transactions, never edits.
type Register struct {
	shared.BusinessAggregateRoot
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// NewRegister creates a register with a zero balance
func NewRegister(businessID uuid.UUID, name string) (*Register, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Register name cannot be empty")
	}
	return &Register{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Balance:               decimal.Zero,
	}, nil
}

// ApplyTransaction moves the register balance and returns the audit entry.
// Subtracting transactions that would drive the balance negative fail with
// INSUFFICIENT_BALANCE and leave the register untouched.
func (r *Register) ApplyTransaction(txType TransactionType, direction Direction, amount valueobject.Money, actorID uuid.UUID, remark string) (*CashTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", fmt.Sprintf("Unknown cash transaction type %q", txType))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	dir, err := txType.ResolveDirection(direction)
	if err != nil {
		return nil, err
	}

	previous := r.Balance
	var next decimal.Decimal
	if dir == DirectionIncrease {
		next = previous.Add(amount.Amount())
	} else {
		if previous.LessThan(amount.Amount()) {
			return nil, shared.NewDomainError(shared.CodeInsufficientBalance,
				fmt.Sprintf("Register %s balance %s cannot cover %s %s",
					r.Name, previous.StringFixed(2), txType, amount.StringFixed(2)))
		}
		next = previous.Sub(amount.Amount())
	}

	tx, err := NewCashTransaction(r.BusinessID, r.ID, txType, dir, amount.Amount(), previous, next)
	if err != nil {
		return nil, err
	}
	if actorID != uuid.Nil {
		tx.WithActorID(actorID)
	}
	if remark != "" {
		tx.WithRemark(remark)
	}

	r.Balance = next
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewBalanceChangedEvent(r, tx))

	return tx, nil
}

// GetBalanceMoney returns the running balance as Money
func (r *Register) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.Balance)
}
