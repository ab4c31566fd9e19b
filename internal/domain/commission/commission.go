package commission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle of a commission record
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the commission is in a terminal state
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Commission is an expert's earning derived from one sale line item.
// Created exactly once per line at sale-close time; the amounts are immutable
// afterwards, only the payout status moves (pending -> paid/cancelled).
// The expert is referenced by id, never owned: deactivating or deleting the
// person does not touch historical commissions.
type Commission struct {
	shared.BusinessAggregateRoot
	SaleID           uuid.UUID       `json:"sale_id"`
	LineItemID       uuid.UUID       `json:"line_item_id"`
	ExpertID         uuid.UUID       `json:"expert_id"`
	LineType         LineType        `json:"line_type"`
	BaseAmount       decimal.Decimal `json:"base_amount"`
	InputCosts       decimal.Decimal `json:"input_costs"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	AppliedRate      decimal.Decimal `json:"applied_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Status           Status          `json:"status"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason     string          `json:"cancel_reason,omitempty"`
}

// NewCommission creates a pending commission from an engine result
func NewCommission(businessID, saleID, expertID uuid.UUID, line LineInput, result Result) (*Commission, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if expertID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPERT", "Expert ID cannot be empty")
	}
	if !line.LineType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LINE_TYPE", fmt.Sprintf("Unknown line type %q", line.LineType))
	}

	c := &Commission{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		SaleID:                saleID,
		LineItemID:            line.LineItemID,
		ExpertID:              expertID,
		LineType:              line.LineType,
		BaseAmount:            result.BaseAmount,
		InputCosts:            result.InputCosts,
		NetAmount:             result.NetAmount,
		AppliedRate:           result.AppliedRate,
		CommissionAmount:      result.Amount,
		Status:                StatusPending,
	}

	c.AddDomainEvent(NewCommissionCreatedEvent(c))

	return c, nil
}

// MarkPaid settles the commission to the expert
func (c *Commission) MarkPaid() error {
	if c.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay commission in %s status", c.Status))
	}

	now := time.Now()
	c.Status = StatusPaid
	c.PaidAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCommissionPaidEvent(c))

	return nil
}

// Cancel voids the commission (e.g. the originating sale was reversed)
func (c *Commission) Cancel(reason string) error {
	if c.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel commission in %s status", c.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	c.Status = StatusCancelled
	c.CancelledAt = &now
	c.CancelReason = reason
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCommissionCancelledEvent(c))

	return nil
}

// IsPending returns true if the commission awaits payout
func (c *Commission) IsPending() bool {
	return c.Status == StatusPending
}
