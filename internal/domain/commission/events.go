package commission

import (
	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CommissionCreatedEvent is raised when a commission is recorded at sale close
type CommissionCreatedEvent struct {
	shared.BaseDomainEvent
	CommissionID     uuid.UUID       `json:"commission_id"`
	SaleID           uuid.UUID       `json:"sale_id"`
	ExpertID         uuid.UUID       `json:"expert_id"`
	LineType         LineType        `json:"line_type"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// NewCommissionCreatedEvent creates a new CommissionCreatedEvent
func NewCommissionCreatedEvent(c *Commission) *CommissionCreatedEvent {
	return &CommissionCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("CommissionCreated", "Commission", c.ID, c.BusinessID),
		CommissionID:     c.ID,
		SaleID:           c.SaleID,
		ExpertID:         c.ExpertID,
		LineType:         c.LineType,
		CommissionAmount: c.CommissionAmount,
	}
}

// CommissionPaidEvent is raised when a commission is paid out to the expert
type CommissionPaidEvent struct {
	shared.BaseDomainEvent
	CommissionID     uuid.UUID       `json:"commission_id"`
	ExpertID         uuid.UUID       `json:"expert_id"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// NewCommissionPaidEvent creates a new CommissionPaidEvent
func NewCommissionPaidEvent(c *Commission) *CommissionPaidEvent {
	return &CommissionPaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("CommissionPaid", "Commission", c.ID, c.BusinessID),
		CommissionID:     c.ID,
		ExpertID:         c.ExpertID,
		CommissionAmount: c.CommissionAmount,
	}
}

// CommissionCancelledEvent is raised when a commission is voided
type CommissionCancelledEvent struct {
	shared.BaseDomainEvent
	CommissionID uuid.UUID `json:"commission_id"`
	SaleID       uuid.UUID `json:"sale_id"`
	Reason       string    `json:"reason"`
}

// NewCommissionCancelledEvent creates a new CommissionCancelledEvent
func NewCommissionCancelledEvent(c *Commission) *CommissionCancelledEvent {
	return &CommissionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionCancelled", "Commission", c.ID, c.BusinessID),
		CommissionID:    c.ID,
		SaleID:          c.SaleID,
		Reason:          c.CancelReason,
	}
}
