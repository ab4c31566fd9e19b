package commissions

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/shopspring/decimal"
)

// CancelRequest represents a request to cancel a pending commission
type CancelRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ListFilter represents filtering options for commission listings
type ListFilter struct {
	Page     int                  `form:"page"`
	PageSize int                  `form:"page_size"`
	Status   *commission.Status   `form:"status"`
	LineType *commission.LineType `form:"line_type"`
}

// CommissionResponse represents a commission in responses
type CommissionResponse struct {
	ID               uuid.UUID           `json:"id"`
	SaleID           uuid.UUID           `json:"sale_id"`
	LineItemID       uuid.UUID           `json:"line_item_id"`
	ExpertID         uuid.UUID           `json:"expert_id"`
	LineType         commission.LineType `json:"line_type"`
	BaseAmount       decimal.Decimal     `json:"base_amount"`
	InputCosts       decimal.Decimal     `json:"input_costs"`
	NetAmount        decimal.Decimal     `json:"net_amount"`
	AppliedRate      decimal.Decimal     `json:"applied_rate"`
	CommissionAmount decimal.Decimal     `json:"commission_amount"`
	Status           commission.Status   `json:"status"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
	CancelledAt      *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason     string              `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	Version          int                 `json:"version"`
}

// ToCommissionResponse converts a commission aggregate to its response representation
func ToCommissionResponse(c *commission.Commission) CommissionResponse {
	return CommissionResponse{
		ID:               c.ID,
		SaleID:           c.SaleID,
		LineItemID:       c.LineItemID,
		ExpertID:         c.ExpertID,
		LineType:         c.LineType,
		BaseAmount:       c.BaseAmount,
		InputCosts:       c.InputCosts,
		NetAmount:        c.NetAmount,
		AppliedRate:      c.AppliedRate,
		CommissionAmount: c.CommissionAmount,
		Status:           c.Status,
		PaidAt:           c.PaidAt,
		CancelledAt:      c.CancelledAt,
		CancelReason:     c.CancelReason,
		CreatedAt:        c.CreatedAt,
		Version:          c.Version,
	}
}

// ToCommissionResponses converts a slice of commissions
func ToCommissionResponses(commissions []commission.Commission) []CommissionResponse {
	out := make([]CommissionResponse, 0, len(commissions))
	for i := range commissions {
		out = append(out, ToCommissionResponse(&commissions[i]))
	}
	return out
}
