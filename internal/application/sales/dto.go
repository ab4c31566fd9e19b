package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/salonkit/backend/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents a request to open a sale for a client visit
type CreateSaleRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
}

// InputCostInput represents a product consumed while delivering a service
type InputCostInput struct {
	Name   string          `json:"name" binding:"required,min=1,max=200"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AddLineItemRequest represents a request to add a service or retail line
type AddLineItemRequest struct {
	ExpertID    uuid.UUID        `json:"expert_id" binding:"required"`
	ItemType    sale.ItemType    `json:"item_type" binding:"required"`
	Description string           `json:"description" binding:"max=500"`
	GrossAmount decimal.Decimal  `json:"gross_amount" binding:"required"`
	InputCosts  []InputCostInput `json:"input_costs"`
}

// StartProcessingRequest represents a request to move a sale to in-process
type StartProcessingRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// CloseSaleRequest represents a request to close a sale
type CloseSaleRequest struct {
	ActorID uuid.UUID `json:"actor_id"`
}

// CancelSaleRequest represents a request to cancel a sale
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SaleListFilter represents filtering options for sale listings
type SaleListFilter struct {
	Page     int          `form:"page"`
	PageSize int          `form:"page_size"`
	OrderBy  string       `form:"order_by"`
	OrderDir string       `form:"order_dir"`
	ClientID *uuid.UUID   `form:"client_id"`
	Status   *sale.Status `form:"status"`
}

// InputCostResponse represents an input cost in responses
type InputCostResponse struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// LineItemResponse represents a sale line item in responses
type LineItemResponse struct {
	ID          uuid.UUID           `json:"id"`
	ExpertID    uuid.UUID           `json:"expert_id"`
	ItemType    sale.ItemType       `json:"item_type"`
	Description string              `json:"description"`
	GrossAmount decimal.Decimal     `json:"gross_amount"`
	InputCosts  []InputCostResponse `json:"input_costs,omitempty"`
}

// SaleResponse represents a sale in responses
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	ClientID      uuid.UUID          `json:"client_id"`
	Status        sale.Status        `json:"status"`
	Items         []LineItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	InvoiceNumber *int64             `json:"invoice_number,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	ClosedAt      *time.Time         `json:"closed_at,omitempty"`
	CancelledAt   *time.Time         `json:"cancelled_at,omitempty"`
	CancelReason  string             `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Version       int                `json:"version"`
}

// CommissionResponse represents a computed commission in responses
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
}

// CloseSaleResponse is returned by the close operation: the closed sale plus
// the commissions it produced.
type CloseSaleResponse struct {
	Sale        SaleResponse         `json:"sale"`
	Commissions []CommissionResponse `json:"commissions"`
}

// ToSaleResponse converts a sale aggregate to its response representation
func ToSaleResponse(s *sale.Sale) SaleResponse {
	items := make([]LineItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, toLineItemResponse(item))
	}
	return SaleResponse{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		ClientID:      s.ClientID,
		Status:        s.Status,
		Items:         items,
		TotalAmount:   s.TotalAmount,
		InvoiceNumber: s.InvoiceNumber,
		Notes:         s.Notes,
		ClosedAt:      s.ClosedAt,
		CancelledAt:   s.CancelledAt,
		CancelReason:  s.CancelReason,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Version:       s.Version,
	}
}

func toLineItemResponse(item sale.LineItem) LineItemResponse {
	var costs []InputCostResponse
	for _, c := range item.InputCosts {
		costs = append(costs, InputCostResponse{ID: c.ID, Name: c.Name, Amount: c.Amount})
	}
	return LineItemResponse{
		ID:          item.ID,
		ExpertID:    item.ExpertID,
		ItemType:    item.ItemType,
		Description: item.Description,
		GrossAmount: item.GrossAmount,
		InputCosts:  costs,
	}
}

// ToSaleResponses converts a slice of sales
func ToSaleResponses(sales []sale.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, ToSaleResponse(&sales[i]))
	}
	return out
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
	}
}

// ToCommissionResponses converts a slice of commissions
func ToCommissionResponses(commissions []*commission.Commission) []CommissionResponse {
	out := make([]CommissionResponse, 0, len(commissions))
	for _, c := range commissions {
		out = append(out, ToCommissionResponse(c))
	}
	return out
}
