package sale

import (
	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleOpenedEvent is raised when a new sale is opened
type SaleOpenedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID `json:"sale_id"`
	SaleNumber string    `json:"sale_number"`
	ClientID   uuid.UUID `json:"client_id"`
}

// NewSaleOpenedEvent creates a new SaleOpenedEvent
func NewSaleOpenedEvent(s *Sale) *SaleOpenedEvent {
	return &SaleOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleOpened", "Sale", s.ID, s.BusinessID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		ClientID:        s.ClientID,
	}
}

// SaleStatusChangedEvent is raised on any non-closing status transition
type SaleStatusChangedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID `json:"sale_id"`
	SaleNumber string    `json:"sale_number"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
}

// NewSaleStatusChangedEvent creates a new SaleStatusChangedEvent
func NewSaleStatusChangedEvent(s *Sale, from, to Status) *SaleStatusChangedEvent {
	return &SaleStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleStatusChanged", "Sale", s.ID, s.BusinessID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		FromStatus:      from,
		ToStatus:        to,
	}
}

// SaleClosedEvent is raised when a sale is closed and invoiced
type SaleClosedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	SaleNumber    string          `json:"sale_number"`
	InvoiceNumber int64           `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	LineCount     int             `json:"line_count"`
}

// NewSaleClosedEvent creates a new SaleClosedEvent
func NewSaleClosedEvent(s *Sale) *SaleClosedEvent {
	var invoiceNumber int64
	if s.InvoiceNumber != nil {
		invoiceNumber = *s.InvoiceNumber
	}
	return &SaleClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleClosed", "Sale", s.ID, s.BusinessID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		InvoiceNumber:   invoiceNumber,
		TotalAmount:     s.TotalAmount,
		LineCount:       len(s.Items),
	}
}
