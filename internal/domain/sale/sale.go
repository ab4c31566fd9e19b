package sale

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a sale
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusInProcess Status = "IN_PROCESS"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProcess, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the sale is in a terminal state.
// A closed sale can never be cancelled; reversals are a separate flow.
func (s Status) IsTerminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOpen:
		return target == StatusInProcess || target == StatusCancelled
	case StatusInProcess:
		return target == StatusClosed || target == StatusCancelled
	case StatusClosed, StatusCancelled:
		return false
	}
	return false
}

// ItemType discriminates service vs retail sale lines
type ItemType string

const (
	ItemTypeService ItemType = "SERVICE"
	ItemTypeRetail  ItemType = "RETAIL"
)

// IsValid checks if the item type is valid
func (t ItemType) IsValid() bool {
	return t == ItemTypeService || t == ItemTypeRetail
}

// String returns the string representation of ItemType
func (t ItemType) String() string {
	return string(t)
}

// InputCost is a product consumed while delivering a service line
type InputCost struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// NewInputCost creates an input cost entry
func NewInputCost(name string, amount decimal.Decimal) (InputCost, error) {
	if name == "" {
		return InputCost{}, shared.NewDomainError("INVALID_INPUT_COST", "Input cost name cannot be empty")
	}
	if amount.IsNegative() {
		return InputCost{}, shared.NewDomainError("INVALID_INPUT_COST", "Input cost amount cannot be negative")
	}
	return InputCost{ID: uuid.New(), Name: name, Amount: amount}, nil
}

// LineItem is a single service or retail position on a sale, owned by the
// expert who delivered it.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ExpertID    uuid.UUID       `json:"expert_id"`
	ItemType    ItemType        `json:"item_type"`
	Description string          `json:"description"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	InputCosts  []InputCost     `json:"input_costs,omitempty"` // Service lines only
	CreatedAt   time.Time       `json:"created_at"`
}

// NewServiceLine creates a service line item with consumed input costs
func NewServiceLine(saleID, expertID uuid.UUID, description string, grossAmount decimal.Decimal, inputs []InputCost) (*LineItem, error) {
	return newLineItem(saleID, expertID, ItemTypeService, description, grossAmount, inputs)
}

// NewRetailLine creates a retail (product) line item
func NewRetailLine(saleID, expertID uuid.UUID, description string, grossAmount decimal.Decimal) (*LineItem, error) {
	return newLineItem(saleID, expertID, ItemTypeRetail, description, grossAmount, nil)
}

func newLineItem(saleID, expertID uuid.UUID, itemType ItemType, description string, grossAmount decimal.Decimal, inputs []InputCost) (*LineItem, error) {
	if expertID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPERT", "Line item expert ID cannot be empty")
	}
	if grossAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Gross amount cannot be negative")
	}

	return &LineItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ExpertID:    expertID,
		ItemType:    itemType,
		Description: description,
		GrossAmount: grossAmount,
		InputCosts:  inputs,
		CreatedAt:   time.Now(),
	}, nil
}

// TotalInputCosts returns the sum of consumed input costs
func (i *LineItem) TotalInputCosts() decimal.Decimal {
	total := decimal.Zero
	for _, c := range i.InputCosts {
		total = total.Add(c.Amount)
	}
	return total
}

// InputCostsExceedGross reports the soft-invariant violation where input
// costs exceed the gross amount. Callers log it; the line is still accepted.
func (i *LineItem) InputCostsExceedGross() bool {
	return i.TotalInputCosts().GreaterThan(i.GrossAmount)
}

// GetGrossAmountMoney returns the gross amount as Money
func (i *LineItem) GetGrossAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.GrossAmount)
}

// Sale is the aggregate root for a salon visit's billable items.
// Lifecycle: OPEN -> IN_PROCESS -> CLOSED, with cancellation allowed only
// before closing. Once closed, lines and totals are frozen.
type Sale struct {
	shared.BusinessAggregateRoot
	SaleNumber    string          `json:"sale_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        Status          `json:"status"`
	InvoiceNumber *int64          `json:"invoice_number,omitempty"` // Assigned at close
	Notes         string          `json:"notes"`
	InProcessAt   *time.Time      `json:"in_process_at,omitempty"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	ClosedBy      *uuid.UUID      `json:"closed_by,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
}

// NewSale creates an open sale for a client visit
func NewSale(businessID uuid.UUID, saleNumber string, clientID uuid.UUID) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	s := &Sale{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		SaleNumber:            saleNumber,
		ClientID:              clientID,
		Items:                 []LineItem{},
		TotalAmount:           decimal.Zero,
		Status:                StatusOpen,
	}

	s.AddDomainEvent(NewSaleOpenedEvent(s))

	return s, nil
}

// AddItem appends a line item. Only allowed before the sale reaches a
// terminal state.
func (s *Sale) AddItem(item *LineItem) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to sale in %s status", s.Status))
	}

	item.SaleID = s.ID
	s.Items = append(s.Items, *item)
	s.recalculateTotal()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// StartProcessing moves the sale from OPEN to IN_PROCESS. No financial
// computation happens here; only the status change and optional notes are
// recorded.
func (s *Sale) StartProcessing(notes string) error {
	if !s.Status.CanTransitionTo(StatusInProcess) {
		return shared.NewDomainError(shared.CodeSaleNotClosable,
			fmt.Sprintf("Sale %s cannot move to in-process from %s", s.SaleNumber, s.Status))
	}

	now := time.Now()
	s.Status = StatusInProcess
	s.InProcessAt = &now
	if notes != "" {
		s.Notes = notes
	}
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleStatusChangedEvent(s, StatusOpen, StatusInProcess))

	return nil
}

// Close finalizes the sale, assigning its invoice number. The transition is
// only legal from IN_PROCESS; commission creation is orchestrated by the
// application layer before this aggregate is persisted.
func (s *Sale) Close(invoiceNumber int64, actorID uuid.UUID) error {
	if !s.Status.CanTransitionTo(StatusClosed) {
		return shared.NewDomainError(shared.CodeSaleNotClosable,
			fmt.Sprintf("Sale %s cannot be closed from %s status", s.SaleNumber, s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError(shared.CodeSaleNotClosable,
			fmt.Sprintf("Sale %s has no line items to close", s.SaleNumber))
	}
	if invoiceNumber <= 0 {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number must be positive")
	}

	now := time.Now()
	s.Status = StatusClosed
	s.InvoiceNumber = &invoiceNumber
	s.ClosedAt = &now
	if actorID != uuid.Nil {
		s.ClosedBy = &actorID
	}
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleClosedEvent(s))

	return nil
}

// Cancel voids the sale. Only allowed from OPEN or IN_PROCESS; a closed sale
// requires a reversal flow instead.
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	previous := s.Status
	now := time.Now()
	s.Status = StatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleStatusChangedEvent(s, previous, StatusCancelled))

	return nil
}

// IsClosed returns true if the sale has been closed
func (s *Sale) IsClosed() bool {
	return s.Status == StatusClosed
}

// GetTotalAmountMoney returns the sale total as Money
func (s *Sale) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.TotalAmount)
}

// ServiceLines returns the service line items
func (s *Sale) ServiceLines() []LineItem {
	return s.linesOfType(ItemTypeService)
}

// RetailLines returns the retail line items
func (s *Sale) RetailLines() []LineItem {
	return s.linesOfType(ItemTypeRetail)
}

func (s *Sale) linesOfType(t ItemType) []LineItem {
	var out []LineItem
	for _, item := range s.Items {
		if item.ItemType == t {
			out = append(out, item)
		}
	}
	return out
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.GrossAmount)
	}
	s.TotalAmount = total
}
