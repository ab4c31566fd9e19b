package ledger

import (
	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountCreatedEvent is raised when a ledger account is created from an origin document
type AccountCreatedEvent struct {
	shared.BaseDomainEvent
	AccountID     uuid.UUID       `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	Kind          AccountKind     `json:"kind"`
	OriginType    OriginType      `json:"origin_type"`
	OriginID      uuid.UUID       `json:"origin_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewAccountCreatedEvent creates a new AccountCreatedEvent
func NewAccountCreatedEvent(a *Account) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerAccountCreated", "LedgerAccount", a.ID, a.BusinessID),
		AccountID:       a.ID,
		AccountNumber:   a.AccountNumber,
		Kind:            a.Kind,
		OriginType:      a.OriginType,
		OriginID:        a.OriginID,
		TotalAmount:     a.TotalAmount,
	}
}

// PaymentRecordedEvent is raised when a payment leaves the account partially settled
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	AccountID     uuid.UUID       `json:"account_id"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(a *Account, p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerPaymentRecorded", "LedgerAccount", a.ID, a.BusinessID),
		AccountID:       a.ID,
		PaymentID:       p.ID,
		Amount:          p.Amount,
		Method:          p.Method,
		PendingAmount:   a.PendingAmount,
	}
}

// AccountSettledEvent is raised when the final payment settles the account
type AccountSettledEvent struct {
	shared.BaseDomainEvent
	AccountID     uuid.UUID       `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

// NewAccountSettledEvent creates a new AccountSettledEvent
func NewAccountSettledEvent(a *Account) *AccountSettledEvent {
	return &AccountSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerAccountSettled", "LedgerAccount", a.ID, a.BusinessID),
		AccountID:       a.ID,
		AccountNumber:   a.AccountNumber,
		PaidAmount:      a.PaidAmount,
	}
}
