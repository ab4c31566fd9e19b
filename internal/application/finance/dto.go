package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to open a ledger account manually
// or from a purchase invoice. Receivables for sales are opened automatically
// by the sale close flow.
type CreateAccountRequest struct {
	Kind           ledger.AccountKind `json:"kind" binding:"required"`
	CounterpartyID uuid.UUID          `json:"counterparty_id" binding:"required"`
	OriginType     ledger.OriginType  `json:"origin_type" binding:"required"`
	OriginID       uuid.UUID          `json:"origin_id" binding:"required"`
	TotalAmount    decimal.Decimal    `json:"total_amount" binding:"required"`
	DueDate        *time.Time         `json:"due_date"`
	Remark         string             `json:"remark" binding:"max=500"`
}

// RecordPaymentRequest represents a request to apply a payment to an account
type RecordPaymentRequest struct {
	Amount  decimal.Decimal      `json:"amount" binding:"required"`
	Method  ledger.PaymentMethod `json:"method" binding:"required"`
	ActorID uuid.UUID            `json:"actor_id"`
}

// AccountListFilter represents filtering options for account listings
type AccountListFilter struct {
	Page           int                   `form:"page"`
	PageSize       int                   `form:"page_size"`
	Kind           *ledger.AccountKind   `form:"kind"`
	Status         *ledger.AccountStatus `form:"status"`
	CounterpartyID *uuid.UUID            `form:"counterparty_id"`
	Overdue        *bool                 `form:"overdue"`
}

// PaymentResponse represents an applied payment in responses
type PaymentResponse struct {
	ID     uuid.UUID            `json:"id"`
	Amount decimal.Decimal      `json:"amount"`
	Method ledger.PaymentMethod `json:"method"`
	PaidAt time.Time            `json:"paid_at"`
	Remark string               `json:"remark,omitempty"`
}

// AccountResponse represents a ledger account in responses
type AccountResponse struct {
	ID              uuid.UUID            `json:"id"`
	AccountNumber   string               `json:"account_number"`
	Kind            ledger.AccountKind   `json:"kind"`
	CounterpartyID  uuid.UUID            `json:"counterparty_id"`
	OriginType      ledger.OriginType    `json:"origin_type"`
	OriginID        uuid.UUID            `json:"origin_id"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	PaidAmount      decimal.Decimal      `json:"paid_amount"`
	PendingAmount   decimal.Decimal      `json:"pending_amount"`
	Status          ledger.AccountStatus `json:"status"`
	DueDate         time.Time            `json:"due_date"`
	Overdue         bool                 `json:"overdue"`
	Payments        []PaymentResponse    `json:"payments"`
	LastPaymentDate *time.Time           `json:"last_payment_date,omitempty"`
	Remark          string               `json:"remark,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Version         int                  `json:"version"`
}

// ToAccountResponse converts a ledger account to its response representation
func ToAccountResponse(a *ledger.Account) AccountResponse {
	payments := make([]PaymentResponse, 0, len(a.Payments))
	for _, p := range a.Payments {
		payments = append(payments, PaymentResponse{
			ID:     p.ID,
			Amount: p.Amount,
			Method: p.Method,
			PaidAt: p.PaidAt,
			Remark: p.Remark,
		})
	}
	return AccountResponse{
		ID:              a.ID,
		AccountNumber:   a.AccountNumber,
		Kind:            a.Kind,
		CounterpartyID:  a.CounterpartyID,
		OriginType:      a.OriginType,
		OriginID:        a.OriginID,
		TotalAmount:     a.TotalAmount,
		PaidAmount:      a.PaidAmount,
		PendingAmount:   a.PendingAmount,
		Status:          a.Status,
		DueDate:         a.DueDate,
		Overdue:         a.IsOverdue(),
		Payments:        payments,
		LastPaymentDate: a.LastPaymentDate,
		Remark:          a.Remark,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Version:         a.Version,
	}
}

// ToAccountResponses converts a slice of accounts
func ToAccountResponses(accounts []ledger.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}
