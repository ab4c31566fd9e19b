package cashdesk

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/cashbox"
	"github.com/shopspring/decimal"
)

// CreateRegisterRequest represents a request to create a cash register
type CreateRegisterRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RecordTransactionRequest represents a request to record a cash movement
type RecordTransactionRequest struct {
	TransactionType cashbox.TransactionType `json:"transaction_type" binding:"required"`
	Direction       cashbox.Direction       `json:"direction"`
	Amount          decimal.Decimal         `json:"amount" binding:"required"`
	ActorID         uuid.UUID               `json:"actor_id"`
	Remark          string                  `json:"remark" binding:"max=500"`
}

// TransactionListFilter represents filtering options for transaction listings
type TransactionListFilter struct {
	Page            int                      `form:"page"`
	PageSize        int                      `form:"page_size"`
	TransactionType *cashbox.TransactionType `form:"transaction_type"`
	From            *time.Time               `form:"from" time_format:"2006-01-02"`
	To              *time.Time               `form:"to" time_format:"2006-01-02"`
}

// RegisterResponse represents a cash register in responses
type RegisterResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// TransactionResponse represents a cash transaction in responses
type TransactionResponse struct {
	ID              uuid.UUID               `json:"id"`
	RegisterID      uuid.UUID               `json:"register_id"`
	TransactionType cashbox.TransactionType `json:"transaction_type"`
	Direction       cashbox.Direction       `json:"direction"`
	Amount          decimal.Decimal         `json:"amount"`
	PreviousBalance decimal.Decimal         `json:"previous_balance"`
	NewBalance      decimal.Decimal         `json:"new_balance"`
	ActorID         *uuid.UUID              `json:"actor_id,omitempty"`
	Remark          string                  `json:"remark,omitempty"`
	TransactionDate time.Time               `json:"transaction_date"`
}

// DaySummaryResponse represents one register day in responses
type DaySummaryResponse struct {
	RegisterID       uuid.UUID                  `json:"register_id"`
	Day              string                     `json:"day"`
	OpeningBalance   decimal.Decimal            `json:"opening_balance"`
	ClosingBalance   decimal.Decimal            `json:"closing_balance"`
	TotalsByType     map[string]decimal.Decimal `json:"totals_by_type"`
	TransactionCount int                        `json:"transaction_count"`
}

// ToRegisterResponse converts a register aggregate to its response representation
func ToRegisterResponse(r *cashbox.Register) RegisterResponse {
	return RegisterResponse{
		ID:        r.ID,
		Name:      r.Name,
		Balance:   r.Balance,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Version:   r.Version,
	}
}

// ToTransactionResponse converts a cash transaction to its response representation
func ToTransactionResponse(tx *cashbox.CashTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		RegisterID:      tx.RegisterID,
		TransactionType: tx.TransactionType,
		Direction:       tx.Direction,
		Amount:          tx.Amount,
		PreviousBalance: tx.PreviousBalance,
		NewBalance:      tx.NewBalance,
		ActorID:         tx.ActorID,
		Remark:          tx.Remark,
		TransactionDate: tx.TransactionDate,
	}
}

// ToTransactionResponses converts a slice of transactions
func ToTransactionResponses(transactions []cashbox.CashTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, ToTransactionResponse(&transactions[i]))
	}
	return out
}

// ToDaySummaryResponse converts a day summary to its response representation
func ToDaySummaryResponse(summary cashbox.DaySummary) DaySummaryResponse {
	totals := make(map[string]decimal.Decimal, len(summary.TotalsByType))
	for txType, total := range summary.TotalsByType {
		totals[txType.String()] = total
	}
	return DaySummaryResponse{
		RegisterID:       summary.RegisterID,
		Day:              summary.Day.Format("2006-01-02"),
		OpeningBalance:   summary.OpeningBalance,
		ClosingBalance:   summary.ClosingBalance,
		TotalsByType:     totals,
		TransactionCount: summary.TransactionCount,
	}
}
