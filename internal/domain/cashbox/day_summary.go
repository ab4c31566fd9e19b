package cashbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DaySummary aggregates one register day. It is computed on read from the
// day's transactions and never stored.
type DaySummary struct {
	RegisterID       uuid.UUID                           `json:"register_id"`
	Day              time.Time                           `json:"day"`
	OpeningBalance   decimal.Decimal                     `json:"opening_balance"`
	ClosingBalance   decimal.Decimal                     `json:"closing_balance"`
	TotalsByType     map[TransactionType]decimal.Decimal `json:"totals_by_type"`
	TransactionCount int                                 `json:"transaction_count"`
}

// SummarizeDay aggregates the given transactions, which must all belong to
// the same register and be ordered by transaction date ascending.
func SummarizeDay(registerID uuid.UUID, day time.Time, transactions []CashTransaction) DaySummary {
	summary := DaySummary{
		RegisterID:       registerID,
		Day:              day,
		TotalsByType:     make(map[TransactionType]decimal.Decimal),
		TransactionCount: len(transactions),
	}
	if len(transactions) == 0 {
		return summary
	}

	summary.OpeningBalance = transactions[0].PreviousBalance
	summary.ClosingBalance = transactions[len(transactions)-1].NewBalance

	for _, tx := range transactions {
		current, ok := summary.TotalsByType[tx.TransactionType]
		if !ok {
			current = decimal.Zero
		}
		summary.TotalsByType[tx.TransactionType] = current.Add(tx.SignedAmount())
	}

	return summary
}
