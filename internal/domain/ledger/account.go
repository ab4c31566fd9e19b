package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AccountStatus represents the settlement status of a ledger account.
// It is always derived from the payment sequence, never set directly.
type AccountStatus string

const (
	StatusPending AccountStatus = "PENDING" // No payments applied yet
	StatusPartial AccountStatus = "PARTIAL" // 0 < paid < total
	StatusPaid    AccountStatus = "PAID"    // Fully settled
)

// IsValid checks if the status is a valid AccountStatus
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPartial, StatusPaid:
		return true
	}
	return false
}

// String returns the string representation of AccountStatus
func (s AccountStatus) String() string {
	return string(s)
}

// AccountKind distinguishes money owed to the business from money it owes
type AccountKind string

const (
	KindReceivable AccountKind = "RECEIVABLE" // Client owes the business
	KindPayable    AccountKind = "PAYABLE"    // Business owes a supplier
)

// IsValid checks if the kind is valid
func (k AccountKind) IsValid() bool {
	return k == KindReceivable || k == KindPayable
}

// OriginType represents the document that spawned the account
type OriginType string

const (
	OriginSale            OriginType = "SALE"
	OriginPurchaseInvoice OriginType = "PURCHASE_INVOICE"
	OriginManual          OriginType = "MANUAL"
)

// IsValid checks if the origin type is valid
func (o OriginType) IsValid() bool {
	switch o {
	case OriginSale, OriginPurchaseInvoice, OriginManual:
		return true
	}
	return false
}

// PaymentMethod represents how a payment was tendered
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCredit   PaymentMethod = "CREDIT"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodCredit:
		return true
	}
	return false
}

// Payment is one applied payment within the account aggregate, stored as JSONB
type Payment struct {
	ID      uuid.UUID       `json:"id"`
	Amount  decimal.Decimal `json:"amount"`
	Method  PaymentMethod   `json:"method"`
	ActorID uuid.UUID       `json:"actor_id"`
	PaidAt  time.Time       `json:"paid_at"`
	Remark  string          `json:"remark,omitempty"`
}

// Payments is a slice of Payment implementing GORM Scanner/Valuer for JSONB storage
type Payments []Payment

// Value implements driver.Valuer for GORM to store as JSONB
func (p Payments) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (p *Payments) Scan(value interface{}) error {
	if value == nil {
		*p = Payments{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Payments: unsupported type")
	}

	if len(bytes) == 0 {
		*p = Payments{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// Total returns the sum of all payment amounts
func (p Payments) Total() decimal.Decimal {
	total := decimal.Zero
	for _, payment := range p {
		total = total.Add(payment.Amount)
	}
	return total
}

// DefaultDueDays is added to the creation date when no due date is given
const DefaultDueDays = 30

// Account is a unified receivable/payable ledger account.
//
// PaidAmount, PendingAmount and Status are derived: they are recomputed from
// the payment sequence on every mutation and must never be assigned from
// outside. AddPayment is the single update entry point.
type Account struct {
	shared.BusinessAggregateRoot
	AccountNumber   string          `json:"account_number"`
	Kind            AccountKind     `json:"kind"`
	CounterpartyID  uuid.UUID       `json:"counterparty_id"` // Client or supplier
	OriginType      OriginType      `json:"origin_type"`
	OriginID        uuid.UUID       `json:"origin_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	Status          AccountStatus   `json:"status"`
	DueDate         time.Time       `json:"due_date"`
	Payments        Payments        `json:"payments"`
	LastPaymentDate *time.Time      `json:"last_payment_date,omitempty"`
	Remark          string          `json:"remark,omitempty"`
}

// CreateFromOrigin creates a ledger account from an origin document (sale or
// purchase invoice). When dueDate is nil, it defaults to creation + 30 days.
func CreateFromOrigin(
	businessID uuid.UUID,
	accountNumber string,
	kind AccountKind,
	counterpartyID uuid.UUID,
	originType OriginType,
	originID uuid.UUID,
	totalAmount valueobject.Money,
	dueDate *time.Time,
) (*Account, error) {
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown account kind %q", kind))
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if !originType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORIGIN_TYPE", fmt.Sprintf("Unknown origin type %q", originType))
	}
	if originID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORIGIN", "Origin ID cannot be empty")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}

	a := &Account{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		AccountNumber:         accountNumber,
		Kind:                  kind,
		CounterpartyID:        counterpartyID,
		OriginType:            originType,
		OriginID:              originID,
		TotalAmount:           totalAmount.Amount(),
		Payments:              Payments{},
	}
	if dueDate != nil {
		a.DueDate = *dueDate
	} else {
		a.DueDate = a.CreatedAt.AddDate(0, 0, DefaultDueDays)
	}
	a.recompute()

	a.AddDomainEvent(NewAccountCreatedEvent(a))

	return a, nil
}

// AddPayment applies a payment to the account. Fails with ALREADY_SETTLED on
// a paid account and OVERPAYMENT when the amount exceeds the pending balance;
// a payment may never roll over into credit.
func (a *Account) AddPayment(amount valueobject.Money, method PaymentMethod, actorID uuid.UUID) (*Payment, error) {
	if a.Status == StatusPaid {
		return nil, shared.NewDomainError(shared.CodeAlreadySettled,
			fmt.Sprintf("Account %s is already fully settled", a.AccountNumber))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}
	if amount.Amount().GreaterThan(a.PendingAmount) {
		return nil, shared.NewDomainError(shared.CodeOverpayment,
			fmt.Sprintf("Payment %s exceeds pending amount %s on account %s",
				amount.StringFixed(2), a.PendingAmount.StringFixed(2), a.AccountNumber))
	}

	payment := Payment{
		ID:      uuid.New(),
		Amount:  amount.Amount(),
		Method:  method,
		ActorID: actorID,
		PaidAt:  time.Now(),
	}
	a.Payments = append(a.Payments, payment)
	a.LastPaymentDate = &payment.PaidAt
	a.recompute()
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	if a.Status == StatusPaid {
		a.AddDomainEvent(NewAccountSettledEvent(a))
	} else {
		a.AddDomainEvent(NewPaymentRecordedEvent(a, &payment))
	}

	return &payment, nil
}

// recompute derives paid amount, pending amount and status from the payment
// sequence. Idempotent: the same payments always yield the same result.
func (a *Account) recompute() {
	a.PaidAmount = a.Payments.Total()
	a.PendingAmount = a.TotalAmount.Sub(a.PaidAmount)

	switch {
	case a.PendingAmount.LessThanOrEqual(decimal.Zero):
		a.Status = StatusPaid
	case a.PaidAmount.GreaterThan(decimal.Zero):
		a.Status = StatusPartial
	default:
		a.Status = StatusPending
	}
}

// Recompute re-derives the denormalized fields from the payment sequence.
// Exposed for repair/reconciliation paths that reload raw payment data.
func (a *Account) Recompute() {
	a.recompute()
}

// SetRemark sets the remark
func (a *Account) SetRemark(remark string) {
	a.Remark = remark
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// IsSettled returns true if the account is fully paid
func (a *Account) IsSettled() bool {
	return a.Status == StatusPaid
}

// IsOverdue returns true if the account is past due and not settled
func (a *Account) IsOverdue() bool {
	if a.IsSettled() {
		return false
	}
	return time.Now().After(a.DueDate)
}

// PaymentCount returns the number of payments applied
func (a *Account) PaymentCount() int {
	return len(a.Payments)
}

// GetTotalAmountMoney returns the total amount as Money
func (a *Account) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(a.TotalAmount)
}

// GetPendingAmountMoney returns the pending amount as Money
func (a *Account) GetPendingAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(a.PendingAmount)
}
