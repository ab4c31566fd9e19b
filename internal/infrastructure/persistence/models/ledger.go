package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// LedgerAccountModel is the persistence model for the ledger Account
// aggregate root. Applied payments are embedded as JSONB; the derived
// paid/pending/status columns are denormalized for querying and recomputed
// from the payment sequence by the domain on load.
type LedgerAccountModel struct {
	BusinessAggregateModel
	AccountNumber   string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_ledger_business_number,priority:2"`
	Kind            ledger.AccountKind `gorm:"type:varchar(20);not null;index"`
	CounterpartyID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	OriginType      ledger.OriginType  `gorm:"type:varchar(30);not null;uniqueIndex:idx_ledger_business_origin,priority:2"`
	OriginID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_business_origin,priority:3"`
	TotalAmount     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	PendingAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Status          ledger.AccountStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DueDate         time.Time          `gorm:"not null;index"`
	Payments        ledger.Payments    `gorm:"type:jsonb;not null;default:'[]'"`
	LastPaymentDate *time.Time
	Remark          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LedgerAccountModel) TableName() string {
	return "ledger_accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *LedgerAccountModel) ToDomain() *ledger.Account {
	a := &ledger.Account{
		AccountNumber:   m.AccountNumber,
		Kind:            m.Kind,
		CounterpartyID:  m.CounterpartyID,
		OriginType:      m.OriginType,
		OriginID:        m.OriginID,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		PendingAmount:   m.PendingAmount,
		Status:          m.Status,
		DueDate:         m.DueDate,
		Payments:        m.Payments,
		LastPaymentDate: m.LastPaymentDate,
		Remark:          m.Remark,
	}
	m.PopulateBusinessAggregateRoot(&a.BusinessAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *LedgerAccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainBusinessAggregateRoot(a.BusinessAggregateRoot)
	m.AccountNumber = a.AccountNumber
	m.Kind = a.Kind
	m.CounterpartyID = a.CounterpartyID
	m.OriginType = a.OriginType
	m.OriginID = a.OriginID
	m.TotalAmount = a.TotalAmount
	m.PaidAmount = a.PaidAmount
	m.PendingAmount = a.PendingAmount
	m.Status = a.Status
	m.DueDate = a.DueDate
	m.Payments = a.Payments
	m.LastPaymentDate = a.LastPaymentDate
	m.Remark = a.Remark
}

// LedgerAccountModelFromDomain creates a new persistence model from a domain Account entity.
func LedgerAccountModelFromDomain(a *ledger.Account) *LedgerAccountModel {
	m := &LedgerAccountModel{}
	m.FromDomain(a)
	return m
}
