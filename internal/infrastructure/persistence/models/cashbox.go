package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/cashbox"
	"github.com/shopspring/decimal"
)

// CashRegisterModel is the persistence model for the Register aggregate root.
type CashRegisterModel struct {
	BusinessAggregateModel
	Name    string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_register_business_name,priority:2"`
	Balance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (CashRegisterModel) TableName() string {
	return "cash_registers"
}

// ToDomain converts the persistence model to a domain Register entity.
func (m *CashRegisterModel) ToDomain() *cashbox.Register {
	r := &cashbox.Register{
		Name:    m.Name,
		Balance: m.Balance,
	}
	m.PopulateBusinessAggregateRoot(&r.BusinessAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Register entity.
func (m *CashRegisterModel) FromDomain(r *cashbox.Register) {
	m.FromDomainBusinessAggregateRoot(r.BusinessAggregateRoot)
	m.Name = r.Name
	m.Balance = r.Balance
}

// CashRegisterModelFromDomain creates a new persistence model from a domain Register entity.
func CashRegisterModelFromDomain(r *cashbox.Register) *CashRegisterModel {
	m := &CashRegisterModel{}
	m.FromDomain(r)
	return m
}

// CashTransactionModel is the persistence model for the append-only
// CashTransaction entry. There is no version column: entries are written
// once and never updated.
type CashTransactionModel struct {
	BaseModel
	BusinessID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	RegisterID      uuid.UUID               `gorm:"type:uuid;not null;index:idx_cash_tx_register_date,priority:1"`
	TransactionType cashbox.TransactionType `gorm:"type:varchar(20);not null"`
	Direction       cashbox.Direction       `gorm:"type:varchar(10);not null"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	PreviousBalance decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	NewBalance      decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	ActorID         *uuid.UUID              `gorm:"type:uuid"`
	Remark          string                  `gorm:"type:varchar(500)"`
	TransactionDate time.Time               `gorm:"not null;index:idx_cash_tx_register_date,priority:2"`
}

// TableName returns the table name for GORM
func (CashTransactionModel) TableName() string {
	return "cash_transactions"
}

// ToDomain converts the persistence model to a domain CashTransaction entity.
func (m *CashTransactionModel) ToDomain() *cashbox.CashTransaction {
	return &cashbox.CashTransaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		BusinessID:      m.BusinessID,
		RegisterID:      m.RegisterID,
		TransactionType: m.TransactionType,
		Direction:       m.Direction,
		Amount:          m.Amount,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		ActorID:         m.ActorID,
		Remark:          m.Remark,
		TransactionDate: m.TransactionDate,
	}
}

// FromDomain populates the persistence model from a domain CashTransaction entity.
func (m *CashTransactionModel) FromDomain(t *cashbox.CashTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.BusinessID = t.BusinessID
	m.RegisterID = t.RegisterID
	m.TransactionType = t.TransactionType
	m.Direction = t.Direction
	m.Amount = t.Amount
	m.PreviousBalance = t.PreviousBalance
	m.NewBalance = t.NewBalance
	m.ActorID = t.ActorID
	m.Remark = t.Remark
	m.TransactionDate = t.TransactionDate
}

// CashTransactionModelFromDomain creates a new persistence model from a domain CashTransaction entity.
func CashTransactionModelFromDomain(t *cashbox.CashTransaction) *CashTransactionModel {
	m := &CashTransactionModel{}
	m.FromDomain(t)
	return m
}
