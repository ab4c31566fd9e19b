package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/shopspring/decimal"
)

// CommissionModel is the persistence model for the Commission aggregate root.
type CommissionModel struct {
	BusinessAggregateModel
	SaleID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	LineItemID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	ExpertID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	LineType         commission.LineType `gorm:"type:varchar(20);not null"`
	BaseAmount       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	InputCosts       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	NetAmount        decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	AppliedRate      decimal.Decimal     `gorm:"type:decimal(9,4);not null"`
	CommissionAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Status           commission.Status   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaidAt           *time.Time
	CancelledAt      *time.Time
	CancelReason     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CommissionModel) TableName() string {
	return "commissions"
}

// ToDomain converts the persistence model to a domain Commission entity.
func (m *CommissionModel) ToDomain() *commission.Commission {
	c := &commission.Commission{
		SaleID:           m.SaleID,
		LineItemID:       m.LineItemID,
		ExpertID:         m.ExpertID,
		LineType:         m.LineType,
		BaseAmount:       m.BaseAmount,
		InputCosts:       m.InputCosts,
		NetAmount:        m.NetAmount,
		AppliedRate:      m.AppliedRate,
		CommissionAmount: m.CommissionAmount,
		Status:           m.Status,
		PaidAt:           m.PaidAt,
		CancelledAt:      m.CancelledAt,
		CancelReason:     m.CancelReason,
	}
	m.PopulateBusinessAggregateRoot(&c.BusinessAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Commission entity.
func (m *CommissionModel) FromDomain(c *commission.Commission) {
	m.FromDomainBusinessAggregateRoot(c.BusinessAggregateRoot)
	m.SaleID = c.SaleID
	m.LineItemID = c.LineItemID
	m.ExpertID = c.ExpertID
	m.LineType = c.LineType
	m.BaseAmount = c.BaseAmount
	m.InputCosts = c.InputCosts
	m.NetAmount = c.NetAmount
	m.AppliedRate = c.AppliedRate
	m.CommissionAmount = c.CommissionAmount
	m.Status = c.Status
	m.PaidAt = c.PaidAt
	m.CancelledAt = c.CancelledAt
	m.CancelReason = c.CancelReason
}

// CommissionModelFromDomain creates a new persistence model from a domain Commission entity.
func CommissionModelFromDomain(c *commission.Commission) *CommissionModel {
	m := &CommissionModel{}
	m.FromDomain(c)
	return m
}
