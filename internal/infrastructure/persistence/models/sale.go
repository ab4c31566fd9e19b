package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// InputCostsColumn stores a line's consumed input costs as JSONB
type InputCostsColumn []sale.InputCost

// Value implements driver.Valuer for GORM
func (c InputCostsColumn) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for GORM
func (c *InputCostsColumn) Scan(value interface{}) error {
	if value == nil {
		*c = InputCostsColumn{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan InputCostsColumn: unsupported type")
	}

	if len(bytes) == 0 {
		*c = InputCostsColumn{}
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	BusinessAggregateModel
	SaleNumber    string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_business_number,priority:2"`
	ClientID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items         []SaleLineItemModel `gorm:"foreignKey:SaleID;references:ID"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status        sale.Status         `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	InvoiceNumber *int64              `gorm:"uniqueIndex:idx_sale_business_invoice,priority:2"`
	Notes         string              `gorm:"type:text"`
	InProcessAt   *time.Time
	ClosedAt      *time.Time `gorm:"index"`
	ClosedBy      *uuid.UUID `gorm:"type:uuid"`
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *sale.Sale {
	s := &sale.Sale{
		SaleNumber:    m.SaleNumber,
		ClientID:      m.ClientID,
		TotalAmount:   m.TotalAmount,
		Status:        m.Status,
		InvoiceNumber: m.InvoiceNumber,
		Notes:         m.Notes,
		InProcessAt:   m.InProcessAt,
		ClosedAt:      m.ClosedAt,
		ClosedBy:      m.ClosedBy,
		CancelledAt:   m.CancelledAt,
		CancelReason:  m.CancelReason,
		Items:         make([]sale.LineItem, len(m.Items)),
	}
	m.PopulateBusinessAggregateRoot(&s.BusinessAggregateRoot)
	for i, item := range m.Items {
		s.Items[i] = *item.ToDomain()
	}
	return s
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *sale.Sale) {
	m.FromDomainBusinessAggregateRoot(s.BusinessAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.ClientID = s.ClientID
	m.TotalAmount = s.TotalAmount
	m.Status = s.Status
	m.InvoiceNumber = s.InvoiceNumber
	m.Notes = s.Notes
	m.InProcessAt = s.InProcessAt
	m.ClosedAt = s.ClosedAt
	m.ClosedBy = s.ClosedBy
	m.CancelledAt = s.CancelledAt
	m.CancelReason = s.CancelReason
	m.Items = make([]SaleLineItemModel, len(s.Items))
	for i, item := range s.Items {
		m.Items[i] = *SaleLineItemModelFromDomain(&item)
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *sale.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleLineItemModel is the persistence model for the LineItem entity.
type SaleLineItemModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	SaleID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	ExpertID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	ItemType    sale.ItemType    `gorm:"type:varchar(20);not null"`
	Description string           `gorm:"type:varchar(500)"`
	GrossAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	InputCosts  InputCostsColumn `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleLineItemModel) TableName() string {
	return "sale_line_items"
}

// ToDomain converts the persistence model to a domain LineItem entity.
func (m *SaleLineItemModel) ToDomain() *sale.LineItem {
	return &sale.LineItem{
		ID:          m.ID,
		SaleID:      m.SaleID,
		ExpertID:    m.ExpertID,
		ItemType:    m.ItemType,
		Description: m.Description,
		GrossAmount: m.GrossAmount,
		InputCosts:  m.InputCosts,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain LineItem entity.
func (m *SaleLineItemModel) FromDomain(i *sale.LineItem) {
	m.ID = i.ID
	m.SaleID = i.SaleID
	m.ExpertID = i.ExpertID
	m.ItemType = i.ItemType
	m.Description = i.Description
	m.GrossAmount = i.GrossAmount
	m.InputCosts = i.InputCosts
	m.CreatedAt = i.CreatedAt
}

// SaleLineItemModelFromDomain creates a new persistence model from a domain LineItem entity.
func SaleLineItemModelFromDomain(i *sale.LineItem) *SaleLineItemModel {
	m := &SaleLineItemModel{}
	m.FromDomain(i)
	return m
}
