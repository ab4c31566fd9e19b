package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/salonkit/backend/internal/domain/staff"
)

// CommissionConfigColumn stores an expert's commission settings as JSONB.
// It is NULL for non-expert roles.
type CommissionConfigColumn struct {
	Config *staff.CommissionConfig
}

// Value implements driver.Valuer for GORM
func (c CommissionConfigColumn) Value() (driver.Value, error) {
	if c.Config == nil {
		return nil, nil
	}
	return json.Marshal(c.Config)
}

// Scan implements sql.Scanner for GORM
func (c *CommissionConfigColumn) Scan(value interface{}) error {
	if value == nil {
		c.Config = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan CommissionConfigColumn: unsupported type")
	}

	if len(bytes) == 0 {
		c.Config = nil
		return nil
	}

	var cfg staff.CommissionConfig
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return err
	}
	c.Config = &cfg
	return nil
}

// PersonModel is the persistence model for the unified Person record.
// The settlement core only reads people; writes happen in the identity
// subsystem against the same table.
type PersonModel struct {
	BusinessAggregateModel
	Name             string                 `gorm:"type:varchar(200);not null"`
	Role             staff.Role             `gorm:"type:varchar(20);not null;index"`
	Active           bool                   `gorm:"not null;default:true;index"`
	CommissionConfig CommissionConfigColumn `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (PersonModel) TableName() string {
	return "people"
}

// ToDomain converts the persistence model to a domain Person entity.
func (m *PersonModel) ToDomain() *staff.Person {
	p := &staff.Person{
		Name:             m.Name,
		Role:             m.Role,
		Active:           m.Active,
		CommissionConfig: m.CommissionConfig.Config,
	}
	m.PopulateBusinessAggregateRoot(&p.BusinessAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Person entity.
func (m *PersonModel) FromDomain(p *staff.Person) {
	m.FromDomainBusinessAggregateRoot(p.BusinessAggregateRoot)
	m.Name = p.Name
	m.Role = p.Role
	m.Active = p.Active
	m.CommissionConfig = CommissionConfigColumn{Config: p.CommissionConfig}
}

// PersonModelFromDomain creates a new persistence model from a domain Person entity.
func PersonModelFromDomain(p *staff.Person) *PersonModel {
	m := &PersonModel{}
	m.FromDomain(p)
	return m
}
