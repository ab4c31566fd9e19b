package staff

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Role discriminates the unified person record
type Role string

const (
	RoleUser   Role = "USER"   // Back-office staff
	RoleExpert Role = "EXPERT" // Commissionable service provider (stylist, therapist)
	RoleClient Role = "CLIENT"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleExpert, RoleClient:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CalculationMethod selects the commission base for service lines
type CalculationMethod string

const (
	// CalculationBeforeInputs commissions the gross service amount
	CalculationBeforeInputs CalculationMethod = "BEFORE_INPUTS"
	// CalculationAfterInputs commissions gross minus consumed input costs
	CalculationAfterInputs CalculationMethod = "AFTER_INPUTS"
)

// IsValid checks if the method is a valid CalculationMethod
func (m CalculationMethod) IsValid() bool {
	return m == CalculationBeforeInputs || m == CalculationAfterInputs
}

// String returns the string representation of CalculationMethod
func (m CalculationMethod) String() string {
	return string(m)
}

// CommissionConfig holds an expert's commission settings.
// Percentages are nominal rates in [0,100]; the minimum applies to service
// commissions only, and the maximum is optional.
type CommissionConfig struct {
	ServicePercent    decimal.Decimal   `json:"service_percent"`
	RetailPercent     decimal.Decimal   `json:"retail_percent"`
	CalculationMethod CalculationMethod `json:"calculation_method"`
	MinimumService    decimal.Decimal   `json:"minimum_service"`
	MaximumService    *decimal.Decimal  `json:"maximum_service,omitempty"`
}

// ServiceRate returns the service commission rate as a Percent
func (c CommissionConfig) ServiceRate() (valueobject.Percent, error) {
	rate, err := valueobject.NewPercent(c.ServicePercent)
	if err != nil {
		return valueobject.Percent{}, shared.NewDomainError(shared.CodeInvalidCommissionConfig,
			fmt.Sprintf("Service commission percent must be in [0,100], got %s", c.ServicePercent))
	}
	return rate, nil
}

// RetailRate returns the retail commission rate as a Percent
func (c CommissionConfig) RetailRate() (valueobject.Percent, error) {
	rate, err := valueobject.NewPercent(c.RetailPercent)
	if err != nil {
		return valueobject.Percent{}, shared.NewDomainError(shared.CodeInvalidCommissionConfig,
			fmt.Sprintf("Retail commission percent must be in [0,100], got %s", c.RetailPercent))
	}
	return rate, nil
}

// Validate checks the config invariants: rates in [0,100], minimum not
// negative, minimum <= maximum when a maximum is set.
func (c CommissionConfig) Validate() error {
	if _, err := c.ServiceRate(); err != nil {
		return err
	}
	if _, err := c.RetailRate(); err != nil {
		return err
	}
	if !c.CalculationMethod.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidCommissionConfig,
			fmt.Sprintf("Unknown calculation method %q", c.CalculationMethod))
	}
	if c.MinimumService.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidCommissionConfig, "Minimum service commission cannot be negative")
	}
	if c.MaximumService != nil && c.MinimumService.GreaterThan(*c.MaximumService) {
		return shared.NewDomainError(shared.CodeInvalidCommissionConfig,
			fmt.Sprintf("Minimum service commission %s exceeds maximum %s", c.MinimumService, c.MaximumService))
	}
	return nil
}

// Person is the unified user/expert/client record.
// The settlement core only reads it; person CRUD lives elsewhere.
type Person struct {
	shared.BusinessAggregateRoot
	Name             string            `json:"name"`
	Role             Role              `json:"role"`
	Active           bool              `json:"active"`
	CommissionConfig *CommissionConfig `json:"commission_config,omitempty"` // Set only for experts
}

// NewExpert creates an active expert with the given commission configuration
func NewExpert(businessID uuid.UUID, name string, config CommissionConfig) (*Person, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Person name cannot be empty")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Person{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Role:                  RoleExpert,
		Active:                true,
		CommissionConfig:      &config,
	}, nil
}

// IsActiveExpert returns true if the person is an active, commissionable expert
func (p *Person) IsActiveExpert() bool {
	return p.Role == RoleExpert && p.Active
}

// ExpertConfig returns the validated commission configuration.
// Fails when the person is not an expert or the config is missing/malformed.
func (p *Person) ExpertConfig() (CommissionConfig, error) {
	if p.Role != RoleExpert {
		return CommissionConfig{}, shared.NewDomainError(shared.CodeInvalidCommissionConfig,
			fmt.Sprintf("Person %s has role %s, not expert", p.ID, p.Role))
	}
	if p.CommissionConfig == nil {
		return CommissionConfig{}, shared.NewDomainError(shared.CodeInvalidCommissionConfig,
			fmt.Sprintf("Expert %s has no commission configuration", p.ID))
	}
	if err := p.CommissionConfig.Validate(); err != nil {
		return CommissionConfig{}, err
	}
	return *p.CommissionConfig, nil
}

// Deactivate marks the person inactive. Historical commissions keep referencing it.
func (p *Person) Deactivate() {
	p.Active = false
	p.IncrementVersion()
}
