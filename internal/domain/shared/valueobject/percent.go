package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a value object for percentage rates in the range [0,100].
// It is immutable.
type Percent struct {
	value decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewPercent creates a Percent, rejecting values outside [0,100]
func NewPercent(value decimal.Decimal) (Percent, error) {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return Percent{}, fmt.Errorf("percent must be in [0,100], got %s", value)
	}
	return Percent{value: value}, nil
}

// NewPercentFromFloat creates a Percent from a float64
func NewPercentFromFloat(value float64) (Percent, error) {
	return NewPercent(decimal.NewFromFloat(value))
}

// MustPercent creates a Percent, panics on out-of-range values.
// Intended for constants and tests.
func MustPercent(value float64) Percent {
	p, err := NewPercentFromFloat(value)
	if err != nil {
		panic(err)
	}
	return p
}

// ZeroPercent returns a 0% rate
func ZeroPercent() Percent {
	return Percent{value: decimal.Zero}
}

// Value returns the nominal percentage value
func (p Percent) Value() decimal.Decimal {
	return p.value
}

// IsZero returns true if the rate is 0%
func (p Percent) IsZero() bool {
	return p.value.IsZero()
}

// ApplyTo returns value * p / 100
func (p Percent) ApplyTo(value decimal.Decimal) decimal.Decimal {
	return value.Mul(p.value).Div(hundred)
}

// ApplyToMoney returns the percentage of the given Money
func (p Percent) ApplyToMoney(m Money) Money {
	return m.ApplyPercent(p.value)
}

// Equals returns true if both rates are equal
func (p Percent) Equals(other Percent) bool {
	return p.value.Equal(other.value)
}

// String returns the rate as "NN.NN%"
func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}
