package commission

import (
	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// LineType tags the kind of sale line a commission derives from
type LineType string

const (
	LineTypeService LineType = "SERVICE"
	LineTypeRetail  LineType = "RETAIL"
)

// IsValid checks if the line type is valid
func (t LineType) IsValid() bool {
	return t == LineTypeService || t == LineTypeRetail
}

// String returns the string representation of LineType
func (t LineType) String() string {
	return string(t)
}

// LineInput is the engine's view of a sale line item. The sale context maps
// its line items into this shape so the engine stays free of sale internals.
type LineInput struct {
	LineItemID  uuid.UUID
	LineType    LineType
	GrossAmount decimal.Decimal
	InputCosts  decimal.Decimal // Sum of consumed input costs; zero for retail lines
}

// Result carries the outcome of a commission computation.
// AppliedRate is the nominal percent used, not an effective rate.
type Result struct {
	BaseAmount  decimal.Decimal
	InputCosts  decimal.Decimal
	NetAmount   decimal.Decimal
	AppliedRate decimal.Decimal
	Amount      decimal.Decimal
}

// Compute calculates the commission for a single sale line under the given
// expert configuration. Pure function: no side effects, no clock, no IO.
//
// Retail lines pay gross x retail rate with no minimum/maximum clamp; only
// service commissions are clamped. The asymmetry is deliberate business
// policy, not an oversight.
//
// For AFTER_INPUTS service lines the base may go negative when input costs
// exceed the gross amount. The base is not floored at zero; the minimum
// clamp may still lift the final commission positive.
func Compute(line LineInput, config staff.CommissionConfig) (Result, error) {
	if err := config.Validate(); err != nil {
		return Result{}, err
	}

	netAmount := line.GrossAmount.Sub(line.InputCosts)

	if line.LineType == LineTypeRetail {
		rate, err := config.RetailRate()
		if err != nil {
			return Result{}, err
		}
		return Result{
			BaseAmount:  line.GrossAmount,
			InputCosts:  decimal.Zero,
			NetAmount:   line.GrossAmount,
			AppliedRate: rate.Value(),
			Amount:      rate.ApplyTo(line.GrossAmount).Round(2),
		}, nil
	}

	base := line.GrossAmount
	if config.CalculationMethod == staff.CalculationAfterInputs {
		base = netAmount
	}

	rate, err := config.ServiceRate()
	if err != nil {
		return Result{}, err
	}
	amount := rate.ApplyTo(base)
	if amount.LessThan(config.MinimumService) {
		amount = config.MinimumService
	}
	if config.MaximumService != nil && amount.GreaterThan(*config.MaximumService) {
		amount = *config.MaximumService
	}

	return Result{
		BaseAmount:  base,
		InputCosts:  line.InputCosts,
		NetAmount:   netAmount,
		AppliedRate: rate.Value(),
		Amount:      amount.Round(2),
	}, nil
}
