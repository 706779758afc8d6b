package calculator

import (
	"fmt"

	"github.com/iwvelando/investment-calculator/pkg/constants"
)

// Variant selects which calculator runs.
type Variant string

const (
	// FutureValue grows yearly payments at an annual rate over years.
	FutureValue Variant = constants.VariantFutureValue
	// FutureValueMonthly grows monthly payments at an annual rate compounded monthly.
	FutureValueMonthly Variant = constants.VariantFutureValueMonthly
	// RequiredRate solves the yearly rate that reaches a goal.
	RequiredRate Variant = constants.VariantRequiredRate
	// RequiredRateMonthly solves the monthly rate that reaches a goal and annualizes it.
	RequiredRateMonthly Variant = constants.VariantRequiredRateMonthly
	// AnnualRateFromReport infers the annual rate a fund earned from its statement.
	AnnualRateFromReport Variant = constants.VariantAnnualRateFromReport
)

// Period units reported in results.
const (
	UnitYears  = "years"
	UnitMonths = "months"
)

// Variants lists every calculator in display order.
func Variants() []Variant {
	return []Variant{FutureValue, FutureValueMonthly, RequiredRate, RequiredRateMonthly, AnnualRateFromReport}
}

// ParseVariant validates a variant name.
func ParseVariant(name string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Monthly reports whether periods are counted in months.
func (v Variant) Monthly() bool {
	return v == FutureValueMonthly || v == RequiredRateMonthly || v == AnnualRateFromReport
}

// SolvesRate reports whether the headline value is a rate rather than an amount.
func (v Variant) SolvesRate() bool {
	return v == RequiredRate || v == RequiredRateMonthly || v == AnnualRateFromReport
}

// PeriodUnit is "months" or "years".
func (v Variant) PeriodUnit() string {
	if v.Monthly() {
		return UnitMonths
	}
	return UnitYears
}

// Title is the heading shown above a result.
func (v Variant) Title() string {
	switch v {
	case FutureValue, FutureValueMonthly:
		return "Future value of your investment"
	case RequiredRate:
		return "Required annual interest rate to reach your goal"
	case RequiredRateMonthly:
		return "Required annual interest rate to reach your goal (monthly payments)"
	case AnnualRateFromReport:
		return "Annual interest rate earned"
	default:
		return string(v)
	}
}
