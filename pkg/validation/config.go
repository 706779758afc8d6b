package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/investment-calculator/pkg/constants"
	"github.com/iwvelando/investment-calculator/pkg/mathutil"
)

// CalculationConfig is the subset of a configured calculation that is checked.
type CalculationConfig struct {
	Name            string
	Type            string
	Active          bool
	Periods         float64
	Payment         float64
	PresentValue    float64
	FutureValue     float64
	TotalInvestment float64
	Timing          float64
}

// ConfigValidator collects warnings about a list of calculations.
type ConfigValidator struct {
	Calculations []CalculationConfig
}

// knownTypes are the calculator variants a configuration may name.
var knownTypes = map[string]bool{
	constants.VariantFutureValue:          true,
	constants.VariantFutureValueMonthly:   true,
	constants.VariantRequiredRate:         true,
	constants.VariantRequiredRateMonthly:  true,
	constants.VariantAnnualRateFromReport: true,
}

// IsKnownType reports whether name is a calculator variant.
func IsKnownType(name string) bool {
	return knownTypes[name]
}

// ValidateAll validates the calculations and returns warnings. Inactive
// calculations are only checked for duplicate names.
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]int)
	active := 0
	for _, calc := range cv.Calculations {
		seen[calc.Name]++
		if seen[calc.Name] == 2 {
			warnings = append(warnings, fmt.Sprintf("Calculation name '%s' is used more than once", calc.Name))
		}
		if !calc.Active {
			continue
		}
		active++
		warnings = append(warnings, ValidateCalculation(calc)...)
	}

	if len(cv.Calculations) > 0 && active == 0 {
		warnings = append(warnings, "No calculations are active")
	}
	return warnings
}

// ValidateCalculation returns warnings for a single calculation.
func ValidateCalculation(calc CalculationConfig) []string {
	var warnings []string
	label := fmt.Sprintf("Calculation '%s'", calc.Name)

	if !IsKnownType(calc.Type) {
		return append(warnings, fmt.Sprintf("%s has unknown type '%s'", label, calc.Type))
	}
	if calc.Periods < 1 || calc.Periods != math.Trunc(calc.Periods) {
		warnings = append(warnings, fmt.Sprintf("%s has %g periods and will fail; expected a whole number of at least 1", label, calc.Periods))
	}
	if calc.Timing != 0 && calc.Timing != 1 {
		warnings = append(warnings, fmt.Sprintf("%s has timing %g; expected 0 or 1", label, calc.Timing))
	}
	if calc.Payment < 0 || calc.PresentValue < 0 || calc.TotalInvestment < 0 {
		warnings = append(warnings, fmt.Sprintf("%s has negative amounts; they are treated as money paid in", label))
	}

	switch calc.Type {
	case constants.VariantRequiredRate, constants.VariantRequiredRateMonthly:
		invested := math.Abs(calc.PresentValue) + math.Abs(calc.Payment)*calc.Periods
		if calc.FutureValue > 0 && notAbove(calc.FutureValue, invested) {
			warnings = append(warnings, fmt.Sprintf("%s target %.2f does not exceed the %.2f invested; the rate will be zero or negative",
				label, calc.FutureValue, invested))
		}
	case constants.VariantAnnualRateFromReport:
		invested := math.Abs(calc.PresentValue) + math.Abs(calc.TotalInvestment)
		if calc.FutureValue > 0 && notAbove(calc.FutureValue, invested) {
			warnings = append(warnings, fmt.Sprintf("%s final amount %.2f does not exceed the %.2f invested; the rate will be zero or negative",
				label, calc.FutureValue, invested))
		}
	}
	return warnings
}

// notAbove reports whether target is at most invested, to the cent.
func notAbove(target, invested float64) bool {
	return target < invested || mathutil.WithinTolerance(target, invested, constants.CurrencyTolerance)
}
