package calculator

import (
	"fmt"
	"math"

	"github.com/iwvelando/investment-calculator/internal/config"
	"github.com/iwvelando/investment-calculator/pkg/finance"
	"go.uber.org/zap"
)

// InputFromConfig converts a configured calculation into a variant and Input.
func InputFromConfig(calc config.Calculation) (Variant, Input, error) {
	variant, err := ParseVariant(calc.Type)
	if err != nil {
		return "", Input{}, err
	}
	periods, err := wholeNumber(calc.Periods, finance.ErrInvalidPeriods)
	if err != nil {
		return "", Input{}, err
	}
	flag, err := wholeNumber(calc.Timing, finance.ErrInvalidTiming)
	if err != nil {
		return "", Input{}, err
	}
	timing, err := finance.ParsePaymentTiming(flag)
	if err != nil {
		return "", Input{}, err
	}
	return variant, Input{
		Periods:         periods,
		Payment:         calc.Payment,
		PresentValue:    calc.PresentValue,
		FutureValue:     calc.FutureValue,
		AnnualRate:      calc.AnnualRate,
		TotalInvestment: calc.TotalInvestment,
		Timing:          timing,
	}, nil
}

// wholeNumber converts a decoded config number to an int, wrapping sentinel
// when it has a fractional part or does not fit.
func wholeNumber(value float64, sentinel error) (int, error) {
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %g is not a whole number", sentinel, value)
	}
	return int(value), nil
}

// Run processes every active calculation in conf. A calculation that fails
// still yields a Result carrying only its user-facing error message, so one
// bad entry does not hide the others.
func (c *Calculator) Run(conf config.Configuration) []Result {
	active := conf.ActiveCalculations()
	if skipped := len(conf.Calculations) - len(active); skipped > 0 {
		c.logger.Debug(fmt.Sprintf("skipping %d inactive calculations", skipped),
			zap.String("op", "calculator.Run"),
		)
	}

	var results []Result
	for _, calc := range active {
		variant, in, err := InputFromConfig(calc)
		if err == nil {
			var result Result
			result, err = c.Calculate(calc.Name, variant, in)
			if err == nil {
				results = append(results, result)
				continue
			}
		}

		c.logger.Error("calculation failed",
			zap.String("op", "calculator.Run"),
			zap.String("name", calc.Name),
			zap.String("type", calc.Type),
			zap.Error(err),
		)
		results = append(results, Result{
			Name:    calc.Name,
			Variant: Variant(calc.Type),
			Error:   UserMessage(err),
		})
	}
	return results
}
