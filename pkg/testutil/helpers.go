// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/investment-calculator/internal/calculator"
)

// FindResult finds a calculation result by name in the results slice.
// Returns a pointer to the first match, nil otherwise.
func FindResult(results []calculator.Result, name string) *calculator.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// SampleResults returns one successful result per calculator plus a failed
// one, for output and rendering tests.
func SampleResults() []calculator.Result {
	return []calculator.Result{
		{
			Name:                 "retirement",
			Variant:              calculator.FutureValueMonthly,
			PrimaryValue:         91473.0176,
			PeriodicRate:         0.08 / 12,
			TotalInvested:        60000,
			FinalAmount:          91473.0176,
			Profit:               31473.0176,
			ProfitPercent:        52.455029,
			ProfitPercentDefined: true,
			Periods:              120,
			PeriodUnit:           calculator.UnitMonths,
			PeriodDescriptor:     "10 years",
			Timing:               "end",
		},
		{
			Name:                 "fund report",
			Variant:              calculator.AnnualRateFromReport,
			PrimaryValue:         4.6,
			PeriodicRate:         0.0038333,
			MonthlyPayment:       500,
			TotalInvested:        23000,
			FinalAmount:          25000,
			Profit:               2000,
			ProfitPercent:        8.6957,
			ProfitPercentDefined: true,
			Periods:              36,
			PeriodUnit:           calculator.UnitMonths,
			PeriodDescriptor:     "3 years",
			Timing:               "end",
			Iterations:           5,
		},
		{
			Name:             "nothing invested",
			Variant:          calculator.FutureValue,
			Periods:          5,
			PeriodUnit:       calculator.UnitYears,
			PeriodDescriptor: "5 years",
			Timing:           "end",
		},
		{
			Name:    "moonshot",
			Variant: calculator.AnnualRateFromReport,
			Error:   calculator.MessageUnrealistic,
		},
	}
}
