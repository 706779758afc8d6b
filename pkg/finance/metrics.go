package finance

import (
	"fmt"

	"github.com/iwvelando/investment-calculator/pkg/constants"
)

// Metrics is the gain of a final amount over what was invested.
type Metrics struct {
	Profit        float64
	ProfitPercent float64
}

// DeriveMetrics computes profit and the profit as a percentage of
// totalInvested. When nothing was invested the percentage is undefined:
// Profit is still filled in and ErrDivisionUndefined is returned.
func DeriveMetrics(totalInvested, finalAmount float64) (Metrics, error) {
	metrics := Metrics{Profit: finalAmount - totalInvested}
	if totalInvested == 0 {
		return metrics, ErrDivisionUndefined
	}
	metrics.ProfitPercent = metrics.Profit / totalInvested * constants.PercentageMultiplier
	return metrics, nil
}

// DescribePeriod renders a month count as "2 years and 1 month",
// "1 year" or "5 months".
func DescribePeriod(totalMonths int) string {
	years := totalMonths / constants.MonthsPerYear
	months := totalMonths % constants.MonthsPerYear

	if years == 0 {
		return plural(months, "month")
	}
	if months == 0 {
		return plural(years, "year")
	}
	return plural(years, "year") + " and " + plural(months, "month")
}

func plural(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, unit)
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
