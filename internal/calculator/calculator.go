// Package calculator runs the investment calculators: it validates inputs,
// normalizes cash-flow signs, converts between monthly and yearly periods
// and rates, and assembles the result shown to the user.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/investment-calculator/pkg/constants"
	"github.com/iwvelando/investment-calculator/pkg/finance"
	"github.com/iwvelando/investment-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Input holds the numbers a calculator reads. Payments, present value and
// total investment are money paid in whatever their sign.
type Input struct {
	Periods         int                   `json:"periods"`
	Payment         float64               `json:"payment,omitempty"`
	PresentValue    float64               `json:"presentValue"`
	FutureValue     float64               `json:"futureValue,omitempty"`
	AnnualRate      float64               `json:"annualRate,omitempty"` // percent
	TotalInvestment float64               `json:"totalInvestment,omitempty"`
	Timing          finance.PaymentTiming `json:"timing"`
}

// Result is one calculation. When Error is set the numbers are zero and
// only the message should be shown.
type Result struct {
	Name    string  `json:"name,omitempty"`
	Variant Variant `json:"variant"`
	Error   string  `json:"error,omitempty"`

	// PrimaryValue is the future value in currency, or the annual rate in
	// percent for rate variants.
	PrimaryValue float64 `json:"primaryValue"`
	// PeriodicRate is the decimal rate per period used or found.
	PeriodicRate   float64 `json:"periodicRate"`
	MonthlyPayment float64 `json:"monthlyPayment,omitempty"`

	TotalInvested        float64 `json:"totalInvested"`
	FinalAmount          float64 `json:"finalAmount"`
	Profit               float64 `json:"profit"`
	ProfitPercent        float64 `json:"profitPercent"`
	ProfitPercentDefined bool    `json:"profitPercentDefined"`

	Periods          int    `json:"periods"`
	PeriodUnit       string `json:"periodUnit"`
	PeriodDescriptor string `json:"periodDescriptor"`
	Timing           string `json:"timing"`
	Iterations       int    `json:"iterations,omitempty"`
}

// Failed reports whether the calculation produced only an error message.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Calculator runs calculations with a fixed solver configuration. It holds
// no per-call state and is safe for concurrent use.
type Calculator struct {
	logger *zap.Logger
	solver finance.Solver
}

// New creates a Calculator. A nil logger discards logs.
func New(logger *zap.Logger, solver finance.Solver) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, solver: solver}
}

// Calculate runs one variant over in.
func (c *Calculator) Calculate(name string, variant Variant, in Input) (Result, error) {
	if _, err := ParseVariant(string(variant)); err != nil {
		return Result{}, err
	}
	if err := in.validate(variant); err != nil {
		return Result{}, err
	}

	result := Result{
		Name:       name,
		Variant:    variant,
		Periods:    in.Periods,
		PeriodUnit: variant.PeriodUnit(),
		Timing:     in.Timing.String(),
	}

	var err error
	switch variant {
	case FutureValue, FutureValueMonthly:
		err = c.futureValue(variant, in, &result)
	case RequiredRate, RequiredRateMonthly:
		err = c.requiredRate(variant, in, &result)
	case AnnualRateFromReport:
		err = c.rateFromReport(in, &result)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", variant, err)
	}

	metrics, err := finance.DeriveMetrics(result.TotalInvested, result.FinalAmount)
	switch {
	case errors.Is(err, finance.ErrDivisionUndefined):
		c.logger.Debug("return percentage undefined for zero investment",
			zap.String("op", "calculator.Calculate"),
			zap.String("name", name),
		)
	case err != nil:
		return Result{}, err
	default:
		result.ProfitPercentDefined = true
	}
	result.Profit = metrics.Profit
	result.ProfitPercent = metrics.ProfitPercent

	months := in.Periods
	if !variant.Monthly() {
		months *= constants.MonthsPerYear
	}
	result.PeriodDescriptor = finance.DescribePeriod(months)

	c.logger.Debug("calculation complete",
		zap.String("op", "calculator.Calculate"),
		zap.String("name", name),
		zap.String("variant", string(variant)),
		zap.Float64("primaryValue", result.PrimaryValue),
		zap.Int("iterations", result.Iterations),
	)

	return result, nil
}

func (c *Calculator) futureValue(variant Variant, in Input, result *Result) error {
	rate := mathutil.PercentToDecimal(in.AnnualRate)
	if variant.Monthly() {
		rate /= constants.MonthsPerYear
	}

	fv := finance.FutureValue(rate, in.Periods, finance.Outflow(in.Payment), finance.Outflow(in.PresentValue), in.Timing)
	if !mathutil.IsFinite(fv) {
		return fmt.Errorf("%w: future value overflows at %g%%", ErrInvalidInput, in.AnnualRate)
	}

	result.PrimaryValue = fv
	result.PeriodicRate = rate
	result.FinalAmount = fv
	result.TotalInvested = math.Abs(in.PresentValue) + math.Abs(in.Payment)*float64(in.Periods)
	return nil
}

func (c *Calculator) requiredRate(variant Variant, in Input, result *Result) error {
	solver := c.solver
	guess := constants.PeriodicRateGuess
	if variant.Monthly() {
		solver = solver.Monthly()
		guess = constants.MonthlyRateGuess
	}

	solution, err := solver.RequiredRate(in.Periods, finance.Outflow(in.Payment), finance.Outflow(in.PresentValue), in.FutureValue, in.Timing, guess)
	if err != nil {
		return err
	}

	annual := solution.Rate
	if variant.Monthly() {
		annual *= constants.MonthsPerYear
	}

	result.PrimaryValue = mathutil.DecimalToPercent(annual)
	result.PeriodicRate = solution.Rate
	result.Iterations = solution.Iterations
	result.FinalAmount = in.FutureValue
	result.TotalInvested = math.Abs(in.PresentValue) + math.Abs(in.Payment)*float64(in.Periods)
	return nil
}

func (c *Calculator) rateFromReport(in Input, result *Result) error {
	report, err := c.solver.AnnualizedRateFromReport(in.Periods, in.TotalInvestment, in.PresentValue, in.FutureValue, in.Timing)
	if err != nil {
		return err
	}

	result.PrimaryValue = mathutil.DecimalToPercent(report.AnnualRate)
	result.PeriodicRate = report.MonthlyRate
	result.MonthlyPayment = math.Abs(report.MonthlyPayment)
	result.Iterations = report.Iterations
	result.FinalAmount = in.FutureValue
	result.TotalInvested = math.Abs(in.PresentValue) + math.Abs(in.TotalInvestment)
	return nil
}

func (in Input) validate(variant Variant) error {
	if in.Periods < 1 {
		return fmt.Errorf("%w: got %d", finance.ErrInvalidPeriods, in.Periods)
	}
	if _, err := finance.ParsePaymentTiming(int(in.Timing)); err != nil {
		return err
	}
	for _, field := range FieldsFor(variant) {
		value, ok := in.number(field.Name)
		if ok && !mathutil.IsFinite(value) {
			return &FieldError{Field: field.Name, Label: field.Label, Err: ErrInvalidInput}
		}
	}
	return nil
}
