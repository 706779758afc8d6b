package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/investment-calculator/pkg/constants"
	"github.com/iwvelando/investment-calculator/pkg/mathutil"
	"gonum.org/v1/gonum/floats/scalar"
)

// Solver holds the bounds for solving the periodic rate. Zero fields fall
// back to the package defaults.
type Solver struct {
	// MaxIterations caps the number of Newton/bisection steps.
	MaxIterations int
	// Tolerance is the absolute change between successive rate estimates
	// at which the solver reports convergence.
	Tolerance float64
	// MinRate and MaxRate bracket the periodic rate. MinRate must be above -1.
	MinRate float64
	MaxRate float64
}

// Solution is a converged periodic rate.
type Solution struct {
	Rate       float64
	Iterations int
}

// ReportRate is the outcome of AnnualizedRateFromReport.
type ReportRate struct {
	MonthlyPayment float64
	MonthlyRate    float64
	AnnualRate     float64
	Iterations     int
}

// DefaultSolver returns the solver used by the package-level helpers.
func DefaultSolver() Solver {
	return Solver{
		MaxIterations: constants.DefaultMaxIterations,
		Tolerance:     constants.DefaultTolerance,
		MinRate:       constants.DefaultMinRate,
		MaxRate:       constants.DefaultMaxRate,
	}
}

// Monthly returns a copy of s with the upper rate bound spread over twelve
// months, so a yearly cap of 100% becomes a monthly cap of 8.33%.
func (s Solver) Monthly() Solver {
	s = s.withDefaults()
	s.MaxRate /= constants.MonthsPerYear
	return s
}

func (s Solver) withDefaults() Solver {
	def := DefaultSolver()
	if s.MaxIterations <= 0 {
		s.MaxIterations = def.MaxIterations
	}
	if s.Tolerance <= 0 {
		s.Tolerance = def.Tolerance
	}
	if s.MinRate == 0 && s.MaxRate == 0 {
		s.MinRate, s.MaxRate = def.MinRate, def.MaxRate
	}
	return s
}

// Validate reports settings the solver cannot work with.
func (s Solver) Validate() error {
	s = s.withDefaults()
	if s.MinRate <= -1 {
		return fmt.Errorf("solver minRate must be greater than -1, got %g", s.MinRate)
	}
	if s.MaxRate <= s.MinRate {
		return fmt.Errorf("solver maxRate (%g) must be greater than minRate (%g)", s.MaxRate, s.MinRate)
	}
	return nil
}

// RequiredRate is Solver.RequiredRate with DefaultSolver settings, returning
// only the periodic rate.
func RequiredRate(periods int, payment, presentValue, futureValue float64, timing PaymentTiming, guess float64) (float64, error) {
	solution, err := DefaultSolver().RequiredRate(periods, payment, presentValue, futureValue, timing, guess)
	if err != nil {
		return 0, err
	}
	return solution.Rate, nil
}

// RequiredRate finds the periodic rate r for which
// FutureValue(r, periods, payment, presentValue, timing) equals futureValue.
// Payment and presentValue must already carry their cash-flow sign.
//
// Newton steps start from guess; any step that leaves the current bracket,
// or a vanishing derivative, falls back to bisection. A target that is not
// bracketed by [MinRate, MaxRate] fails immediately.
func (s Solver) RequiredRate(periods int, payment, presentValue, futureValue float64, timing PaymentTiming, guess float64) (Solution, error) {
	if periods < 1 {
		return Solution{}, fmt.Errorf("%w: got %d", ErrInvalidPeriods, periods)
	}
	if err := s.Validate(); err != nil {
		return Solution{}, err
	}
	s = s.withDefaults()
	if payment == 0 && presentValue == 0 {
		return Solution{}, &ConvergenceError{Reason: "no payments or present value to grow", LastRate: s.MinRate}
	}

	residual := func(rate float64) float64 {
		return FutureValue(rate, periods, payment, presentValue, timing) - futureValue
	}

	lo, hi := s.MinRate, s.MaxRate
	fLo, fHi := residual(lo), residual(hi)
	if math.IsNaN(fLo) || math.IsNaN(fHi) {
		return Solution{}, &ConvergenceError{Reason: "future value is undefined at the rate bounds", LastRate: lo}
	}
	if fLo == 0 {
		return Solution{Rate: lo}, nil
	}
	if fHi == 0 {
		return Solution{Rate: hi}, nil
	}
	if math.Signbit(fLo) == math.Signbit(fHi) {
		return Solution{}, &ConvergenceError{
			Reason:   fmt.Sprintf("target is not reachable with a periodic rate between %g and %g", lo, hi),
			LastRate: hi,
		}
	}

	rate := guess
	if !mathutil.IsFinite(rate) {
		rate = lo + (hi-lo)/2
	}
	rate = mathutil.Clamp(rate, lo, hi)
	step := hi - lo

	for i := 1; i <= s.MaxIterations; i++ {
		f := residual(rate)
		if math.IsNaN(f) {
			return Solution{}, &ConvergenceError{Reason: "future value is not finite", Iterations: i, LastRate: rate}
		}
		if f == 0 {
			return Solution{Rate: rate, Iterations: i}, nil
		}

		if math.Signbit(f) == math.Signbit(fLo) {
			lo, fLo = rate, f
		} else {
			hi = rate
		}

		// Bisect when Newton would leave the bracket or would not at least
		// halve the previous step; exponential growth makes plain Newton
		// crawl from above.
		d := futureValueDerivative(rate, periods, payment, presentValue, timing)
		next := math.NaN()
		if d != 0 {
			next = rate - f/d
		}
		if !mathutil.IsFinite(next) || next <= lo || next >= hi || math.Abs(2*f) > math.Abs(step*d) {
			next = lo + (hi-lo)/2
		}
		if !mathutil.IsFinite(next) {
			return Solution{}, &ConvergenceError{Reason: "rate estimate is not finite", Iterations: i, LastRate: rate}
		}

		if scalar.EqualWithinAbs(next, rate, s.Tolerance) || hi-lo < s.Tolerance {
			return Solution{Rate: next, Iterations: i}, nil
		}
		step = math.Abs(next - rate)
		rate = next
	}

	return Solution{}, &ConvergenceError{Reason: "iteration limit reached", Iterations: s.MaxIterations, LastRate: rate}
}

// AnnualizedRateFromReport is Solver.AnnualizedRateFromReport with
// DefaultSolver settings, returning only the annual rate as a decimal.
func AnnualizedRateFromReport(months int, totalInvestment, presentValue, futureValue float64, timing PaymentTiming) (float64, error) {
	report, err := DefaultSolver().AnnualizedRateFromReport(months, totalInvestment, presentValue, futureValue, timing)
	if err != nil {
		return 0, err
	}
	return report.AnnualRate, nil
}

// AnnualizedRateFromReport derives the annual rate a fund earned from the
// figures on its statement: the sum invested over months (spread evenly as
// a monthly payment), the opening balance and the closing balance. Amounts
// paid in are normalized to outflows here, so raw statement figures can be
// passed as-is. The monthly solution is annualized by simple multiplication.
func (s Solver) AnnualizedRateFromReport(months int, totalInvestment, presentValue, futureValue float64, timing PaymentTiming) (ReportRate, error) {
	if months < 1 {
		return ReportRate{}, fmt.Errorf("%w: got %d", ErrInvalidPeriods, months)
	}
	payment := totalInvestment / float64(months)

	solution, err := s.Monthly().RequiredRate(months, Outflow(payment), Outflow(presentValue), futureValue, timing, constants.MonthlyRateGuess)
	if err != nil {
		return ReportRate{}, err
	}

	return ReportRate{
		MonthlyPayment: payment,
		MonthlyRate:    solution.Rate,
		AnnualRate:     solution.Rate * constants.MonthsPerYear,
		Iterations:     solution.Iterations,
	}, nil
}
