// Package finance implements the time-value-of-money math behind the
// calculators: future value of an annuity, solving for the periodic rate,
// and the profit metrics derived from both.
//
// Cash-flow signs follow the spreadsheet convention: money paid in
// (payments, present value) is negative and money received (future value)
// is positive. FutureValue and the solver take already-signed values; the
// calculators normalize raw inputs with Outflow first.
package finance

import "math"

// Outflow returns -|amount|, the sign the formulas expect for money paid in.
func Outflow(amount float64) float64 {
	return -math.Abs(amount)
}

// FutureValue returns the value after periods of compounding at rate per
// period of presentValue plus an equal payment each period:
//
//	FV = -(PV*(1+r)^n + PMT*((1+r)^n-1)/r*(1+r*timing))
//
// A zero rate degenerates to -(PV + PMT*n). Periods and rate must share a
// unit; pass rate/12 and months for monthly compounding.
func FutureValue(rate float64, periods int, payment, presentValue float64, timing PaymentTiming) float64 {
	n := float64(periods)
	if rate == 0 {
		return -(presentValue + payment*n)
	}
	growth, annuity := growthTerms(rate, n)
	var fv float64
	// Skip zero flows so an overflowing growth term does not turn 0*Inf into NaN.
	if presentValue != 0 {
		fv += presentValue * growth
	}
	if payment != 0 {
		fv += payment * (1 + rate*timing.factor()) * annuity
	}
	return -fv
}

// futureValueDerivative is d(FutureValue)/d(rate).
func futureValueDerivative(rate float64, periods int, payment, presentValue float64, timing PaymentTiming) float64 {
	n := float64(periods)
	t := timing.factor()
	if math.Abs(rate) < 1e-8 {
		// Limits as rate -> 0 of the growth and annuity derivatives.
		return -(presentValue*n + payment*(t*n+n*(n-1)/2))
	}
	growth, annuity := growthTerms(rate, n)
	dGrowth := n * growth / (1 + rate)
	var d float64
	if presentValue != 0 {
		d += presentValue * dGrowth
	}
	if payment != 0 {
		dAnnuity := (dGrowth - annuity) / rate
		d += payment * (t*annuity + (1+rate*t)*dAnnuity)
	}
	return -d
}

// growthTerms returns (1+r)^n and ((1+r)^n-1)/r. The annuity factor goes
// through Expm1 so small rates keep their precision.
func growthTerms(rate, n float64) (growth, annuity float64) {
	exponent := n * math.Log1p(rate)
	growth = math.Exp(exponent)
	annuity = math.Expm1(exponent) / rate
	return growth, annuity
}
