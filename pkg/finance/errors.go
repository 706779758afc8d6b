package finance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriods is returned when the number of periods is not positive.
	ErrInvalidPeriods = errors.New("number of periods must be at least 1")
	// ErrInvalidTiming is returned for payment timing flags other than 0 or 1.
	ErrInvalidTiming = errors.New("payment timing must be 0 (end of period) or 1 (beginning of period)")
	// ErrDivisionUndefined is returned when a percentage is taken of a zero base.
	ErrDivisionUndefined = errors.New("percentage of a zero amount is undefined")
	// ErrConvergence is matched by every ConvergenceError.
	ErrConvergence = errors.New("rate did not converge")
)

// ConvergenceError describes why the rate solver gave up.
type ConvergenceError struct {
	Reason     string
	Iterations int
	LastRate   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %s after %d iterations (last rate %g)",
		ErrConvergence, e.Reason, e.Iterations, e.LastRate)
}

// Unwrap lets errors.Is match ErrConvergence.
func (e *ConvergenceError) Unwrap() error {
	return ErrConvergence
}
