package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/investment-calculator/pkg/finance"
)

var (
	// ErrUnknownVariant is returned for calculator names that do not exist.
	ErrUnknownVariant = errors.New("unknown calculator")
	// ErrInvalidInput is returned for non-finite numbers or results.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingField is wrapped by FieldError when a required field is empty.
	ErrMissingField = errors.New("value is required")
)

// User-facing messages shown in place of a result.
const (
	MessageUnrealistic     = "Please check your inputs. The inputs are unrealistic for the given parameters."
	MessageInvalidPeriods  = "The number of periods must be a whole number of at least 1."
	MessageInvalidTiming   = "Payment timing must be 0 (end of period) or 1 (beginning of period)."
	MessageUnknownVariant  = "Unknown calculator."
	messageFieldTemplate   = "Please enter a valid value for %s."
	messageGenericTemplate = "Calculation error: %v"
)

// FieldError names the form field that could not be used.
type FieldError struct {
	Field string
	Label string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UserMessage converts any calculation error into the single sentence shown
// to the person using the calculator. Raw numeric errors never leak through.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		if errors.Is(err, finance.ErrInvalidPeriods) {
			return MessageInvalidPeriods
		}
		if errors.Is(err, finance.ErrInvalidTiming) {
			return MessageInvalidTiming
		}
		label := fieldErr.Label
		if label == "" {
			label = fieldErr.Field
		}
		return fmt.Sprintf(messageFieldTemplate, label)
	case errors.Is(err, finance.ErrConvergence), errors.Is(err, ErrInvalidInput):
		return MessageUnrealistic
	case errors.Is(err, finance.ErrInvalidPeriods):
		return MessageInvalidPeriods
	case errors.Is(err, finance.ErrInvalidTiming):
		return MessageInvalidTiming
	case errors.Is(err, ErrUnknownVariant):
		return MessageUnknownVariant
	default:
		return fmt.Sprintf(messageGenericTemplate, err)
	}
}
