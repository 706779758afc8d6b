package finance

import "fmt"

// PaymentTiming says whether periodic payments fall at the end (ordinary
// annuity) or at the beginning (annuity due) of each period.
type PaymentTiming int

const (
	// EndOfPeriod is an ordinary annuity.
	EndOfPeriod PaymentTiming = 0
	// BeginningOfPeriod is an annuity due.
	BeginningOfPeriod PaymentTiming = 1
)

// ParsePaymentTiming converts the 0/1 form flag into a PaymentTiming.
func ParsePaymentTiming(flag int) (PaymentTiming, error) {
	switch PaymentTiming(flag) {
	case EndOfPeriod, BeginningOfPeriod:
		return PaymentTiming(flag), nil
	default:
		return EndOfPeriod, fmt.Errorf("%w: got %d", ErrInvalidTiming, flag)
	}
}

func (t PaymentTiming) factor() float64 {
	if t == BeginningOfPeriod {
		return 1
	}
	return 0
}

func (t PaymentTiming) String() string {
	switch t {
	case EndOfPeriod:
		return "end"
	case BeginningOfPeriod:
		return "beginning"
	default:
		return fmt.Sprintf("PaymentTiming(%d)", int(t))
	}
}
