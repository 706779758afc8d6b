package calculator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/investment-calculator/pkg/finance"
	"github.com/iwvelando/investment-calculator/pkg/mathutil"
)

// Form field names, shared by the HTTP form and JSON bodies.
const (
	FieldRate            = "rate"
	FieldPeriods         = "nper"
	FieldPayment         = "pmt"
	FieldPresentValue    = "pv"
	FieldFutureValue     = "fv"
	FieldTotalInvestment = "totalInvestment"
	FieldTiming          = "type"
)

// Field describes one input a calculator reads.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// FieldsFor lists the fields of a variant in form order. Payment timing is
// always optional and defaults to end of period.
func FieldsFor(variant Variant) []Field {
	periods := Field{Name: FieldPeriods, Label: "Number of years", Required: true}
	if variant.Monthly() {
		periods.Label = "Number of months"
	}
	timing := Field{Name: FieldTiming, Label: "Payment timing"}
	presentValue := Field{Name: FieldPresentValue, Label: "Initial amount", Required: true}

	switch variant {
	case FutureValue, FutureValueMonthly:
		return []Field{
			{Name: FieldRate, Label: "Annual interest rate (%)", Required: true},
			periods,
			{Name: FieldPayment, Label: "Periodic payment", Required: true},
			presentValue,
			timing,
		}
	case RequiredRate, RequiredRateMonthly:
		return []Field{
			periods,
			{Name: FieldPayment, Label: "Periodic payment", Required: true},
			presentValue,
			{Name: FieldFutureValue, Label: "Target amount", Required: true},
			timing,
		}
	case AnnualRateFromReport:
		return []Field{
			periods,
			{Name: FieldTotalInvestment, Label: "Total investment", Required: true},
			presentValue,
			{Name: FieldFutureValue, Label: "Final amount", Required: true},
			timing,
		}
	default:
		return nil
	}
}

// ParseFields reads raw form values for variant into an Input. Empty
// required fields, non-numeric values and non-integer period counts are
// reported as a *FieldError naming the field.
func ParseFields(variant Variant, values map[string]string) (Input, error) {
	if _, err := ParseVariant(string(variant)); err != nil {
		return Input{}, err
	}

	var in Input
	for _, field := range FieldsFor(variant) {
		raw := strings.TrimSpace(values[field.Name])
		if raw == "" {
			if field.Required {
				return Input{}, &FieldError{Field: field.Name, Label: field.Label, Err: ErrMissingField}
			}
			continue
		}
		if err := in.set(field.Name, raw); err != nil {
			return Input{}, &FieldError{Field: field.Name, Label: field.Label, Err: err}
		}
	}
	return in, nil
}

func (in *Input) set(name, raw string) error {
	switch name {
	case FieldPeriods:
		periods, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %q is not a whole number", finance.ErrInvalidPeriods, raw)
		}
		if periods < 1 {
			return fmt.Errorf("%w: got %d", finance.ErrInvalidPeriods, periods)
		}
		in.Periods = periods
		return nil
	case FieldTiming:
		flag, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %q", finance.ErrInvalidTiming, raw)
		}
		timing, err := finance.ParsePaymentTiming(flag)
		if err != nil {
			return err
		}
		in.Timing = timing
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidInput, raw)
	}
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("%w: %q is not finite", ErrInvalidInput, raw)
	}

	switch name {
	case FieldRate:
		in.AnnualRate = value
	case FieldPayment:
		in.Payment = value
	case FieldPresentValue:
		in.PresentValue = value
	case FieldFutureValue:
		in.FutureValue = value
	case FieldTotalInvestment:
		in.TotalInvestment = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// number returns the float field behind a form field name.
func (in Input) number(name string) (float64, bool) {
	switch name {
	case FieldRate:
		return in.AnnualRate, true
	case FieldPayment:
		return in.Payment, true
	case FieldPresentValue:
		return in.PresentValue, true
	case FieldFutureValue:
		return in.FutureValue, true
	case FieldTotalInvestment:
		return in.TotalInvestment, true
	default:
		return 0, false
	}
}
