package calculator

import (
	"errors"
	"testing"

	"github.com/iwvelando/investment-calculator/pkg/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name      string
		variant   Variant
		values    map[string]string
		want      Input
		wantField string
		wantErr   error
	}{
		{
			name:    "Monthly future value",
			variant: FutureValueMonthly,
			values:  map[string]string{"rate": "8", "nper": "120", "pmt": "500", "pv": "0"},
			want:    Input{Periods: 120, Payment: 500, AnnualRate: 8},
		},
		{
			name:    "Beginning of period with whitespace",
			variant: RequiredRate,
			values:  map[string]string{"nper": " 10 ", "pmt": "1000", "pv": "5000", "fv": "20000", "type": "1"},
			want:    Input{Periods: 10, Payment: 1000, PresentValue: 5000, FutureValue: 20000, Timing: finance.BeginningOfPeriod},
		},
		{
			name:    "Report ignores payment",
			variant: AnnualRateFromReport,
			values:  map[string]string{"nper": "36", "totalInvestment": "18000", "pv": "5000", "fv": "25000", "pmt": "999"},
			want:    Input{Periods: 36, TotalInvestment: 18000, PresentValue: 5000, FutureValue: 25000},
		},
		{
			name:      "Missing payment",
			variant:   FutureValue,
			values:    map[string]string{"rate": "5", "nper": "10", "pv": "0"},
			wantField: FieldPayment,
			wantErr:   ErrMissingField,
		},
		{
			name:      "Fractional periods",
			variant:   FutureValue,
			values:    map[string]string{"rate": "5", "nper": "2.5", "pmt": "1", "pv": "0"},
			wantField: FieldPeriods,
			wantErr:   finance.ErrInvalidPeriods,
		},
		{
			name:      "Negative periods",
			variant:   FutureValue,
			values:    map[string]string{"rate": "5", "nper": "-3", "pmt": "1", "pv": "0"},
			wantField: FieldPeriods,
			wantErr:   finance.ErrInvalidPeriods,
		},
		{
			name:      "Not a number",
			variant:   FutureValue,
			values:    map[string]string{"rate": "five", "nper": "10", "pmt": "1", "pv": "0"},
			wantField: FieldRate,
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "Infinite amount",
			variant:   RequiredRate,
			values:    map[string]string{"nper": "10", "pmt": "1", "pv": "0", "fv": "Inf"},
			wantField: FieldFutureValue,
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "Timing out of range",
			variant:   FutureValue,
			values:    map[string]string{"rate": "5", "nper": "10", "pmt": "1", "pv": "0", "type": "2"},
			wantField: FieldTiming,
			wantErr:   finance.ErrInvalidTiming,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFields(tt.variant, tt.values)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestParseFieldsUnknownVariant(t *testing.T) {
	_, err := ParseFields(Variant("bogus"), map[string]string{})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestFieldsFor(t *testing.T) {
	for _, variant := range Variants() {
		fields := FieldsFor(variant)
		require.NotEmpty(t, fields, variant)

		last := fields[len(fields)-1]
		assert.Equal(t, FieldTiming, last.Name)
		assert.False(t, last.Required)
	}

	for _, field := range FieldsFor(AnnualRateFromReport) {
		assert.NotEqual(t, FieldPayment, field.Name)
	}
	assert.Equal(t, "Number of months", FieldsFor(RequiredRateMonthly)[0].Label)
	assert.Equal(t, "Number of years", FieldsFor(RequiredRate)[0].Label)
}

func TestVariants(t *testing.T) {
	tests := []struct {
		variant    Variant
		monthly    bool
		solvesRate bool
	}{
		{FutureValue, false, false},
		{FutureValueMonthly, true, false},
		{RequiredRate, false, true},
		{RequiredRateMonthly, true, true},
		{AnnualRateFromReport, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			parsed, err := ParseVariant(string(tt.variant))
			require.NoError(t, err)
			assert.Equal(t, tt.variant, parsed)
			assert.Equal(t, tt.monthly, tt.variant.Monthly())
			assert.Equal(t, tt.solvesRate, tt.variant.SolvesRate())
			assert.NotEmpty(t, tt.variant.Title())
		})
	}
}
