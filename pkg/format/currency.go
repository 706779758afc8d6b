// Package format renders amounts and rates for display in a given locale
// and currency.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/investment-calculator/pkg/constants"
	"github.com/iwvelando/investment-calculator/pkg/mathutil"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats money and percentages for one locale and currency.
// It is immutable after creation and safe for concurrent use.
type Formatter struct {
	tag    language.Tag
	unit   currency.Unit
	symbol string
}

// NewFormatter creates a Formatter from a BCP 47 locale such as "en-IL" and
// an ISO 4217 currency code such as "ILS". Empty values fall back to the
// defaults.
func NewFormatter(locale, code string) (*Formatter, error) {
	if locale == "" {
		locale = constants.DefaultLocale
	}
	if code == "" {
		code = constants.DefaultCurrency
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	symbol := message.NewPrinter(tag).Sprint(currency.NarrowSymbol(unit))
	if symbol == "" {
		symbol = unit.String()
	}

	return &Formatter{tag: tag, unit: unit, symbol: symbol}, nil
}

// MustFormatter is NewFormatter for values known to be valid.
func MustFormatter(locale, code string) *Formatter {
	f, err := NewFormatter(locale, code)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the locale tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// CurrencyCode returns the ISO 4217 code.
func (f *Formatter) CurrencyCode() string {
	return f.unit.String()
}

// Symbol returns the currency symbol used by Currency.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Currency returns the amount with the currency symbol, grouping and two
// decimals (e.g., "-₪1,234.56").
func (f *Formatter) Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return constants.NotApplicable
	}
	formatted := f.Number(math.Abs(amount))
	if amount < 0 && mathutil.Round(amount) != 0 {
		return "-" + f.symbol + formatted
	}
	return f.symbol + formatted
}

// Number returns the amount with grouping and two decimals but no symbol.
func (f *Formatter) Number(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return constants.NotApplicable
	}
	return message.NewPrinter(f.tag).Sprintf("%.2f", amount)
}

// Percent returns value with two decimals and a percent sign, or "N/A"
// when the value is undefined.
func (f *Formatter) Percent(value float64, defined bool) string {
	if !defined || !mathutil.IsFinite(value) {
		return constants.NotApplicable
	}
	return message.NewPrinter(f.tag).Sprintf("%.2f%%", value)
}
