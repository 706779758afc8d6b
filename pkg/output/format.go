// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/investment-calculator/internal/calculator"
	"github.com/iwvelando/investment-calculator/pkg/format"
)

// Detail is one labelled line of the breakdown shown under a headline.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Rendered is a result together with its display strings.
type Rendered struct {
	Result     calculator.Result `json:"result"`
	Headline   string            `json:"headline"`
	Details    []Detail          `json:"details,omitempty"`
	PeriodText string            `json:"periodText,omitempty"`
}

// Headline is the primary line for a result: the future value in currency
// or the annual rate as a percentage. Failed results show only the message.
func Headline(result calculator.Result, f *format.Formatter) string {
	if result.Failed() {
		return result.Error
	}
	if result.Variant.SolvesRate() {
		return fmt.Sprintf("%s: %s", result.Variant.Title(), f.Percent(result.PrimaryValue, true))
	}
	return fmt.Sprintf("%s: %s", result.Variant.Title(), f.Currency(result.PrimaryValue))
}

// PeriodText describes how long the money was invested.
func PeriodText(result calculator.Result) string {
	if result.Failed() || result.PeriodDescriptor == "" {
		return ""
	}
	return "Over " + result.PeriodDescriptor
}

// Details is the invested / final / profit / return breakdown. The report
// calculator also shows the monthly payment it derived.
func Details(result calculator.Result, f *format.Formatter) []Detail {
	if result.Failed() {
		return nil
	}

	var details []Detail
	if result.Variant == calculator.AnnualRateFromReport {
		details = append(details, Detail{Label: "Monthly payment", Value: f.Currency(result.MonthlyPayment)})
	}
	details = append(details,
		Detail{Label: "Total invested", Value: f.Currency(result.TotalInvested)},
		Detail{Label: "Final amount", Value: f.Currency(result.FinalAmount)},
		Detail{Label: "Profit", Value: f.Currency(result.Profit)},
		Detail{Label: "Return", Value: f.Percent(result.ProfitPercent, result.ProfitPercentDefined)},
		Detail{Label: "Period", Value: result.PeriodDescriptor},
	)
	return details
}

// Render bundles a result with its headline, details and period text.
func Render(result calculator.Result, f *format.Formatter) Rendered {
	return Rendered{
		Result:     result,
		Headline:   Headline(result, f),
		Details:    Details(result, f),
		PeriodText: PeriodText(result),
	}
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []calculator.Result, f *format.Formatter) {
	for i, result := range results {
		fmt.Fprintf(w, "--- Results for calculation %s ---\n", result.Name)
		fmt.Fprintf(w, "%s\n", Headline(result, f))
		if !result.Failed() {
			fmt.Fprintf(w, "%s\n", PeriodText(result))
			for _, d := range Details(result, f) {
				fmt.Fprintf(w, "  %-16s %s\n", d.Label+":", d.Value)
			}
		}
		if len(results) > 1 && i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

var csvHeader = []string{
	"name", "variant", "value", "periodic rate", "monthly payment", "total invested",
	"final amount", "profit", "return percent", "periods", "period unit", "error",
}

// CsvFormat writes the results in comma-separated value format.
func CsvFormat(w io.Writer, results []calculator.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, result := range results {
		if err := cw.Write(csvRecord(result)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of the results as a string.
func CsvString(results []calculator.Result) (string, error) {
	var b strings.Builder
	if err := CsvFormat(&b, results); err != nil {
		return "", err
	}
	return b.String(), nil
}

func csvRecord(result calculator.Result) []string {
	if result.Failed() {
		record := make([]string, len(csvHeader))
		record[0] = result.Name
		record[1] = string(result.Variant)
		record[len(record)-1] = result.Error
		return record
	}

	returnPercent := ""
	if result.ProfitPercentDefined {
		returnPercent = money(result.ProfitPercent)
	}
	monthly := ""
	if result.Variant == calculator.AnnualRateFromReport {
		monthly = money(result.MonthlyPayment)
	}

	return []string{
		result.Name,
		string(result.Variant),
		money(result.PrimaryValue),
		strconv.FormatFloat(result.PeriodicRate, 'f', 8, 64),
		monthly,
		money(result.TotalInvested),
		money(result.FinalAmount),
		money(result.Profit),
		returnPercent,
		strconv.Itoa(result.Periods),
		result.PeriodUnit,
		"",
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// JSONFormat writes the rendered results as an indented JSON array.
func JSONFormat(w io.Writer, results []calculator.Result, f *format.Formatter) error {
	rendered := make([]Rendered, 0, len(results))
	for _, result := range results {
		rendered = append(rendered, Render(result, f))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rendered)
}
