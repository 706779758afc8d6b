package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/investment-calculator/internal/calculator"
	"github.com/iwvelando/investment-calculator/pkg/format"
	"github.com/iwvelando/investment-calculator/pkg/testutil"
)

func testFormatter(t *testing.T) *format.Formatter {
	t.Helper()
	f, err := format.NewFormatter("en-US", "USD")
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	return f
}

func TestHeadline(t *testing.T) {
	f := testFormatter(t)
	results := testutil.SampleResults()

	tests := []struct {
		name     string
		result   string
		contains []string
	}{
		{
			name:     "Future value in currency",
			result:   "retirement",
			contains: []string{"Future value of your investment", "91,473.02", f.Symbol()},
		},
		{
			name:     "Rate as percentage",
			result:   "fund report",
			contains: []string{"Annual interest rate earned", "4.60%"},
		},
		{
			name:     "Failure shows only the message",
			result:   "moonshot",
			contains: []string{calculator.MessageUnrealistic},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headline := Headline(*testutil.FindResult(results, tt.result), f)
			for _, want := range tt.contains {
				if !strings.Contains(headline, want) {
					t.Errorf("Headline() = %q, missing %q", headline, want)
				}
			}
		})
	}
}

func TestDetails(t *testing.T) {
	f := testFormatter(t)
	results := testutil.SampleResults()

	report := Details(*testutil.FindResult(results, "fund report"), f)
	if len(report) != 6 || report[0].Label != "Monthly payment" {
		t.Fatalf("report details = %+v, expected monthly payment first", report)
	}
	if !strings.HasSuffix(report[0].Value, "500.00") {
		t.Errorf("monthly payment = %s, expected 500.00", report[0].Value)
	}

	retirement := Details(*testutil.FindResult(results, "retirement"), f)
	if len(retirement) != 5 {
		t.Fatalf("future value details = %+v, expected 5 lines", retirement)
	}
	for _, d := range retirement {
		if d.Label == "Monthly payment" {
			t.Errorf("future value details should not show a monthly payment")
		}
	}

	nothing := Details(*testutil.FindResult(results, "nothing invested"), f)
	for _, d := range nothing {
		if d.Label == "Return" && d.Value != "N/A" {
			t.Errorf("Return = %s, expected N/A for zero invested", d.Value)
		}
	}

	if Details(*testutil.FindResult(results, "moonshot"), f) != nil {
		t.Errorf("failed result should have no details")
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, testutil.SampleResults(), testFormatter(t))
	output := buf.String()

	expected := []string{
		"--- Results for calculation retirement ---",
		"Over 10 years",
		"Total invested:",
		"60,000.00",
		"52.46%",
		"--- Results for calculation moonshot ---",
		calculator.MessageUnrealistic,
		"N/A",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat missing %q in output:\n%s", want, output)
		}
	}

	moonshot := output[strings.Index(output, "--- Results for calculation moonshot ---"):]
	if strings.Contains(moonshot, "Total invested") {
		t.Errorf("PrettyFormat should not print a breakdown for a failed calculation")
	}
}

func TestCsvString(t *testing.T) {
	out, err := CsvString(testutil.SampleResults())
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(records))
	}
	if records[0][0] != "name" {
		t.Errorf("unexpected header %v", records[0])
	}

	retirement := records[1]
	if retirement[2] != "91473.02" || retirement[5] != "60000.00" {
		t.Errorf("unexpected retirement row %v", retirement)
	}
	if records[2][4] != "500.00" {
		t.Errorf("report row monthly payment = %s, expected 500.00", records[2][4])
	}
	if records[3][8] != "" {
		t.Errorf("undefined return should be empty, got %s", records[3][8])
	}
	if records[4][len(records[4])-1] != calculator.MessageUnrealistic {
		t.Errorf("failed row should carry the message, got %v", records[4])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, testutil.SampleResults(), testFormatter(t)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []Rendered
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(decoded))
	}
	if decoded[0].PeriodText != "Over 10 years" {
		t.Errorf("PeriodText = %q, expected Over 10 years", decoded[0].PeriodText)
	}
	if decoded[3].Result.Error != calculator.MessageUnrealistic || decoded[3].Headline != calculator.MessageUnrealistic {
		t.Errorf("failed entry = %+v", decoded[3])
	}
}
