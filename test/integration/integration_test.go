package integration

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/investment-calculator/internal/calculator"
	"github.com/iwvelando/investment-calculator/internal/config"
	"github.com/iwvelando/investment-calculator/pkg/format"
	"github.com/iwvelando/investment-calculator/pkg/output"
	"github.com/iwvelando/investment-calculator/pkg/testutil"
	"go.uber.org/zap"
)

const exampleConfig = "../../config.yaml.example"

// runExample loads the example configuration and runs it exactly as main() does.
func runExample(t *testing.T) (*config.Configuration, []calculator.Result) {
	t.Helper()

	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results := calculator.New(zap.NewNop(), conf.SolverSettings()).Run(*conf)
	return conf, results
}

// TestMainIntegrationBaseline checks the example configuration against
// values computed independently from the annuity formulas.
func TestMainIntegrationBaseline(t *testing.T) {
	_, results := runExample(t)

	expectedNames := []string{
		"retirement savings",
		"education fund",
		"house deposit goal",
		"car in three years",
		"pension fund statement",
	}
	if len(results) != len(expectedNames) {
		t.Fatalf("Expected %d results, got %d", len(expectedNames), len(results))
	}
	for i, expected := range expectedNames {
		if results[i].Name != expected {
			t.Errorf("Result %d: expected name '%s', got '%s'", i, expected, results[i].Name)
		}
		if results[i].Failed() {
			t.Errorf("Result %s failed: %s", expected, results[i].Error)
		}
	}

	baseline := []struct {
		name      string
		value     float64
		tolerance float64
		invested  float64
	}{
		{"retirement savings", 91473.02, 0.01, 60000},
		{"education fund", 94959.80, 0.01, 53200},
		{"house deposit goal", 4.4596, 0.001, 15000},
		{"car in three years", 8.0550, 0.001, 30800},
		{"pension fund statement", 4.6000, 0.01, 23000},
	}

	for _, b := range baseline {
		result := testutil.FindResult(results, b.name)
		if result == nil {
			t.Errorf("Missing result %s", b.name)
			continue
		}
		if math.Abs(result.PrimaryValue-b.value) > b.tolerance {
			t.Errorf("%s: value %.4f, expected %.4f", b.name, result.PrimaryValue, b.value)
		}
		if math.Abs(result.TotalInvested-b.invested) > 0.01 {
			t.Errorf("%s: invested %.2f, expected %.2f", b.name, result.TotalInvested, b.invested)
		}
		if !result.ProfitPercentDefined {
			t.Errorf("%s: return percentage should be defined", b.name)
		}
	}
}

func TestConfigurationValidation(t *testing.T) {
	conf, _ := runExample(t)

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Example configuration should be clean, got warnings: %v", warnings)
	}

	conf.Calculations = append(conf.Calculations, config.Calculation{
		Name:   "retirement savings",
		Type:   "future-value",
		Active: true,
	})
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Errorf("Expected duplicate-name and periods warnings, got %v", warnings)
	}
}

func TestCsvOutputFormat(t *testing.T) {
	_, results := runExample(t)

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, results); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CSV output does not parse: %v", err)
	}
	if len(records) != len(results)+1 {
		t.Fatalf("Expected %d CSV lines, got %d", len(results)+1, len(records))
	}
	for i, record := range records[1:] {
		if record[0] != results[i].Name {
			t.Errorf("CSV row %d: name %s, expected %s", i, record[0], results[i].Name)
		}
		if record[len(record)-1] != "" {
			t.Errorf("CSV row %d should carry no error, got %s", i, record[len(record)-1])
		}
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	conf, results := runExample(t)

	locale, currency := conf.DisplaySettings()
	formatter, err := format.NewFormatter(locale, currency)
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	var buf bytes.Buffer
	output.PrettyFormat(&buf, results, formatter)
	text := buf.String()

	for _, result := range results {
		if !strings.Contains(text, "--- Results for calculation "+result.Name+" ---") {
			t.Errorf("Pretty output missing header for %s", result.Name)
		}
	}
	for _, want := range []string{"91,473.02", "Monthly payment:", "Over 3 years", "Over 18 years"} {
		if !strings.Contains(text, want) {
			t.Errorf("Pretty output missing %q", want)
		}
	}
}

func TestEndToEndWithUnrealisticCalculation(t *testing.T) {
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(`calculations:
  - name: realistic
    type: annual-rate-from-report
    active: true
    periods: 36
    totalInvestment: 18000
    presentValue: 5000
    futureValue: 25000
  - name: lottery
    type: annual-rate-from-report
    active: true
    periods: 36
    totalInvestment: 18000
    presentValue: 5000
    futureValue: 1000000
`))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	results := calculator.New(zap.NewNop(), conf.SolverSettings()).Run(*conf)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	realistic := testutil.FindResult(results, "realistic")
	if realistic.Failed() || realistic.PrimaryValue <= 0 || realistic.PrimaryValue >= 50 {
		t.Errorf("realistic report should give a rate in (0, 50)%%, got %+v", realistic)
	}

	lottery := testutil.FindResult(results, "lottery")
	if lottery.Error != calculator.MessageUnrealistic {
		t.Errorf("lottery should fail with the unrealistic message, got %q", lottery.Error)
	}
}
