// Package constants provides shared constants for the investment-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Rate solver defaults
const (
	// DefaultMaxIterations bounds the rate solver loop.
	DefaultMaxIterations = 100
	// DefaultTolerance is the absolute difference between successive rate
	// estimates at which the solver stops.
	DefaultTolerance = 1e-10
	// DefaultMinRate is the lowest periodic rate the solver will consider.
	DefaultMinRate = -0.99
	// DefaultMaxRate is the highest periodic rate the solver will consider.
	DefaultMaxRate = 1.0
	// PeriodicRateGuess seeds the solver when periods are years.
	PeriodicRateGuess = 0.1
	// MonthlyRateGuess seeds the solver when periods are months.
	MonthlyRateGuess = 0.01
)

// Calculator variants as they appear in configuration files and URLs
const (
	VariantFutureValue          = "future-value"
	VariantFutureValueMonthly   = "future-value-monthly"
	VariantRequiredRate         = "required-rate"
	VariantRequiredRateMonthly  = "required-rate-monthly"
	VariantAnnualRateFromReport = "annual-rate-from-report"
)

// Display defaults
const (
	// DefaultLocale is the BCP 47 tag used for number formatting.
	DefaultLocale = "en-IL"
	// DefaultCurrency is the ISO 4217 code used for currency formatting.
	DefaultCurrency = "ILS"
	// NotApplicable is rendered in place of undefined percentages.
	NotApplicable = "N/A"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"
	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
	// EnvPrefix namespaces environment overrides, e.g. CALC_OUTPUT_FORMAT.
	EnvPrefix = "CALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
	// DefaultMaxRequestSizeBytes is the default maximum calculation request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)
