// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/investment-calculator/pkg/constants"
	"github.com/iwvelando/investment-calculator/pkg/finance"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for investment-calculator.
type Configuration struct {
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
	Display      DisplayConfig `yaml:"display,omitempty"`
	Solver       SolverConfig  `yaml:"solver,omitempty"`
	Calculations []Calculation `yaml:"calculations,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// DisplayConfig selects how amounts are formatted.
type DisplayConfig struct {
	Locale   string `yaml:"locale,omitempty"`   // BCP 47, e.g. en-IL
	Currency string `yaml:"currency,omitempty"` // ISO 4217, e.g. ILS
}

// SolverConfig bounds the rate solver. Rates are decimals per period.
type SolverConfig struct {
	MaxIterations int     `yaml:"maxIterations,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
	MinRate       float64 `yaml:"minRate,omitempty"`
	MaxRate       float64 `yaml:"maxRate,omitempty"`
}

// Calculation is one named calculator run. Which amounts are read depends
// on Type; see the calculator package for the fields of each variant.
// Periods and Timing decode as floats so a fractional value in the file is
// rejected instead of truncated.
type Calculation struct {
	Name            string  `yaml:"name"`
	Type            string  `yaml:"type"`
	Active          bool    `yaml:"active"`
	Periods         float64 `yaml:"periods"`
	Payment         float64 `yaml:"payment,omitempty"`
	PresentValue    float64 `yaml:"presentValue,omitempty"`
	FutureValue     float64 `yaml:"futureValue,omitempty"`
	AnnualRate      float64 `yaml:"annualRate,omitempty"` // percent
	TotalInvestment float64 `yaml:"totalInvestment,omitempty"`
	Timing          float64 `yaml:"timing,omitempty"` // 0 end of period, 1 beginning
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r. CALC_*
// environment variables override values in r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	return readConfiguration(newViper(), r)
}

// ParseConfiguration loads YAML configuration from r without environment
// overrides, for configuration supplied by a remote user.
func ParseConfiguration(r io.Reader) (*Configuration, error) {
	return readConfiguration(newPlainViper(), r)
}

func readConfiguration(v *viper.Viper, r io.Reader) (*Configuration, error) {
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := newPlainViper()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func newPlainViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")

	// Defaults make the nested keys known to viper so environment
	// overrides such as CALC_OUTPUT_FORMAT apply without a file entry.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("display.locale", constants.DefaultLocale)
	v.SetDefault("display.currency", constants.DefaultCurrency)
	v.SetDefault("solver.maxIterations", constants.DefaultMaxIterations)
	v.SetDefault("solver.tolerance", constants.DefaultTolerance)
	v.SetDefault("solver.minRate", constants.DefaultMinRate)
	v.SetDefault("solver.maxRate", constants.DefaultMaxRate)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// SolverSettings maps the solver section onto finance.Solver, filling
// unset values with the defaults.
func (c *Configuration) SolverSettings() finance.Solver {
	solver := finance.DefaultSolver()
	if c.Solver.MaxIterations > 0 {
		solver.MaxIterations = c.Solver.MaxIterations
	}
	if c.Solver.Tolerance > 0 {
		solver.Tolerance = c.Solver.Tolerance
	}
	if c.Solver.MinRate != 0 {
		solver.MinRate = c.Solver.MinRate
	}
	if c.Solver.MaxRate != 0 {
		solver.MaxRate = c.Solver.MaxRate
	}
	return solver
}

// DisplaySettings returns the locale and currency code with defaults applied.
func (c *Configuration) DisplaySettings() (locale, currency string) {
	locale = strings.TrimSpace(c.Display.Locale)
	if locale == "" {
		locale = constants.DefaultLocale
	}
	currency = strings.ToUpper(strings.TrimSpace(c.Display.Currency))
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	return locale, currency
}

// ActiveCalculations returns the calculations marked active, in file order.
func (c *Configuration) ActiveCalculations() []Calculation {
	var active []Calculation
	for _, calc := range c.Calculations {
		if calc.Active {
			active = append(active, calc)
		}
	}
	return active
}
