package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/investment-calculator/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("expected default max request size, got %d", cfg.RequestSizeBytes())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}

	calcs := cfg.Calculations()
	locale, currency := calcs.DisplaySettings()
	if locale != constants.DefaultLocale || currency != constants.DefaultCurrency {
		t.Fatalf("expected default display settings, got %s %s", locale, currency)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxRequestSize: 16K
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
display:
  locale: en-US
  currency: usd
solver:
  maxIterations: 40
  maxRate: 0.5
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.RequestSizeBytes() != 16*1024 {
		t.Fatalf("expected max request override, got %d", cfg.RequestSizeBytes())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}

	calcs := cfg.Calculations()
	locale, currency := calcs.DisplaySettings()
	if locale != "en-US" || currency != "USD" {
		t.Fatalf("expected en-US USD, got %s %s", locale, currency)
	}
	solver := calcs.SolverSettings()
	if solver.MaxIterations != 40 || solver.MaxRate != 0.5 {
		t.Fatalf("unexpected solver settings %+v", solver)
	}
	if solver.Tolerance != constants.DefaultTolerance {
		t.Fatalf("expected default tolerance, got %v", solver.Tolerance)
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("maxRequestSize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid size but got nil")
	}
}

func TestSetRequestSizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	cfg.SetRequestSizeBytes(0)
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("non-positive override should be ignored, got %d", cfg.RequestSizeBytes())
	}

	cfg.SetRequestSizeBytes(2048)
	if cfg.RequestSizeBytes() != 2048 || cfg.MaxRequestSize != "2048" {
		t.Fatalf("expected 2048, got %d (%s)", cfg.RequestSizeBytes(), cfg.MaxRequestSize)
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxRequestSizeBytes,
		"1024":      1024,
		"512b":      512,
		"64K":       64 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1GB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}
