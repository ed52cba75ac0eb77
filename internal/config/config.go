// Package config loads the run configuration from a YAML file and fills
// in the defaults the collector was originally shipped with.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives one collection run. All values are injected into the
// pipeline rather than read from process-wide globals, so concurrent runs
// with different parameters and unit tests with fixed values both work.
type Config struct {
	Tickers      []string `yaml:"tickers"`        // underlyings to snapshot
	Kinds        []string `yaml:"kinds"`          // option kinds: "call", "put"
	Bound        float64  `yaml:"bound"`          // strike-band half-width as a fraction of spot
	MaxDTE       int      `yaml:"max_dte"`        // maximum days to expiry
	RiskFreeRate float64  `yaml:"risk_free_rate"` // continuously-compounded annual rate
	Workbook     string   `yaml:"workbook"`       // xlsx output path
	ReportDir    string   `yaml:"report_dir"`     // optional CSV report directory
	Verbosity    int      `yaml:"verbosity"`      // -1=errors,1=info,2=debug,3=trace
}

// Default returns the stock configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

// Load reads and decodes a YAML config file, then fills defaults for any
// field left unset.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

func (cfg *Config) fillDefaults() {
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = []string{"SPY", "UPRO"}
	}
	if len(cfg.Kinds) == 0 {
		cfg.Kinds = []string{"call", "put"}
	}
	if cfg.Bound == 0 {
		cfg.Bound = 0.20
	}
	if cfg.MaxDTE == 0 {
		cfg.MaxDTE = 120
	}
	if cfg.RiskFreeRate == 0 {
		cfg.RiskFreeRate = 0.045
	}
	if cfg.Workbook == "" {
		cfg.Workbook = "data_file.xlsx"
	}
	// 0 is the zero value, not a choice; errors-only needs an explicit -1
	if cfg.Verbosity == 0 || cfg.Verbosity > 3 {
		cfg.Verbosity = 1
	}
}
