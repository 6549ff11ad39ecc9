package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"gopkg.in/yaml.v3"

	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/model"
)

// FileName is the config file at the root of a fiscmind directory.
const FileName = "fiscmind.yaml"

// EnvRatesURL overrides rates.url when set.
const EnvRatesURL = "FX_API_URL"

// Config represents the top-level fiscmind.yaml configuration.
type Config struct {
	Reporting ReportingConfig `yaml:"reporting"`
	CashFlow  CashFlowConfig  `yaml:"cash_flow"`
	Rates     RatesConfig     `yaml:"rates"`
	Chart     ChartConfig     `yaml:"chart"`
	Server    ServerConfig    `yaml:"server"`
	Git       GitConfig       `yaml:"git"`
}

// ReportingConfig selects the presentation standard and reporting currency.
type ReportingConfig struct {
	Standard string `yaml:"standard"`           // IFRS or ASC
	Currency string `yaml:"currency,omitempty"` // ISO 4217; empty skips conversion
}

// CashFlowConfig maps account names to cash flow sections, overriding the
// per-standard defaults.
type CashFlowConfig struct {
	Overrides map[string]string `yaml:"overrides,omitempty"`
}

// RatesConfig is the source of exchange rates. A non-empty table is used as
// is and the URL is never called.
type RatesConfig struct {
	URL   string            `yaml:"url,omitempty"`
	Table map[string]string `yaml:"table,omitempty"`
}

// ChartConfig locates the chart of accounts, relative to the config file.
type ChartConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls `fiscmind serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GitConfig is the identity used when committing generated files.
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Path returns the config path inside a fiscmind directory.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads a fiscmind.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new directory.
func Default(standard, reportingCurrency string) *Config {
	return &Config{
		Reporting: ReportingConfig{
			Standard: strings.ToUpper(standard),
			Currency: currency.Code(reportingCurrency),
		},
		Chart:  ChartConfig{Path: filepath.Join("accounts", "chart-of-accounts.csv")},
		Server: ServerConfig{Addr: ":8080"},
		Git: GitConfig{
			AuthorName:  "fiscmind",
			AuthorEmail: "fiscmind@localhost",
		},
	}
}

// ApplyEnv overlays environment settings using lookup (os.LookupEnv in
// production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvRatesURL); ok && strings.TrimSpace(v) != "" {
		c.Rates.URL = strings.TrimSpace(v)
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Standard(); err != nil {
		errs = append(errs, fmt.Errorf("reporting.standard: %w", err))
	}
	if err := ValidCurrency(c.Reporting.Currency); c.Reporting.Currency != "" && err != nil {
		errs = append(errs, fmt.Errorf("reporting.currency: %w", err))
	}
	if _, err := c.Overrides(); err != nil {
		errs = append(errs, fmt.Errorf("cash_flow.overrides: %w", err))
	}
	if _, err := c.RateTable(); err != nil {
		errs = append(errs, fmt.Errorf("rates.table: %w", err))
	}
	for code := range c.Rates.Table {
		if err := ValidCurrency(code); err != nil {
			errs = append(errs, fmt.Errorf("rates.table: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Standard parses reporting.standard.
func (c *Config) Standard() (model.Standard, error) {
	return model.ParseStandard(c.Reporting.Standard)
}

// Overrides parses cash_flow.overrides.
func (c *Config) Overrides() (map[string]model.CashFlowSection, error) {
	if len(c.CashFlow.Overrides) == 0 {
		return nil, nil
	}
	out := make(map[string]model.CashFlowSection, len(c.CashFlow.Overrides))
	for name, s := range c.CashFlow.Overrides {
		sec, err := model.ParseCashFlowSection(s)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", name, err)
		}
		out[name] = sec
	}
	return out, nil
}

// RateTable parses rates.table. It returns nil when no table is configured.
func (c *Config) RateTable() (currency.Rates, error) {
	if len(c.Rates.Table) == 0 {
		return nil, nil
	}
	return currency.ParseRates(c.Rates.Table)
}

// ValidCurrency checks code against the ISO 4217 table.
func ValidCurrency(code string) error {
	if money.GetCurrency(currency.Code(code)) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}
