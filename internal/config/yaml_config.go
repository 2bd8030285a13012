package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"jobmetrics/internal/aggregate"
	"jobmetrics/internal/db"
	"jobmetrics/internal/validation"
)

// SourcesConfig represents the structure of the config.yaml file.
// Table names and output sizes vary per deployment and are easier to manage
// in YAML than env vars.
type SourcesConfig struct {
	Tables     db.Tables        `yaml:"tables"`
	PageSize   int              `yaml:"page_size"`
	WindowDays int              `yaml:"window_days"`
	Limits     aggregate.Limits `yaml:"limits"`
}

// DefaultSources returns the configuration used when no file is present.
func DefaultSources() *SourcesConfig {
	return &SourcesConfig{
		Tables:     db.DefaultTables(),
		PageSize:   db.DefaultPageSize,
		WindowDays: 90,
		Limits:     aggregate.DefaultLimits(),
	}
}

// Window returns the rolling window length.
func (c *SourcesConfig) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}

// LoadSourcesConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns the defaults if the config file doesn't exist. Fields left out of
// the file keep their defaults.
func LoadSourcesConfig() (*SourcesConfig, error) {
	return LoadSourcesConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadSourcesConfigFile loads and validates the YAML configuration at path.
func LoadSourcesConfigFile(path string) (*SourcesConfig, error) {
	cfg := DefaultSources()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks table names and numeric settings.
func (c *SourcesConfig) Validate() error {
	for _, name := range []string{c.Tables.Postings, c.Tables.RawPostings, c.Tables.OccupationAreas} {
		if !validation.ValidateTableName(name) {
			return fmt.Errorf("invalid table name %q", name)
		}
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive, got %d", c.WindowDays)
	}
	if c.Limits.Employers < 0 || c.Limits.Regions < 0 || c.Limits.Occupations < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}
