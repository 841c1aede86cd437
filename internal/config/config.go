// Package config loads reconciler settings from TOML files and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"movement-reconciliation/internal/domain"
)

// Config holds all reconciler configuration.
type Config struct {
	Reconciliation ReconciliationConfig `toml:"reconciliation"`
	Storage        StorageConfig        `toml:"storage"`
	Logging        LoggingConfig        `toml:"logging"`
}

// ReconciliationConfig controls the checker and the auto-fixer.
type ReconciliationConfig struct {
	OffsetLimitDays    int    `toml:"offset_limit_days"`
	MinAllowedDateFrom string `toml:"min_allowed_date_from"`
	AutoFix            bool   `toml:"auto_fix"`
	ApplyWrites        bool   `toml:"apply_writes"`
}

// StorageConfig points at the ledger database. An empty path selects
// the in-memory ledger.
type StorageConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Reconciliation: ReconciliationConfig{
			OffsetLimitDays:    90,
			MinAllowedDateFrom: "2020-01-01",
			AutoFix:            true,
			ApplyWrites:        false,
		},
		Storage: StorageConfig{
			Path: "ledger.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RECON_OFFSET_LIMIT_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			config.Reconciliation.OffsetLimitDays = days
		}
	}

	if v := os.Getenv("RECON_MIN_ALLOWED_DATE_FROM"); v != "" {
		config.Reconciliation.MinAllowedDateFrom = v
	}

	if v := os.Getenv("RECON_AUTO_FIX"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Reconciliation.AutoFix = b
		}
	}

	if v := os.Getenv("RECON_APPLY_WRITES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Reconciliation.ApplyWrites = b
		}
	}

	// RECON_STORAGE_PATH may be set to an empty string on purpose
	if v, ok := os.LookupEnv("RECON_STORAGE_PATH"); ok {
		config.Storage.Path = v
	}

	if v := os.Getenv("RECON_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Reconciliation.OffsetLimitDays < 0 {
		return fmt.Errorf("offset_limit_days must not be negative, got %d", c.Reconciliation.OffsetLimitDays)
	}
	if _, err := c.MinAllowedDate(); err != nil {
		return err
	}
	return nil
}

// MinAllowedDate parses min_allowed_date_from.
func (c *Config) MinAllowedDate() (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, c.Reconciliation.MinAllowedDateFrom)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid min_allowed_date_from %q: %w", c.Reconciliation.MinAllowedDateFrom, err)
	}
	return d, nil
}
