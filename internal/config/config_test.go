package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, 90, cfg.Reconciliation.OffsetLimitDays)
	assert.True(t, cfg.Reconciliation.AutoFix)
	assert.False(t, cfg.Reconciliation.ApplyWrites)
	assert.Equal(t, "ledger.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FilesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
[reconciliation]
offset_limit_days = 30
min_allowed_date_from = "2021-06-01"
apply_writes = true

[storage]
path = "base.db"
`), 0o600))
	require.NoError(t, os.WriteFile(local, []byte(`
[storage]
path = "local.db"

[logging]
level = "debug"
`), 0o600))

	cfg, err := LoadConfig(base, filepath.Join(dir, "missing.toml"), local)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Reconciliation.OffsetLimitDays)
	assert.True(t, cfg.Reconciliation.ApplyWrites)
	assert.True(t, cfg.Reconciliation.AutoFix, "unset keys keep defaults")
	assert.Equal(t, "local.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)

	minDate, err := cfg.MinAllowedDate()
	require.NoError(t, err)
	assert.True(t, minDate.Equal(time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[reconciliation\noffset_limit_days = "), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RECON_OFFSET_LIMIT_DAYS", "15")
	t.Setenv("RECON_MIN_ALLOWED_DATE_FROM", "2019-01-01")
	t.Setenv("RECON_AUTO_FIX", "false")
	t.Setenv("RECON_APPLY_WRITES", "true")
	t.Setenv("RECON_STORAGE_PATH", "")
	t.Setenv("RECON_LOG_LEVEL", "warn")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, 15, cfg.Reconciliation.OffsetLimitDays)
	assert.Equal(t, "2019-01-01", cfg.Reconciliation.MinAllowedDateFrom)
	assert.False(t, cfg.Reconciliation.AutoFix)
	assert.True(t, cfg.Reconciliation.ApplyWrites)
	assert.Equal(t, "", cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestApplyEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("RECON_OFFSET_LIMIT_DAYS", "ninety")
	t.Setenv("RECON_AUTO_FIX", "maybe")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, 90, cfg.Reconciliation.OffsetLimitDays)
	assert.True(t, cfg.Reconciliation.AutoFix)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:   "zero offset limit",
			mutate: func(c *Config) { c.Reconciliation.OffsetLimitDays = 0 },
		},
		{
			name:    "negative offset limit",
			mutate:  func(c *Config) { c.Reconciliation.OffsetLimitDays = -1 },
			wantErr: "offset_limit_days must not be negative",
		},
		{
			name:    "bad min allowed date",
			mutate:  func(c *Config) { c.Reconciliation.MinAllowedDateFrom = "01/01/2020" },
			wantErr: "invalid min_allowed_date_from",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
