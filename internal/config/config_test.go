package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	batonerrors "github.com/crewlab/baton/internal/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		valid  bool
	}{
		{"defaults pass", func(_ *Config) {}, true},
		{"studio quality", func(c *Config) { c.Defaults.QualityMode = "studio" }, true},
		{"unknown quality", func(c *Config) { c.Defaults.QualityMode = "ultra" }, false},
		{"budget below minimum", func(c *Config) { c.Defaults.BudgetCap = 2 }, false},
		{"budget above maximum", func(c *Config) { c.Defaults.BudgetCap = 2000000 }, false},
		{"unknown strategy", func(c *Config) { c.Defaults.WaveStrategy = "yolo" }, false},
		{"zero wave steps", func(c *Config) { c.Defaults.WaveSteps = 0 }, false},
		{"oversized wave steps", func(c *Config) { c.Defaults.WaveSteps = 9 }, false},
		{"negative grant ttl", func(c *Config) { c.Grants.TTL = -time.Minute }, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, false},
		{"zero max size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, batonerrors.ErrConfigInvalid)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	require.ErrorIs(t, Validate(nil), batonerrors.ErrConfigNil)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
defaults:
  quality_mode: delivery
  budget_cap: 120
  wave_strategy: cost_guarded
  wave_steps: 2
grants:
  ttl: 30m
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromPath(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "delivery", cfg.Defaults.QualityMode)
	assert.InDelta(t, 120.0, cfg.Defaults.BudgetCap, 0.0001)
	assert.Equal(t, "cost_guarded", cfg.Defaults.WaveStrategy)
	assert.Equal(t, 2, cfg.Defaults.WaveSteps)
	assert.Equal(t, 30*time.Minute, cfg.Grants.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "local", cfg.Defaults.Owner)
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Defaults, cfg.Defaults)
}

func TestLoadFromPath_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  quality_mode: ultra\n"), 0o600))

	_, err := LoadFromPath(context.Background(), path)
	require.ErrorIs(t, err, batonerrors.ErrConfigInvalid)
}
