package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/crewlab/baton/internal/constants"
)

// Built-in logging defaults.
const (
	defaultLogLevel   = "info"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 30
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Owner:        "local",
			Project:      "default",
			QualityMode:  constants.QualityStandard.String(),
			BudgetCap:    50,
			WaveStrategy: constants.StrategyBalanced.String(),
			WaveSteps:    constants.MaxWaveSteps,
		},
		Grants: GrantsConfig{
			TTL: time.Hour,
		},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAgeDays: defaultMaxAgeDays,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.base_dir", "")

	v.SetDefault("defaults.owner", "local")
	v.SetDefault("defaults.project", "default")
	v.SetDefault("defaults.quality_mode", constants.QualityStandard.String())
	v.SetDefault("defaults.budget_cap", 50)
	v.SetDefault("defaults.wave_strategy", constants.StrategyBalanced.String())
	v.SetDefault("defaults.wave_steps", constants.MaxWaveSteps)

	v.SetDefault("grants.ttl", "1h")

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.max_size_mb", defaultMaxSizeMB)
	v.SetDefault("logging.max_backups", defaultMaxBackups)
	v.SetDefault("logging.max_age_days", defaultMaxAgeDays)
}
