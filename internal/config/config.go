// Package config provides configuration loading and validation for baton.
//
// Configuration is loaded with the following precedence (highest first):
// environment variables (BATON_* prefix), the global config file
// (~/.baton/config.yaml), built-in defaults.
package config

import "time"

// Config is the root configuration for the baton CLI.
type Config struct {
	// Storage configures where session records live.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Defaults seeds session creation and wave execution when the caller
	// does not pass explicit flags.
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`

	// Grants configures full-access grant issuance.
	Grants GrantsConfig `mapstructure:"grants" yaml:"grants"`

	// Logging configures the CLI log output.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// StorageConfig configures session persistence.
type StorageConfig struct {
	// BaseDir is the baton home directory. Empty means ~/.baton.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
}

// DefaultsConfig holds per-user defaults for new sessions and waves.
type DefaultsConfig struct {
	// Owner identifies the session owner on the local machine.
	Owner string `mapstructure:"owner" yaml:"owner"`

	// Project is the default project id for new sessions.
	Project string `mapstructure:"project" yaml:"project"`

	// QualityMode is the default execution tier (standard, delivery, studio).
	QualityMode string `mapstructure:"quality_mode" yaml:"quality_mode"`

	// BudgetCap is the default credit budget for new sessions.
	BudgetCap float64 `mapstructure:"budget_cap" yaml:"budget_cap"`

	// WaveStrategy is the default wave scheduling strategy.
	WaveStrategy string `mapstructure:"wave_strategy" yaml:"wave_strategy"`

	// WaveSteps is the default step request per wave.
	WaveSteps int `mapstructure:"wave_steps" yaml:"wave_steps"`
}

// GrantsConfig configures full-access grant issuance.
type GrantsConfig struct {
	// TTL is the default grant lifetime.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LoggingConfig configures the rotating CLI log file.
type LoggingConfig struct {
	// Level is the minimum zerolog level (trace, debug, info, warn, error).
	Level string `mapstructure:"level" yaml:"level"`

	// MaxSizeMB is the log file size that triggers rotation.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is how many rotated files to keep.
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`

	// MaxAgeDays is how long rotated files are retained.
	MaxAgeDays int `mapstructure:"max_age_days" yaml:"max_age_days"`
}
