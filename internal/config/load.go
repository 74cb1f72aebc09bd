package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/errors"
)

// newViperInstance creates a Viper instance with the standard baton setup:
// defaults, BATON_ environment prefix, and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BATON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true for viper's config-file-not-found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence
// (highest first): BATON_* environment variables, the global config file
// (~/.baton/config.yaml), built-in defaults.
//
// A missing config file is not an error; only malformed or invalid
// configuration fails the load.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("quality_mode", cfg.Defaults.QualityMode).
		Float64("budget_cap", cfg.Defaults.BudgetCap).
		Str("wave_strategy", cfg.Defaults.WaveStrategy).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path, for tests and
// the --config flag. An empty path loads defaults plus environment only.
func LoadFromPath(_ context.Context, path string) (*Config, error) {
	v := newViperInstance()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config: %s", path)
		}
	}

	return unmarshalAndValidate(v)
}

// loadGlobalConfig reads ~/.baton/config.yaml when it exists.
func loadGlobalConfig(v *viper.Viper) error {
	path, ok := globalConfigPathIfExists()
	if !ok {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// globalConfigPathIfExists returns the global config path if it exists.
func globalConfigPathIfExists() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	path := filepath.Join(home, constants.BatonHome, constants.GlobalConfigName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// unmarshalAndValidate unmarshals viper state into Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// viperDecoderOption configures mapstructure to coerce duration strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
