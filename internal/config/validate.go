package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/errors"
)

// Validate checks a configuration for invalid values. It returns a wrapped
// ErrConfigInvalid naming the first offending field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	switch constants.QualityMode(cfg.Defaults.QualityMode) {
	case constants.QualityStandard, constants.QualityDelivery, constants.QualityStudio:
	default:
		return fmt.Errorf("%w: defaults.quality_mode %q is not one of standard, delivery, studio",
			errors.ErrConfigInvalid, cfg.Defaults.QualityMode)
	}

	if cfg.Defaults.BudgetCap < constants.MinBudgetCap || cfg.Defaults.BudgetCap > constants.MaxBudgetCap {
		return fmt.Errorf("%w: defaults.budget_cap %.2f is outside [%d, %d]",
			errors.ErrConfigInvalid, cfg.Defaults.BudgetCap, constants.MinBudgetCap, constants.MaxBudgetCap)
	}

	switch constants.WaveStrategy(cfg.Defaults.WaveStrategy) {
	case constants.StrategyBalanced, constants.StrategyCostGuarded, constants.StrategyQualityFirst:
	default:
		return fmt.Errorf("%w: defaults.wave_strategy %q is not one of balanced, cost_guarded, quality_first",
			errors.ErrConfigInvalid, cfg.Defaults.WaveStrategy)
	}

	if cfg.Defaults.WaveSteps < 1 || cfg.Defaults.WaveSteps > constants.MaxWaveSteps {
		return fmt.Errorf("%w: defaults.wave_steps %d is outside [1, %d]",
			errors.ErrConfigInvalid, cfg.Defaults.WaveSteps, constants.MaxWaveSteps)
	}

	if cfg.Grants.TTL <= 0 {
		return fmt.Errorf("%w: grants.ttl must be positive", errors.ErrConfigInvalid)
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level %q is not a valid level",
			errors.ErrConfigInvalid, cfg.Logging.Level)
	}

	if cfg.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("%w: logging.max_size_mb must be at least 1", errors.ErrConfigInvalid)
	}

	return nil
}
