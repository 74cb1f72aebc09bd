package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/crewlab/baton/internal/clock"
	"github.com/crewlab/baton/internal/config"
	"github.com/crewlab/baton/internal/errors"
	"github.com/crewlab/baton/internal/session"
	"github.com/crewlab/baton/internal/store"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// app bundles the dependencies shared by all subcommands. It is populated
// in the root command's PersistentPreRunE.
type app struct {
	flags   *GlobalFlags
	cfg     *config.Config
	manager *session.Manager
	logger  zerolog.Logger
}

// init wires configuration, logging, storage, and the lifecycle manager.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	if !IsValidOutputFormat(a.flags.Output) {
		return fmt.Errorf("%w: %q must be one of %v",
			errors.ErrInvalidOutputFormat, a.flags.Output, ValidOutputFormats())
	}

	cfg, cfgErr := config.Load(cmd.Context())
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	override := a.flags.Home
	if override == "" {
		override = cfg.Storage.BaseDir
	}
	home, err := resolveBatonHome(override)
	if err != nil {
		return err
	}
	a.logger = InitLogger(a.flags.Verbose, a.flags.Quiet, home, cfg.Logging)
	if cfgErr != nil {
		a.logger.Warn().Err(cfgErr).Msg("failed to load config, using defaults")
	}

	st, err := store.NewFileStore(home, a.logger)
	if err != nil {
		return err
	}
	a.manager = session.NewManager(st, clock.RealClock{}, a.logger)
	return nil
}

// owner resolves the effective session owner id.
func (a *app) owner() string {
	if a.flags.Owner != "" {
		return a.flags.Owner
	}
	return a.cfg.Defaults.Owner
}

// project resolves the effective project id.
func (a *app) project() string {
	if a.flags.Project != "" {
		return a.flags.Project
	}
	return a.cfg.Defaults.Project
}

// newRootCmd creates and returns the root command for the baton CLI.
func newRootCmd(info BuildInfo) *cobra.Command {
	a := &app{flags: &GlobalFlags{}}

	cmd := &cobra.Command{
		Use:   "baton",
		Short: "Baton - budget-gated multi-agent checkpoint orchestrator",
		Long: `Baton decomposes a mission into role-bound checkpoints (planner, coder,
reviewer), executes them under a hard credit budget, validates completion
against a deterministic rule set, and gates every apply behind a passed
validation with a revocable rollback token.

Typical flow:
  baton create --mission "Ship the inventory screen" --budget 50
  baton plan <session>
  baton wave <session>
  baton validate <session> <task>
  baton apply <session> <task>`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without
		// subcommands, ensuring PersistentPreRunE runs for flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: a.init,
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, a.flags)

	cmd.AddCommand(
		newCreateCmd(a),
		newPlanCmd(a),
		newRunCmd(a),
		newWaveCmd(a),
		newValidateCmd(a),
		newApplyCmd(a),
		newRollbackCmd(a),
		newStopCmd(a),
		newGrantCmd(a),
		newRevokeCmd(a),
		newShowCmd(a),
		newListCmd(a),
	)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	defer CloseLogFile()
	cmd := newRootCmd(info)
	return cmd.ExecuteContext(ctx)
}
