package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
	"github.com/crewlab/baton/internal/session"
)

// waveResult is the JSON shape emitted by `baton wave --output json`.
type waveResult struct {
	Session *domain.Session     `json:"session"`
	Report  *session.WaveReport `json:"report"`
}

func newWaveCmd(a *app) *cobra.Command {
	var (
		steps    int
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "wave <session>",
		Short: "Advance up to three checkpoints in role order",
		Long: `Run one wave: planner, coder, and reviewer checkpoints are attempted in
fixed order, up to the step cap. The cap is derived from the strategy and
the budget pressure measured at wave start.

Examples:
  baton wave 9f2c1b44-aa31-4c1d-9d2e-001122334455
  baton wave 9f2c1b44-aa31-4c1d-9d2e-001122334455 --steps 2 --strategy cost_guarded`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps == 0 {
				steps = a.cfg.Defaults.WaveSteps
			}
			if strategy == "" {
				strategy = a.cfg.Defaults.WaveStrategy
			}

			s, report, err := a.manager.RunWave(cmd.Context(), a.owner(), args[0],
				steps, constants.WaveStrategy(strategy))
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, waveResult{Session: s, Report: report})
			}
			renderWaveReport(os.Stdout, report)
			renderSession(os.Stdout, s)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "maximum checkpoints to advance (1-3)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "wave strategy (balanced|cost_guarded|quality_first)")

	return cmd
}
