package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <session>",
		Short: "Generate the checkpoint plan for a session",
		Long: `Generate exactly three role-bound checkpoints (planner, coder, reviewer)
for the session. Re-planning replaces the checkpoint list and discards run
history; spent credits are never refunded.

Examples:
  baton plan 9f2c1b44-aa31-4c1d-9d2e-001122334455`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.Plan(cmd.Context(), a.owner(), args[0])
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, s)
			}
			renderSession(os.Stdout, s)
			return nil
		},
	}
}
