package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session>",
		Short: "Show a session",
		Long: `Show the full state of one session: mission, budget ledger, checkpoint
tasks, and grant count. Reading never mutates the session.

Examples:
  baton show 9f2c1b44-aa31-4c1d-9d2e-001122334455 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.Get(cmd.Context(), a.owner(), args[0])
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
