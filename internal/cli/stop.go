package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newStopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <session>",
		Short: "Stop a session",
		Long: `Stop a session. Stopped sessions are terminal; every later mutating
command becomes a no-op that returns the stored state unchanged.

Examples:
  baton stop 9f2c1b44-aa31-4c1d-9d2e-001122334455`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.Stop(cmd.Context(), a.owner(), args[0])
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
