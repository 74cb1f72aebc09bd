package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions for the current owner",
		Long: `List every session owned by the current owner, newest first.

Examples:
  baton list
  baton list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := a.manager.List(cmd.Context(), a.owner())
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, sessions)
			}
			renderSessionList(os.Stdout, sessions)
			return nil
		},
	}
}
