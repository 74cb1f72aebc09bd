package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newRollbackCmd(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "rollback <session> <task>",
		Short: "Roll back an applied reviewer checkpoint",
		Long: `Roll back an applied checkpoint using its rollback token. The token is
cleared, the validation verdict resets to pending, and the checkpoint
returns to blocked for another review cycle. Spent credits stay spent.

Examples:
  baton rollback 9f2c1b44-aa31-4c1d-9d2e-001122334455 b41e7720-0f6a-4e11-8c2b-66aa77bb88cc --token apply_...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.RollbackTask(cmd.Context(), a.owner(), args[0], args[1], token)
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, s)
			}
			if t := s.TaskByID(args[1]); t != nil {
				renderTask(os.Stdout, t)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "rollback token minted at apply time")

	return cmd
}
