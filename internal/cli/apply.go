package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <session> <task>",
		Short: "Apply a validation-passed reviewer checkpoint",
		Long: `Apply the staged outcome of a reviewer checkpoint whose validation
verdict is passed. Applying mints a rollback token on the checkpoint;
re-applying is a no-op and keeps the original token.

Examples:
  baton apply 9f2c1b44-aa31-4c1d-9d2e-001122334455 b41e7720-0f6a-4e11-8c2b-66aa77bb88cc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.ApplyTask(cmd.Context(), a.owner(), args[0], args[1])
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, s)
			}
			if t := s.TaskByID(args[1]); t != nil {
				renderTask(os.Stdout, t)
				if t.ApplyToken != "" {
					cmd.Printf("  rollback token: %s\n", t.ApplyToken)
				}
			}
			return nil
		},
	}
}
