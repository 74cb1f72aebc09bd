package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <session> <task>",
		Short: "Validate a done reviewer checkpoint",
		Long: `Run the deterministic validation battery against a done reviewer
checkpoint. A failed battery moves the checkpoint to error and attaches a
report listing the failed checks; the session stays active.

Examples:
  baton validate 9f2c1b44-aa31-4c1d-9d2e-001122334455 b41e7720-0f6a-4e11-8c2b-66aa77bb88cc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.ValidateTask(cmd.Context(), a.owner(), args[0], args[1])
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, s)
			}
			if t := s.TaskByID(args[1]); t != nil {
				renderTask(os.Stdout, t)
				if t.ValidationReport != nil {
					for i, id := range t.ValidationReport.FailedIDs {
						cmd.Printf("  failed check %s: %s\n", id, t.ValidationReport.FailedMessages[i])
					}
				}
			}
			return nil
		},
	}
}
