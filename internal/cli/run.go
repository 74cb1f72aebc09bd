package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <session> <task>",
		Short: "Run a single checkpoint task",
		Long: `Run one checkpoint task. Dependency and budget gates park the task as
blocked with an explanatory result instead of failing the command.

Examples:
  baton run 9f2c1b44-aa31-4c1d-9d2e-001122334455 b41e7720-0f6a-4e11-8c2b-66aa77bb88cc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.RunTask(cmd.Context(), a.owner(), args[0], args[1])
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, s)
			}
			if t := s.TaskByID(args[1]); t != nil {
				renderTask(os.Stdout, t)
			}
			renderSession(os.Stdout, s)
			return nil
		},
	}
}
