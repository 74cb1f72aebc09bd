package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crewlab/baton/internal/constants"
)

func newGrantCmd(a *app) *cobra.Command {
	var (
		scope string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "grant <session>",
		Short: "Issue a full-access grant on a session",
		Long: `Issue a time-limited full-access grant. Each grant carries an audit
reference and expires after its TTL; revocation stamps the grant instead of
deleting it, so the ledger keeps the full history.

Examples:
  baton grant 9f2c1b44-aa31-4c1d-9d2e-001122334455
  baton grant 9f2c1b44-aa31-4c1d-9d2e-001122334455 --scope workspace --ttl 30m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl == 0 {
				ttl = a.cfg.Grants.TTL
			}

			s, err := a.manager.GrantFullAccess(cmd.Context(), a.owner(), args[0],
				constants.GrantScope(scope), ttl)
			if err != nil {
				return err
			}

			if a.flags.Output == OutputJSON {
				return writeJSON(os.Stdout, s)
			}
			for _, g := range s.FullAccessGrants {
				cmd.Printf("grant %s  scope=%s  expires=%s  audit=%s\n",
					g.ID, g.Scope, g.ExpiresAt.Format(time.RFC3339), g.AuditRef)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", constants.ScopeProject.String(), "grant scope (project|workspace|web_tools)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "grant lifetime (default from config)")

	return cmd
}

func newRevokeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <session> <grant>",
		Short: "Revoke a full-access grant",
		Long: `Revoke a full-access grant by ID. The grant stays in the ledger with a
revocation timestamp; revoking an unknown or already-revoked grant is a
no-op.

Examples:
  baton revoke 9f2c1b44-aa31-4c1d-9d2e-001122334455 2d0e8f10-7c55-4b7a-9a3f-aabbccddeeff`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager.RevokeFullAccess(cmd.Context(), a.owner(), args[0], args[1])
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
