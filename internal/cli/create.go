package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/errors"
	"github.com/crewlab/baton/internal/session"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		mission     string
		missionPath string
		quality     string
		domainFlag  string
		budget      float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new session",
		Long: `Create a new session for a mission. The mission domain is inferred from
the mission text unless --domain pins it explicitly, and the domain-specific
quality checklist is built at creation time.

Examples:
  baton create --mission "Ship the inventory screen for the roguelike"
  baton create --mission "Cut the trailer" --quality studio --budget 80
  baton create --file mission.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if missionPath != "" {
				mf, err := loadMissionFile(missionPath)
				if err != nil {
					return err
				}
				// Explicit flags win over the file.
				if mission == "" {
					mission = mf.Mission
				}
				if quality == "" {
					quality = mf.QualityMode
				}
				if domainFlag == "" {
					domainFlag = mf.Domain
				}
				if budget == 0 {
					budget = mf.BudgetCap
				}
			}

			if strings.TrimSpace(mission) == "" {
				return fmt.Errorf("%w: mission text is required (--mission or --file)",
					errors.ErrInvalidArgument)
			}
			if quality == "" {
				quality = a.cfg.Defaults.QualityMode
			}
			if budget == 0 {
				budget = a.cfg.Defaults.BudgetCap
			}

			s, err := a.manager.Create(cmd.Context(), a.owner(), a.project(), session.CreateRequest{
				Mission:     mission,
				QualityMode: constants.QualityMode(quality),
				BudgetCap:   budget,
				Domain:      constants.MissionDomain(domainFlag),
			})
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

	cmd.Flags().StringVarP(&mission, "mission", "m", "", "mission statement")
	cmd.Flags().StringVarP(&missionPath, "file", "f", "", "mission file (YAML)")
	cmd.Flags().StringVar(&quality, "quality", "", "quality mode (standard|delivery|studio)")
	cmd.Flags().StringVar(&domainFlag, "domain", "", "mission domain (games|films|apps|general)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "credit budget cap")

	return cmd
}
