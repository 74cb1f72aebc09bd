package cli

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crewlab/baton/internal/errors"
)

// missionFile is the YAML shape accepted by `baton create --file`.
//
// Example:
//
//	mission: Ship the inventory screen for the roguelike
//	domain: games
//	quality_mode: studio
//	budget_cap: 80
type missionFile struct {
	Mission     string  `yaml:"mission"`
	Domain      string  `yaml:"domain"`
	QualityMode string  `yaml:"quality_mode"`
	BudgetCap   float64 `yaml:"budget_cap"`
}

// loadMissionFile reads and parses a mission file. A file that cannot be
// parsed or has no mission text yields a wrapped ErrMissionFileInvalid.
func loadMissionFile(path string) (*missionFile, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from an explicit CLI flag
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read mission file: %s", path)
	}

	var mf missionFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrapf(errors.ErrMissionFileInvalid, "%s: %v", path, err)
	}
	if strings.TrimSpace(mf.Mission) == "" {
		return nil, errors.Wrapf(errors.ErrMissionFileInvalid, "%s: mission text is empty", path)
	}
	return &mf, nil
}
