package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlab/baton/internal/errors"
)

// writeTempMissionFile writes content to a temp file and returns its path.
func writeTempMissionFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mission.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadMissionFile verifies mission file parsing.
func TestLoadMissionFile(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeTempMissionFile(t, `mission: Ship the inventory screen for the roguelike
domain: games
quality_mode: studio
budget_cap: 80
`)
		mf, err := loadMissionFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Ship the inventory screen for the roguelike", mf.Mission)
		assert.Equal(t, "games", mf.Domain)
		assert.Equal(t, "studio", mf.QualityMode)
		assert.InDelta(t, 80.0, mf.BudgetCap, 0.0001)
	})

	t.Run("mission only", func(t *testing.T) {
		path := writeTempMissionFile(t, "mission: Cut the launch trailer\n")
		mf, err := loadMissionFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Cut the launch trailer", mf.Mission)
		assert.Empty(t, mf.Domain)
		assert.Zero(t, mf.BudgetCap)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadMissionFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeTempMissionFile(t, "mission: [unclosed\n")
		_, err := loadMissionFile(path)
		require.ErrorIs(t, err, errors.ErrMissionFileInvalid)
	})

	t.Run("empty mission text", func(t *testing.T) {
		path := writeTempMissionFile(t, "mission: \"  \"\nbudget_cap: 10\n")
		_, err := loadMissionFile(path)
		require.ErrorIs(t, err, errors.ErrMissionFileInvalid)
	})
}
