package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
	sess "github.com/crewlab/baton/internal/session"
)

// execCLI runs the root command with the given args, capturing stdout.
func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	cmd := newRootCmd(BuildInfo{Version: "test"})
	cmd.SetOut(w)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	execErr := cmd.ExecuteContext(context.Background())

	require.NoError(t, w.Close())
	out, readErr := io.ReadAll(r)
	require.NoError(t, readErr)
	return string(out), execErr
}

// decodeSession unmarshals a JSON session from command output.
func decodeSession(t *testing.T, out string) *domain.Session {
	t.Helper()
	var s domain.Session
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	return &s
}

// globalArgs returns the shared flags pinning home, identity, and output.
func globalArgs(home string) []string {
	return []string{"--home", home, "--owner", "e2e-owner", "--project", "e2e-proj", "-o", "json"}
}

// TestCLIEndToEnd drives the full lifecycle through the command layer:
// create, plan, run, wave, validate, apply, grant, revoke, list, stop.
func TestCLIEndToEnd(t *testing.T) {
	home := t.TempDir()
	run := func(args ...string) (string, error) {
		return execCLI(t, append(args, globalArgs(home)...)...)
	}

	// Create infers the games domain from the mission text.
	out, err := run("create",
		"-m", "Ship the inventory screen for the roguelike",
		"--quality", "studio", "--budget", "50")
	require.NoError(t, err)
	created := decodeSession(t, out)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, constants.SessionStatusActive, created.Status)
	assert.Equal(t, constants.DomainGames, created.MissionDomain)
	assert.Equal(t, constants.QualityStudio, created.QualityMode)
	assert.Empty(t, created.Tasks)

	// Plan yields one checkpoint per role with studio+games estimates.
	out, err = run("plan", created.ID)
	require.NoError(t, err)
	planned := decodeSession(t, out)
	require.Len(t, planned.Tasks, 3)
	assert.Equal(t, constants.RolePlanner, planned.Tasks[0].OwnerRole)
	assert.Equal(t, constants.RoleCoder, planned.Tasks[1].OwnerRole)
	assert.Equal(t, constants.RoleReviewer, planned.Tasks[2].OwnerRole)
	assert.InDelta(t, 12.0, planned.Tasks[0].EstimateCredits, 0.0001)
	assert.InDelta(t, 9.0, planned.Tasks[1].EstimateCredits, 0.0001)
	assert.InDelta(t, 6.0, planned.Tasks[2].EstimateCredits, 0.0001)

	plannerID := planned.Tasks[0].ID
	coderID := planned.Tasks[1].ID
	reviewerID := planned.Tasks[2].ID

	// Run the planner checkpoint on its own.
	out, err = run("run", created.ID, plannerID)
	require.NoError(t, err)
	afterPlanner := decodeSession(t, out)
	require.NotNil(t, afterPlanner.TaskByID(plannerID))
	assert.Equal(t, constants.TaskStatusDone, afterPlanner.TaskByID(plannerID).Status)
	assert.InDelta(t, 6.24, afterPlanner.Cost.UsedCredits, 0.0001)

	// One balanced wave finishes the coder and reviewer checkpoints.
	out, err = run("wave", created.ID, "--steps", "3", "--strategy", "balanced")
	require.NoError(t, err)
	var waveRes struct {
		Session domain.Session  `json:"session"`
		Report  sess.WaveReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &waveRes))
	assert.ElementsMatch(t, []string{coderID, reviewerID}, waveRes.Report.Executed)
	assert.Empty(t, waveRes.Report.Blocked)
	assert.Equal(t, constants.TaskStatusDone, waveRes.Session.TaskByID(reviewerID).Status)

	// Validation passes and apply mints a rollback token.
	out, err = run("validate", created.ID, reviewerID)
	require.NoError(t, err)
	validated := decodeSession(t, out)
	assert.Equal(t, constants.VerdictPassed, validated.TaskByID(reviewerID).ValidationVerdict)

	out, err = run("apply", created.ID, reviewerID)
	require.NoError(t, err)
	applied := decodeSession(t, out)
	assert.True(t, strings.HasPrefix(applied.TaskByID(reviewerID).ApplyToken, "apply_"))

	// Grants append to the ledger; revocation stamps instead of deleting.
	out, err = run("grant", created.ID, "--scope", "workspace", "--ttl", "30m")
	require.NoError(t, err)
	granted := decodeSession(t, out)
	require.Len(t, granted.FullAccessGrants, 1)
	grant := granted.FullAccessGrants[0]
	assert.Equal(t, constants.ScopeWorkspace, grant.Scope)
	assert.True(t, strings.HasPrefix(grant.AuditRef, "studio_access_"))

	out, err = run("revoke", created.ID, grant.ID)
	require.NoError(t, err)
	revoked := decodeSession(t, out)
	require.Len(t, revoked.FullAccessGrants, 1)
	assert.NotNil(t, revoked.FullAccessGrants[0].RevokedAt)

	// List and show read back the same session.
	out, err = run("list")
	require.NoError(t, err)
	var sessions []*domain.Session
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)

	out, err = run("show", created.ID)
	require.NoError(t, err)
	shown := decodeSession(t, out)
	assert.Equal(t, created.ID, shown.ID)

	// Stop is terminal; a later wave is a no-op.
	out, err = run("stop", created.ID)
	require.NoError(t, err)
	stopped := decodeSession(t, out)
	assert.Equal(t, constants.SessionStatusStopped, stopped.Status)
	require.NotNil(t, stopped.EndedAt)

	out, err = run("wave", created.ID)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &waveRes))
	assert.Empty(t, waveRes.Report.Executed)
	assert.Equal(t, constants.SessionStatusStopped, waveRes.Session.Status)
}

// TestCLIInvalidInput verifies flag and argument validation paths.
func TestCLIInvalidInput(t *testing.T) {
	home := t.TempDir()

	t.Run("bad output format", func(t *testing.T) {
		_, err := execCLI(t, "list", "--home", home, "-o", "xml")
		require.Error(t, err)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})

	t.Run("create without mission", func(t *testing.T) {
		_, err := execCLI(t, "create", "--home", home)
		require.Error(t, err)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})

	t.Run("plan without session arg", func(t *testing.T) {
		_, err := execCLI(t, "plan", "--home", home)
		require.Error(t, err)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})

	t.Run("show unknown session", func(t *testing.T) {
		_, err := execCLI(t, "show", "does-not-exist", "--home", home)
		require.Error(t, err)
		assert.Equal(t, ExitError, ExitCodeForError(err))
	})
}
