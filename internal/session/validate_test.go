package session

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
)

// runAllCheckpoints advances planner, coder, and reviewer to done in order.
func runAllCheckpoints(t *testing.T, m *Manager, s *domain.Session) *domain.Session {
	t.Helper()
	ctx := context.Background()
	for _, role := range constants.RoleOrder {
		var err error
		s, err = m.RunTask(ctx, testOwner, s.ID, taskByRole(t, s, role).ID)
		require.NoError(t, err)
		require.Equal(t, constants.TaskStatusDone, taskByRole(t, s, role).Status)
	}
	return s
}

func TestValidateTask_AllChecksPass(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s := createPlanned(t, m, CreateRequest{Mission: "Ship the roguelike game", BudgetCap: 100})
	s = runAllCheckpoints(t, m, s)
	reviewer := taskByRole(t, s, constants.RoleReviewer)

	s, err := m.ValidateTask(ctx, testOwner, s.ID, reviewer.ID)
	require.NoError(t, err)

	got := s.TaskByID(reviewer.ID)
	assert.Equal(t, constants.VerdictPassed, got.ValidationVerdict)
	assert.Equal(t, constants.TaskStatusDone, got.Status)
	assert.Nil(t, got.ValidationReport)
	assert.True(t, strings.HasSuffix(got.Result, constants.ValidationPassedSuffix))

	// The battery only applies to a pending verdict; a second call changes
	// nothing.
	before := got.Result
	s, err = m.ValidateTask(ctx, testOwner, s.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, before, s.TaskByID(reviewer.ID).Result)
}

func TestValidateTask_EmptyChecklistFails(t *testing.T) {
	m, fs := newTestManager(t)
	ctx := context.Background()

	s := createPlanned(t, m, CreateRequest{Mission: "Ship the roguelike game", BudgetCap: 100})
	s = runAllCheckpoints(t, m, s)
	reviewerID := taskByRole(t, s, constants.RoleReviewer).ID

	overwriteSession(t, fs, s.ID, func(s *domain.Session) {
		s.QualityChecklist = []string{}
	})

	s, err := m.ValidateTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)

	got := s.TaskByID(reviewerID)
	assert.Equal(t, constants.VerdictFailed, got.ValidationVerdict)
	assert.Equal(t, constants.TaskStatusError, got.Status)
	assert.True(t, strings.HasSuffix(got.Result, constants.ValidationFailedSuffix))
	assert.Equal(t, constants.SessionStatusActive, s.Status)

	require.NotNil(t, got.ValidationReport)
	assert.Equal(t, constants.ValidationCheckCount, got.ValidationReport.TotalChecks)
	assert.Contains(t, got.ValidationReport.FailedIDs, constants.CheckQualityChecklist)
	assert.Contains(t, got.ValidationReport.FailedIDs, constants.CheckChecklistCoverage)
	assert.Len(t, got.ValidationReport.FailedMessages, len(got.ValidationReport.FailedIDs))
}

func TestValidateTask_NoOpForWrongTargets(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s := createPlanned(t, m, CreateRequest{Mission: "Ship the roguelike game", BudgetCap: 100})
	coderID := taskByRole(t, s, constants.RoleCoder).ID
	reviewerID := taskByRole(t, s, constants.RoleReviewer).ID

	// Wrong role.
	s, err := m.ValidateTask(ctx, testOwner, s.ID, coderID)
	require.NoError(t, err)
	assert.Equal(t, constants.VerdictPending, s.TaskByID(coderID).ValidationVerdict)

	// Reviewer not done yet.
	s, err = m.ValidateTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)
	assert.Equal(t, constants.VerdictPending, s.TaskByID(reviewerID).ValidationVerdict)
	assert.Equal(t, constants.TaskStatusQueued, s.TaskByID(reviewerID).Status)
}

func TestReviewerChecks_DeterministicBattery(t *testing.T) {
	m, _ := newTestManager(t)

	s := createPlanned(t, m, CreateRequest{Mission: "Ship the roguelike game", BudgetCap: 100})
	s = runAllCheckpoints(t, m, s)
	reviewer := taskByRole(t, s, constants.RoleReviewer)

	first := reviewerChecks(s, reviewer)
	second := reviewerChecks(s, reviewer)
	require.Len(t, first, constants.ValidationCheckCount)
	assert.Equal(t, first, second)

	wantOrder := []string{
		constants.CheckReviewMarker,
		constants.CheckDomainMarker,
		constants.CheckPlannerDone,
		constants.CheckCoderDone,
		constants.CheckRunsByRole,
		constants.CheckQualityChecklist,
		constants.CheckChecklistCoverage,
		constants.CheckMissionDomain,
		constants.CheckBudgetCap,
	}
	for i, c := range first {
		assert.Equal(t, wantOrder[i], c.id)
		assert.True(t, c.pass, "check %s", c.id)
	}
}

func TestApplyTask_MintsTokenOnce(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s := createPlanned(t, m, CreateRequest{Mission: "Ship the roguelike game", BudgetCap: 100})
	s = runAllCheckpoints(t, m, s)
	reviewerID := taskByRole(t, s, constants.RoleReviewer).ID

	s, err := m.ValidateTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)

	s, err = m.ApplyTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)
	token := s.TaskByID(reviewerID).ApplyToken
	assert.Regexp(t, regexp.MustCompile(`^apply_`), token)

	// Idempotent: same token, no duplicate message or cost effect.
	messagesBefore := len(s.Messages)
	usedBefore := s.Cost.UsedCredits
	s, err = m.ApplyTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)
	assert.Equal(t, token, s.TaskByID(reviewerID).ApplyToken)
	assert.Len(t, s.Messages, messagesBefore)
	assert.InDelta(t, usedBefore, s.Cost.UsedCredits, 0.0001)
}

func TestApplyTask_RequiresPassedVerdict(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s := createPlanned(t, m, CreateRequest{Mission: "Ship the roguelike game", BudgetCap: 100})
	s = runAllCheckpoints(t, m, s)
	reviewerID := taskByRole(t, s, constants.RoleReviewer).ID

	// Verdict is still pending; apply must refuse.
	s, err := m.ApplyTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)
	assert.Empty(t, s.TaskByID(reviewerID).ApplyToken)
}

func TestRollbackTask_ClearsGatingNotSpend(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s := createPlanned(t, m, CreateRequest{Mission: "Ship the roguelike game", BudgetCap: 100})
	s = runAllCheckpoints(t, m, s)
	reviewerID := taskByRole(t, s, constants.RoleReviewer).ID

	s, err := m.ValidateTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)
	s, err = m.ApplyTask(ctx, testOwner, s.ID, reviewerID)
	require.NoError(t, err)
	token := s.TaskByID(reviewerID).ApplyToken
	usedBefore := s.Cost.UsedCredits

	// Wrong token is a no-op.
	s, err = m.RollbackTask(ctx, testOwner, s.ID, reviewerID, "apply_wrong")
	require.NoError(t, err)
	assert.Equal(t, token, s.TaskByID(reviewerID).ApplyToken)

	s, err = m.RollbackTask(ctx, testOwner, s.ID, reviewerID, token)
	require.NoError(t, err)

	got := s.TaskByID(reviewerID)
	assert.Empty(t, got.ApplyToken)
	assert.Equal(t, constants.VerdictPending, got.ValidationVerdict)
	assert.Nil(t, got.ValidationReport)
	assert.Equal(t, constants.TaskStatusBlocked, got.Status)
	// Spend is monotonic: rollback never refunds.
	assert.InDelta(t, usedBefore, s.Cost.UsedCredits, 0.0001)

	// A task without a token cannot be rolled back again.
	messagesBefore := len(s.Messages)
	s, err = m.RollbackTask(ctx, testOwner, s.ID, reviewerID, "")
	require.NoError(t, err)
	assert.Len(t, s.Messages, messagesBefore)
}

func TestBudgetMonotonicityAcrossLifecycle(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s := createPlanned(t, m, CreateRequest{
		Mission:     "Ship the roguelike game",
		QualityMode: constants.QualityStudio,
		BudgetCap:   8,
	})

	lastUsed := s.Cost.UsedCredits
	step := func(next *domain.Session) {
		t.Helper()
		assert.GreaterOrEqual(t, next.Cost.UsedCredits, lastUsed)
		assert.GreaterOrEqual(t, next.Cost.RemainingCredits, 0.0)
		assert.InDelta(t, next.Cost.BudgetCap-next.Cost.UsedCredits,
			next.Cost.RemainingCredits, 0.001)
		lastUsed = next.Cost.UsedCredits
		s = next
	}

	for _, role := range constants.RoleOrder {
		next, err := m.RunTask(ctx, testOwner, s.ID, taskByRole(t, s, role).ID)
		require.NoError(t, err)
		step(next)
	}
	next, err := m.Plan(ctx, testOwner, s.ID)
	require.NoError(t, err)
	step(next)
}
