package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/cost"
	"github.com/crewlab/baton/internal/domain"
	"github.com/crewlab/baton/internal/profile"
)

// Dependency gate messages. The blocked result text is part of the outer
// surface contract; reproduce verbatim.
const (
	plannerFirstMessage = "Blocked: run planner checkpoint first."
	coderFirstMessage   = "Blocked: run coder checkpoint first."
)

// RunTask executes a single checkpoint task.
//
// Eligibility, dependency, and budget gates all degrade to a blocked task
// with an explanatory result instead of an error. A successful run moves the
// task to done, synthesizes one immutable agent run, and appends transcript
// messages. No model is invoked; cost, tokens, and latency are derived
// deterministically from the task identity and the session state.
func (m *Manager) RunTask(ctx context.Context, ownerID, sessionID, taskID string) (*domain.Session, error) {
	return m.mutate(ctx, ownerID, sessionID, "run", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}
		return runTask(s, taskID, now)
	})
}

// runTask advances one task against the in-memory session. It reports
// whether the session changed. Callers hold the session lock.
func runTask(s *domain.Session, taskID string, now time.Time) bool {
	t := s.TaskByID(taskID)
	if t == nil {
		return false
	}
	if !IsRunnable(t.OwnerRole, t.Status) {
		return false
	}

	// Dependency gate: blocked without consuming budget.
	if reason, ok := roleDependencyMet(s, t.OwnerRole); !ok {
		blockTask(s, t, reason, now)
		return true
	}

	// Budget gate. The ledger is recomputed here so earlier steps of the
	// same wave are charged before this one is admitted.
	summary := cost.Compute(s)
	highPressure := cost.HighPressure(summary)
	prof := profile.Resolve(s.QualityMode, highPressure, t.OwnerRole,
		profile.SeedFor(t.ID, t.Title, t.OwnerRole))
	required := cost.RunCost(t.EstimateCredits, prof.CostFactor)
	if summary.RemainingCredits < required {
		blockTask(s, t, fmt.Sprintf(
			"Blocked: budget exhausted (needs %.2f credits, %.3f remaining).",
			required, summary.RemainingCredits), now)
		return true
	}

	if t.Status != RunningStatus(t.OwnerRole) {
		_ = Transition(t, RunningStatus(t.OwnerRole))
	}
	started := now
	t.StartedAt = &started
	t.Result = checkpointResult(s, t)
	t.ValidationVerdict = constants.VerdictPending
	t.ValidationReport = nil
	_ = Transition(t, constants.TaskStatusDone)
	finished := now
	t.FinishedAt = &finished

	s.AgentRuns = append(s.AgentRuns, domain.AgentRun{
		ID:         uuid.NewString(),
		TaskID:     t.ID,
		Role:       t.OwnerRole,
		Model:      prof.Model,
		Status:     constants.RunStatusSuccess,
		TokensIn:   prof.TokensIn,
		TokensOut:  prof.TokensOut,
		LatencyMs:  runLatencyMs(t.EstimateSeconds),
		Cost:       required,
		StartedAt:  started,
		FinishedAt: &finished,
		Message:    fmt.Sprintf("%s checkpoint completed", t.OwnerRole),
	})

	appendTaskMessage(s, now, constants.MessageRoleAssistant, t.OwnerRole,
		constants.TaskStatusDone, t.Result)
	switch t.OwnerRole {
	case constants.RoleCoder:
		appendTaskMessage(s, now, constants.MessageRoleSystem, constants.RolePlanner,
			constants.TaskStatusDone,
			"Planner critique: staged changes are consistent with the plan; validate before applying.")
	case constants.RoleReviewer:
		appendTaskMessage(s, now, constants.MessageRoleAssistant, constants.RoleReviewer,
			constants.TaskStatusDone,
			"Review summary: all checkpoints executed; run validation to confirm the quality gates.")
	case constants.RolePlanner:
	}
	return true
}

// roleDependencyMet enforces the strict role ordering: a coder task needs a
// done planner task, a reviewer task needs a done coder task. The check
// observes current session state, not transition history.
func roleDependencyMet(s *domain.Session, role constants.AgentRole) (string, bool) {
	switch role {
	case constants.RoleCoder:
		if !s.HasDoneTask(constants.RolePlanner) {
			return plannerFirstMessage, false
		}
	case constants.RoleReviewer:
		if !s.HasDoneTask(constants.RoleCoder) {
			return coderFirstMessage, false
		}
	case constants.RolePlanner:
	}
	return "", true
}

// blockTask parks the task with an explanatory result and records the block
// in the transcript. No agent run is created and no budget is consumed.
func blockTask(s *domain.Session, t *domain.Task, reason string, now time.Time) {
	if t.Status != constants.TaskStatusBlocked {
		_ = Transition(t, constants.TaskStatusBlocked)
	}
	t.Result = reason
	appendTaskMessage(s, now, constants.MessageRoleSystem, t.OwnerRole,
		constants.TaskStatusBlocked, reason)
}

// runLatencyMs derives the synthetic run latency from the task's duration
// estimate.
func runLatencyMs(estimateSeconds int) int {
	latency := estimateSeconds * constants.LatencyPerEstimateSecondMs
	if latency < constants.MinRunLatencyMs {
		return constants.MinRunLatencyMs
	}
	return latency
}

// checkpointResult renders the role-specific result text. The embedded
// markers are substring-checked by validation and must stay bit-exact.
func checkpointResult(s *domain.Session, t *domain.Task) string {
	switch t.OwnerRole {
	case constants.RoleCoder:
		return fmt.Sprintf("Coder checkpoint complete: changes staged for mission %q %s",
			s.Mission, constants.ManualApplyMarker)
	case constants.RoleReviewer:
		return fmt.Sprintf("Reviewer checkpoint complete %s %s; quality gates evaluated against the %s checklist.",
			constants.ReviewOKMarker,
			fmt.Sprintf(constants.DomainMarkerFormat, s.MissionDomain),
			s.MissionDomain)
	case constants.RolePlanner:
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Planner checkpoint complete for mission %q %s\nQuality checklist:",
		s.Mission, constants.OrchestrationOnlyMarker)
	for _, item := range s.QualityChecklist {
		b.WriteString("\n- ")
		b.WriteString(item)
	}
	return b.String()
}
