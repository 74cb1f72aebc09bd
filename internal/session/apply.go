package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
)

// ApplyTask commits the effect of a validated reviewer checkpoint and mints
// the rollback capability token.
//
// The operation is idempotent in the two-phase-commit sense: once a token is
// set, a second apply is a no-op returning the current state, with no
// duplicate message or cost effect. Only a reviewer task with a passed
// verdict and no existing token is eligible.
func (m *Manager) ApplyTask(ctx context.Context, ownerID, sessionID, taskID string) (*domain.Session, error) {
	return m.mutate(ctx, ownerID, sessionID, "apply", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}
		t := s.TaskByID(taskID)
		if t == nil || t.OwnerRole != constants.RoleReviewer {
			return false
		}
		if t.ValidationVerdict != constants.VerdictPassed || t.ApplyToken != "" {
			return false
		}

		t.ApplyToken = constants.ApplyTokenPrefix + uuid.NewString()
		finished := now
		t.FinishedAt = &finished

		appendTaskMessage(s, now, constants.MessageRoleAssistant, constants.RoleReviewer,
			t.Status, fmt.Sprintf("Applied %q; rollback token %s", t.Title, t.ApplyToken))
		return true
	})
}

// RollbackTask reverses the gating effect of an apply: it clears the token,
// resets the verdict to pending, drops the validation report, and parks the
// task as blocked for a future re-run.
//
// When a token is supplied it must match the stored one exactly; a mismatch
// is a no-op. An empty token skips the match check. Rollback never restores
// spent credits; the ledger stays monotonic.
func (m *Manager) RollbackTask(ctx context.Context, ownerID, sessionID, taskID, applyToken string) (*domain.Session, error) {
	return m.mutate(ctx, ownerID, sessionID, "rollback", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}
		t := s.TaskByID(taskID)
		if t == nil || t.ApplyToken == "" {
			return false
		}
		if applyToken != "" && applyToken != t.ApplyToken {
			return false
		}

		t.ApplyToken = ""
		t.ValidationVerdict = constants.VerdictPending
		t.ValidationReport = nil
		if t.Status != constants.TaskStatusBlocked {
			_ = Transition(t, constants.TaskStatusBlocked)
		}

		appendTaskMessage(s, now, constants.MessageRoleSystem, constants.RoleReviewer,
			constants.TaskStatusBlocked, fmt.Sprintf("Rolled back %q; checkpoint returned to blocked.", t.Title))
		return true
	})
}
