package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
	"github.com/crewlab/baton/internal/mission"
)

// validationCheck is one entry of the reviewer validation battery.
type validationCheck struct {
	id      string
	message string
	pass    bool
}

// ValidateTask runs the fixed nine-check battery against a done reviewer
// task. Tasks of other roles, other statuses, or with a non-pending verdict
// are no-ops.
//
// A passed battery stamps the verdict and appends the passed suffix to the
// result text. A failed battery moves the task to error (session stays
// active), attaches a report with the failed check ids, and appends the
// failed suffix. The battery is a pure function of session state: the same
// state always yields the same verdict and report.
func (m *Manager) ValidateTask(ctx context.Context, ownerID, sessionID, taskID string) (*domain.Session, error) {
	return m.mutate(ctx, ownerID, sessionID, "validate", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}
		t := s.TaskByID(taskID)
		if t == nil || t.OwnerRole != constants.RoleReviewer {
			return false
		}
		if t.Status != constants.TaskStatusDone || t.ValidationVerdict != constants.VerdictPending {
			return false
		}

		checks := reviewerChecks(s, t)
		var failedIDs, failedMessages []string
		for _, c := range checks {
			if !c.pass {
				failedIDs = append(failedIDs, c.id)
				failedMessages = append(failedMessages, c.message)
			}
		}

		if len(failedIDs) == 0 {
			t.ValidationVerdict = constants.VerdictPassed
			t.Result += constants.ValidationPassedSuffix
			appendTaskMessage(s, now, constants.MessageRoleSystem, constants.RoleReviewer,
				t.Status, fmt.Sprintf("Validation passed: %d/%d checks.", len(checks), len(checks)))
			return true
		}

		t.ValidationVerdict = constants.VerdictFailed
		_ = Transition(t, constants.TaskStatusError)
		t.ValidationReport = &domain.ValidationReport{
			TotalChecks:    len(checks),
			FailedIDs:      failedIDs,
			FailedMessages: failedMessages,
		}
		t.Result += constants.ValidationFailedSuffix
		appendTaskMessage(s, now, constants.MessageRoleSystem, constants.RoleReviewer,
			t.Status, fmt.Sprintf("Validation failed (%d/%d checks): %s.",
				len(checks)-len(failedIDs), len(checks), strings.Join(failedIDs, ", ")))
		return true
	})
}

// reviewerChecks builds the nine-check battery in its fixed order. Check ids
// are stable and appear verbatim in validation reports.
func reviewerChecks(s *domain.Session, t *domain.Task) []validationCheck {
	domainMarker := fmt.Sprintf(constants.DomainMarkerFormat, s.MissionDomain)

	return []validationCheck{
		{
			id:      constants.CheckReviewMarker,
			message: fmt.Sprintf("review result must contain %s and exceed %d characters", constants.ReviewOKMarker, constants.MinReviewResultLength),
			pass:    strings.Contains(t.Result, constants.ReviewOKMarker) && len(t.Result) > constants.MinReviewResultLength,
		},
		{
			id:      constants.CheckDomainMarker,
			message: fmt.Sprintf("review result must contain %s", domainMarker),
			pass:    strings.Contains(t.Result, domainMarker),
		},
		{
			id:      constants.CheckPlannerDone,
			message: "planner checkpoint is not done",
			pass:    s.HasDoneTask(constants.RolePlanner),
		},
		{
			id:      constants.CheckCoderDone,
			message: "coder checkpoint is not done",
			pass:    s.HasDoneTask(constants.RoleCoder),
		},
		{
			id:      constants.CheckRunsByRole,
			message: "a successful agent run is missing for at least one role",
			pass: s.SuccessfulRunForRole(constants.RolePlanner) &&
				s.SuccessfulRunForRole(constants.RoleCoder) &&
				s.SuccessfulRunForRole(constants.RoleReviewer),
		},
		{
			id:      constants.CheckQualityChecklist,
			message: "quality checklist is empty",
			pass:    len(s.QualityChecklist) > 0,
		},
		{
			id:      constants.CheckChecklistCoverage,
			message: fmt.Sprintf("quality checklist does not cover the %s domain tokens", s.MissionDomain),
			pass:    mission.HasChecklistCoverage(s.QualityChecklist, s.MissionDomain),
		},
		{
			id:      constants.CheckMissionDomain,
			message: "mission domain is unresolved",
			pass:    knownDomain(s.MissionDomain),
		},
		{
			id:      constants.CheckBudgetCap,
			message: "used credits exceed the budget cap",
			pass:    s.Cost.UsedCredits <= s.Cost.BudgetCap,
		},
	}
}

func knownDomain(d constants.MissionDomain) bool {
	switch d {
	case constants.DomainGames, constants.DomainFilms, constants.DomainApps, constants.DomainGeneral:
		return true
	default:
		return false
	}
}
