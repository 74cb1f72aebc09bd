package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
)

// Quality and domain scaling for planning estimates.
const (
	standardQualityFactor = 1.0
	deliveryQualityFactor = 1.1
	studioQualityFactor   = 1.3

	generalDomainFactor     = 1.0
	specializedDomainFactor = 1.15
)

// Plan regenerates the session's checkpoint list: exactly one task per role,
// in planner, coder, reviewer order, with estimates scaled by quality mode
// and mission domain.
//
// Re-planning is destructive to execution history: the task list is replaced
// and all agent runs are discarded. The transcript survives, and so does the
// spent-credit floor, because the ledger reconciles used credits with max()
// against the stored value. A re-plan implies the mission changed, so stale
// run history is intentionally dropped.
func (m *Manager) Plan(ctx context.Context, ownerID, sessionID string) (*domain.Session, error) {
	return m.mutate(ctx, ownerID, sessionID, "plan", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}

		factor := estimateFactor(s.QualityMode, s.MissionDomain)
		s.Tasks = []domain.Task{
			newCheckpoint("Plan checkpoint", constants.RolePlanner,
				scaledCredits(constants.PlannerCreditBase, constants.PlannerCreditFloor, factor),
				scaledSeconds(constants.PlannerSecondsFloor, factor)),
			newCheckpoint("Build checkpoint", constants.RoleCoder,
				scaledCredits(constants.CoderCreditBase, constants.CoderCreditFloor, factor),
				scaledSeconds(constants.CoderSecondsFloor, factor)),
			newCheckpoint("Review checkpoint", constants.RoleReviewer,
				scaledCredits(constants.ReviewerCreditFloor, constants.ReviewerCreditFloor, factor),
				scaledSeconds(constants.ReviewerSecondsFloor, factor)),
		}
		s.AgentRuns = []domain.AgentRun{}
		s.Orchestration.Mode = constants.ModeRoleSequencedWave

		appendSessionMessage(s, now, fmt.Sprintf(
			"Planned 3 checkpoints for mission %q (quality %s, domain %s).",
			s.Mission, s.QualityMode, s.MissionDomain))
		return true
	})
}

// estimateFactor scales the base estimates by quality mode and mission
// domain. General missions are cheaper than specialized ones.
func estimateFactor(quality constants.QualityMode, d constants.MissionDomain) float64 {
	qf := standardQualityFactor
	switch quality {
	case constants.QualityDelivery:
		qf = deliveryQualityFactor
	case constants.QualityStudio:
		qf = studioQualityFactor
	case constants.QualityStandard:
	}

	df := specializedDomainFactor
	if d == constants.DomainGeneral {
		df = generalDomainFactor
	}
	return qf * df
}

// scaledCredits returns max(floor, round(base*factor)).
func scaledCredits(base, floor float64, factor float64) float64 {
	c := math.Round(base * factor)
	if c < floor {
		return floor
	}
	return c
}

// scaledSeconds returns max(floor, round(floor*factor)).
func scaledSeconds(floor int, factor float64) int {
	sec := int(math.Round(float64(floor) * factor))
	if sec < floor {
		return floor
	}
	return sec
}

func newCheckpoint(title string, role constants.AgentRole, credits float64, seconds int) domain.Task {
	return domain.Task{
		ID:                uuid.NewString(),
		Title:             title,
		OwnerRole:         role,
		Status:            constants.TaskStatusQueued,
		EstimateCredits:   credits,
		EstimateSeconds:   seconds,
		ValidationVerdict: constants.VerdictPending,
	}
}
