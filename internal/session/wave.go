package session

import (
	"context"
	"time"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/cost"
	"github.com/crewlab/baton/internal/domain"
)

// WaveReport summarizes one wave invocation: which tasks advanced to done
// and which ended blocked or in error.
type WaveReport struct {
	// Strategy is the scheduling strategy the wave ran under.
	Strategy constants.WaveStrategy `json:"strategy"`

	// RequestedSteps is the caller's step request before clamping.
	RequestedSteps int `json:"requested_steps"`

	// EffectiveSteps is the step cap after strategy and budget-pressure
	// clamping.
	EffectiveSteps int `json:"effective_steps"`

	// Executed lists task ids that reached done during the wave.
	Executed []string `json:"executed"`

	// Blocked lists task ids that ended blocked or in error during the wave.
	Blocked []string `json:"blocked"`
}

// RunWave advances up to maxSteps tasks across the fixed role order
// (planner, coder, reviewer) in one call. For each role it picks the first
// task that is both runnable and dependency-eligible and runs it; tasks
// whose dependency is unmet are skipped rather than blocked, so a planner
// finishing early in the wave can unlock the coder within the same wave.
//
// The effective step cap is computed once from the session state at wave
// start. A task that pushes the budget into high pressure mid-wave does not
// tighten the cap for the remaining steps; the budget gate inside each run
// still applies.
func (m *Manager) RunWave(ctx context.Context, ownerID, sessionID string, maxSteps int, strategy constants.WaveStrategy) (*domain.Session, *WaveReport, error) {
	strategy = waveStrategy(strategy)
	report := &WaveReport{
		Strategy:       strategy,
		RequestedSteps: maxSteps,
		Executed:       []string{},
		Blocked:        []string{},
	}

	s, err := m.mutate(ctx, ownerID, sessionID, "wave", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}

		stepCap := effectiveStepCap(strategy, maxSteps, cost.HighPressure(cost.Compute(s)))
		report.EffectiveSteps = stepCap

		steps := 0
		for _, role := range constants.RoleOrder {
			if steps >= stepCap || !s.IsActive() {
				break
			}
			t := nextRunnable(s, role)
			if t == nil {
				continue
			}
			runTask(s, t.ID, now)
			steps++
			if t.Status == constants.TaskStatusDone {
				report.Executed = append(report.Executed, t.ID)
			} else {
				report.Blocked = append(report.Blocked, t.ID)
			}
		}

		wave := now
		s.Orchestration.LastWaveAt = &wave
		return true
	})
	if err != nil {
		return nil, nil, err
	}
	return s, report, nil
}

// nextRunnable returns the first task of the role that is runnable and has
// its role dependency satisfied, or nil.
func nextRunnable(s *domain.Session, role constants.AgentRole) *domain.Task {
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.OwnerRole != role || !IsRunnable(t.OwnerRole, t.Status) {
			continue
		}
		if _, ok := roleDependencyMet(s, role); !ok {
			return nil
		}
		return t
	}
	return nil
}

// effectiveStepCap clamps the requested step count by strategy:
// quality_first always single-steps, cost_guarded caps at 2 (1 under high
// budget pressure), balanced honors the request up to MaxWaveSteps.
func effectiveStepCap(strategy constants.WaveStrategy, requested int, highPressure bool) int {
	if requested < 1 {
		requested = 1
	}
	if requested > constants.MaxWaveSteps {
		requested = constants.MaxWaveSteps
	}

	switch strategy {
	case constants.StrategyQualityFirst:
		return 1
	case constants.StrategyCostGuarded:
		if highPressure {
			return 1
		}
		if requested > 2 {
			return 2
		}
		return requested
	case constants.StrategyBalanced:
	}
	return requested
}

func waveStrategy(v constants.WaveStrategy) constants.WaveStrategy {
	switch v {
	case constants.StrategyBalanced, constants.StrategyCostGuarded, constants.StrategyQualityFirst:
		return v
	default:
		return constants.StrategyBalanced
	}
}
