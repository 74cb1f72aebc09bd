// Package session provides the session lifecycle manager for baton.
//
// This file implements the checkpoint task state machine, which enforces
// valid state transitions between task statuses.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/cost, internal/mission, internal/profile, internal/normalize,
//     internal/store, internal/clock, std lib
//   - MUST NOT import: internal/cli, internal/config
package session

import (
	"fmt"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
	batonerrors "github.com/crewlab/baton/internal/errors"
)

// ValidTransitions defines all allowed state transitions in the checkpoint
// task lifecycle. Format: from_status -> []to_statuses
//
// The state machine follows this flow:
//
//	Queued → Planning, Building, Validating, Blocked
//	Planning → Done, Blocked, Error
//	Building → Done, Blocked, Error
//	Validating → Done, Blocked, Error
//	Blocked → Planning, Building, Validating
//	Error → Planning, Building, Validating, Blocked
//	Done → Error (reviewer validation failure), Blocked (rollback)
//
// There are no terminal task states: blocked and error tasks are re-runnable,
// and done reviewer tasks can fail validation or be rolled back. Sessions,
// not tasks, carry the terminal states (stopped, completed).
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.TaskStatus][]constants.TaskStatus{
	constants.TaskStatusQueued: {
		constants.TaskStatusPlanning,
		constants.TaskStatusBuilding,
		constants.TaskStatusValidating,
		constants.TaskStatusBlocked,
	},
	constants.TaskStatusPlanning: {
		constants.TaskStatusDone,
		constants.TaskStatusBlocked,
		constants.TaskStatusError,
	},
	constants.TaskStatusBuilding: {
		constants.TaskStatusDone,
		constants.TaskStatusBlocked,
		constants.TaskStatusError,
	},
	constants.TaskStatusValidating: {
		constants.TaskStatusDone,
		constants.TaskStatusBlocked,
		constants.TaskStatusError,
	},
	constants.TaskStatusBlocked: {
		constants.TaskStatusPlanning,
		constants.TaskStatusBuilding,
		constants.TaskStatusValidating,
	},
	constants.TaskStatusError: {
		constants.TaskStatusPlanning,
		constants.TaskStatusBuilding,
		constants.TaskStatusValidating,
		constants.TaskStatusBlocked,
	},
	constants.TaskStatusDone: {
		constants.TaskStatusError,
		constants.TaskStatusBlocked,
	},
}

// runnableStatuses defines the task states RunTask accepts as eligible.
// A planner task additionally accepts Planning (mid-plan re-run).
//
//nolint:gochecknoglobals // Read-only lookup table
var runnableStatuses = map[constants.TaskStatus]bool{
	constants.TaskStatusQueued:  true,
	constants.TaskStatusBlocked: true,
	constants.TaskStatusError:   true,
}

// IsValidTransition checks if a transition from one status to another is allowed.
// Transitions to the same state are not valid.
func IsValidTransition(from, to constants.TaskStatus) bool {
	if from == to {
		return false
	}
	validTargets, exists := ValidTransitions[from]
	if !exists {
		return false
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsRunnable reports whether RunTask accepts a task in the given state.
func IsRunnable(role constants.AgentRole, status constants.TaskStatus) bool {
	if runnableStatuses[status] {
		return true
	}
	return role == constants.RolePlanner && status == constants.TaskStatusPlanning
}

// RunningStatus returns the in-flight status for a role's task run.
func RunningStatus(role constants.AgentRole) constants.TaskStatus {
	switch role {
	case constants.RoleCoder:
		return constants.TaskStatusBuilding
	case constants.RoleReviewer:
		return constants.TaskStatusValidating
	case constants.RolePlanner:
		return constants.TaskStatusPlanning
	}
	return constants.TaskStatusPlanning
}

// Transition validates and applies a state transition to the task.
// The caller is responsible for persisting the updated session.
//
// Returns a wrapped ErrInvalidTransition if the transition is not allowed.
// The lifecycle manager only requests transitions its own gates permit, so a
// failure here indicates an internal invariant violation, not a business
// rule block.
func Transition(task *domain.Task, to constants.TaskStatus) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", batonerrors.ErrInvalidTransition)
	}
	if !IsValidTransition(task.Status, to) {
		return fmt.Errorf("%w: cannot transition from %s to %s",
			batonerrors.ErrInvalidTransition, task.Status, to)
	}
	task.Status = to
	return nil
}
