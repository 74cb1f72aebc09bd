// Package domain provides shared domain types for the baton orchestration core.
// These types are used across all internal packages to ensure consistent data
// structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"time"

	"github.com/crewlab/baton/internal/constants"
)

// Session is the aggregate root for one orchestrated mission.
// All lifecycle operations load a session snapshot from the store, mutate it
// in memory, and persist it back; nothing outside one call observes partial
// application.
//
// Example JSON representation:
//
//	{
//	    "id": "9f2c...",
//	    "user_id": "u-100",
//	    "project_id": "p-7",
//	    "mission": "Ship the inventory screen for the roguelike",
//	    "mission_domain": "games",
//	    "quality_mode": "studio",
//	    "status": "active",
//	    "tasks": [...],
//	    "agent_runs": [...],
//	    "messages": [...],
//	    "cost": {...},
//	    "schema_version": 1
//	}
type Session struct {
	// ID is the unique identifier for the session.
	ID string `json:"id" mapstructure:"id"`

	// UserID identifies the owner of the session.
	UserID string `json:"user_id" mapstructure:"user_id"`

	// ProjectID links the session to a project.
	ProjectID string `json:"project_id" mapstructure:"project_id"`

	// Mission is the free-text mission statement the session decomposes.
	Mission string `json:"mission" mapstructure:"mission"`

	// MissionDomain is the resolved domain classification of the mission.
	MissionDomain constants.MissionDomain `json:"mission_domain" mapstructure:"mission_domain"`

	// QualityMode is the requested execution tier. Budget pressure can
	// silently downgrade the effective tier to economy.
	QualityMode constants.QualityMode `json:"quality_mode" mapstructure:"quality_mode"`

	// QualityChecklist is the ordered, domain-specific checklist. It is both
	// human-facing guidance and a machine-checked validation artifact.
	QualityChecklist []string `json:"quality_checklist" mapstructure:"quality_checklist"`

	// Status is the session lifecycle state. Any status other than active
	// turns every task, run, and grant mutator into a no-op.
	Status constants.SessionStatus `json:"status" mapstructure:"status"`

	// Tasks is the ordered checkpoint list (capped at constants.MaxTasks).
	Tasks []Task `json:"tasks" mapstructure:"tasks"`

	// AgentRuns is the append-only execution record list
	// (capped at constants.MaxAgentRuns).
	AgentRuns []AgentRun `json:"agent_runs" mapstructure:"agent_runs"`

	// Messages is the append-only transcript (capped at constants.MaxMessages).
	Messages []SessionMessage `json:"messages" mapstructure:"messages"`

	// Cost is the reconciled credit summary. UsedCredits is monotonically
	// non-decreasing across the session's lifetime.
	Cost CostSummary `json:"cost" mapstructure:"cost"`

	// FullAccessGrants holds the additive grant ledger. Revocation stamps,
	// never deletes.
	FullAccessGrants []FullAccessGrant `json:"full_access_grants" mapstructure:"full_access_grants"`

	// Orchestration records scheduling state for wave execution.
	Orchestration Orchestration `json:"orchestration" mapstructure:"orchestration"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at" mapstructure:"created_at"`

	// LastActivityAt is when the session last mutated.
	LastActivityAt time.Time `json:"last_activity_at" mapstructure:"last_activity_at"`

	// EndedAt is when the session was stopped (nil while active).
	EndedAt *time.Time `json:"ended_at,omitempty" mapstructure:"ended_at"`

	// SchemaVersion indicates the version of the Session struct schema.
	// This enables forward-compatible schema migrations.
	SchemaVersion int `json:"schema_version" mapstructure:"schema_version"`
}

// Orchestration records how the session schedules work across roles.
type Orchestration struct {
	// Mode is the scheduling mode. Planning sets role_sequenced_wave.
	Mode constants.OrchestrationMode `json:"mode" mapstructure:"mode"`

	// ConversationPolicy controls transcript verbosity for outer surfaces.
	ConversationPolicy string `json:"conversation_policy,omitempty" mapstructure:"conversation_policy"`

	// ApplyPolicy controls how applies are gated for outer surfaces.
	ApplyPolicy string `json:"apply_policy,omitempty" mapstructure:"apply_policy"`

	// LastWaveAt is when the last wave ran (nil before the first wave).
	LastWaveAt *time.Time `json:"last_wave_at,omitempty" mapstructure:"last_wave_at"`
}

// IsActive reports whether lifecycle mutators may change this session.
func (s *Session) IsActive() bool {
	return s.Status == constants.SessionStatusActive
}

// TaskByID returns a pointer into the session's task list, or nil if the
// task is not present.
func (s *Session) TaskByID(taskID string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID {
			return &s.Tasks[i]
		}
	}
	return nil
}

// HasDoneTask reports whether some task owned by the given role is done.
// Dependency gates observe this at all times, not only at transition moments.
func (s *Session) HasDoneTask(role constants.AgentRole) bool {
	for i := range s.Tasks {
		if s.Tasks[i].OwnerRole == role && s.Tasks[i].Status == constants.TaskStatusDone {
			return true
		}
	}
	return false
}

// SuccessfulRunForRole reports whether a successful agent run exists for the
// given role.
func (s *Session) SuccessfulRunForRole(role constants.AgentRole) bool {
	for i := range s.AgentRuns {
		if s.AgentRuns[i].Role == role && s.AgentRuns[i].Status == constants.RunStatusSuccess {
			return true
		}
	}
	return false
}

// ActiveGrants returns the grants that are neither revoked nor expired at
// the given instant. The underlying ledger is never filtered in place.
func (s *Session) ActiveGrants(now time.Time) []FullAccessGrant {
	active := make([]FullAccessGrant, 0, len(s.FullAccessGrants))
	for _, g := range s.FullAccessGrants {
		if g.RevokedAt != nil {
			continue
		}
		if !g.ExpiresAt.After(now) {
			continue
		}
		active = append(active, g)
	}
	return active
}
