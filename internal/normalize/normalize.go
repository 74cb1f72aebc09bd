// Package normalize coerces untrusted stored JSON into the typed session
// model.
//
// The session store round-trips every blob through this package before use
// and after mutation. The pass is total: it never returns an error. Fields
// that fail to decode, enum values outside their closed set, and lists over
// their size caps all degrade to safe defaults instead of rejecting the
// record. Defensive deserialization here is what lets the lifecycle manager
// trust its in-memory session completely.
package normalize

import (
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/cost"
	"github.com/crewlab/baton/internal/domain"
)

// Session decodes a raw stored blob into a typed Session and applies the
// normalization pass. A nil or undecodable blob yields an empty active
// session rather than an error.
func Session(raw map[string]any) *domain.Session {
	var s domain.Session
	if raw != nil {
		if dec, err := decoder(&s); err == nil {
			// Decode errors leave already-decoded fields in place; the
			// fix-up pass below repairs whatever is missing.
			_ = dec.Decode(raw)
		}
	}
	Apply(&s)
	return &s
}

// Apply enforces enum membership, size caps, and ledger reconciliation on a
// session in place. The lifecycle manager calls this after every mutation so
// persisted blobs are always normal-form.
func Apply(s *domain.Session) {
	s.Status = sessionStatus(s.Status)
	s.QualityMode = qualityMode(s.QualityMode)
	s.MissionDomain = missionDomain(s.MissionDomain)
	s.Orchestration.Mode = orchestrationMode(s.Orchestration.Mode)

	if s.QualityChecklist == nil {
		s.QualityChecklist = []string{}
	}
	if s.SchemaVersion == 0 {
		s.SchemaVersion = constants.SessionSchemaVersion
	}

	normalizeTasks(s)
	normalizeRuns(s)
	normalizeMessages(s)
	normalizeGrants(s)

	s.Cost = cost.Compute(s)
}

// decoder builds a weakly-typed mapstructure decoder with RFC 3339 time
// coercion, matching how stored blobs serialize timestamps.
func decoder(target *domain.Session) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
}

func normalizeTasks(s *domain.Session) {
	// Ordered list, head wins the cap: later entries of an oversized blob
	// never existed as far as the state machine is concerned.
	if len(s.Tasks) > constants.MaxTasks {
		s.Tasks = s.Tasks[:constants.MaxTasks]
	}
	if s.Tasks == nil {
		s.Tasks = []domain.Task{}
	}
	for i := range s.Tasks {
		t := &s.Tasks[i]
		t.OwnerRole = agentRole(t.OwnerRole)
		t.Status = taskStatus(t.Status)
		t.ValidationVerdict = verdict(t.ValidationVerdict)
		if t.EstimateCredits < 0 {
			t.EstimateCredits = 0
		}
		if t.EstimateSeconds < 0 {
			t.EstimateSeconds = 0
		}
		// An apply token is a rollback capability: only a reviewer task
		// whose validation passed may carry one. A stored blob claiming
		// otherwise loses the token rather than the session.
		if t.OwnerRole != constants.RoleReviewer || t.ValidationVerdict != constants.VerdictPassed {
			t.ApplyToken = ""
		}
	}
}

func normalizeRuns(s *domain.Session) {
	// Append-only record: the tail is the recent history, keep it.
	if len(s.AgentRuns) > constants.MaxAgentRuns {
		s.AgentRuns = s.AgentRuns[len(s.AgentRuns)-constants.MaxAgentRuns:]
	}
	if s.AgentRuns == nil {
		s.AgentRuns = []domain.AgentRun{}
	}
	for i := range s.AgentRuns {
		r := &s.AgentRuns[i]
		r.Role = agentRole(r.Role)
		r.Status = runStatus(r.Status)
		if r.Cost < 0 {
			r.Cost = 0
		}
		if r.TokensIn < 0 {
			r.TokensIn = 0
		}
		if r.TokensOut < 0 {
			r.TokensOut = 0
		}
		if r.LatencyMs < 0 {
			r.LatencyMs = 0
		}
	}
}

func normalizeMessages(s *domain.Session) {
	// Append-only transcript: keep the newest entries.
	if len(s.Messages) > constants.MaxMessages {
		s.Messages = s.Messages[len(s.Messages)-constants.MaxMessages:]
	}
	if s.Messages == nil {
		s.Messages = []domain.SessionMessage{}
	}
	for i := range s.Messages {
		m := &s.Messages[i]
		m.Role = messageRole(m.Role)
	}
}

func normalizeGrants(s *domain.Session) {
	if s.FullAccessGrants == nil {
		s.FullAccessGrants = []domain.FullAccessGrant{}
	}
	for i := range s.FullAccessGrants {
		g := &s.FullAccessGrants[i]
		g.Scope = grantScope(g.Scope)
	}
}

func sessionStatus(v constants.SessionStatus) constants.SessionStatus {
	switch v {
	case constants.SessionStatusActive, constants.SessionStatusStopped, constants.SessionStatusCompleted:
		return v
	default:
		return constants.SessionStatusActive
	}
}

func taskStatus(v constants.TaskStatus) constants.TaskStatus {
	switch v {
	case constants.TaskStatusQueued, constants.TaskStatusPlanning, constants.TaskStatusBuilding,
		constants.TaskStatusValidating, constants.TaskStatusBlocked, constants.TaskStatusDone,
		constants.TaskStatusError:
		return v
	default:
		return constants.TaskStatusQueued
	}
}

func agentRole(v constants.AgentRole) constants.AgentRole {
	switch v {
	case constants.RolePlanner, constants.RoleCoder, constants.RoleReviewer:
		return v
	default:
		return constants.RolePlanner
	}
}

func runStatus(v constants.RunStatus) constants.RunStatus {
	switch v {
	case constants.RunStatusRunning, constants.RunStatusSuccess, constants.RunStatusError:
		return v
	default:
		return constants.RunStatusError
	}
}

func verdict(v constants.Verdict) constants.Verdict {
	switch v {
	case constants.VerdictPending, constants.VerdictPassed, constants.VerdictFailed:
		return v
	default:
		return constants.VerdictPending
	}
}

func messageRole(v constants.MessageRole) constants.MessageRole {
	switch v {
	case constants.MessageRoleUser, constants.MessageRoleAssistant, constants.MessageRoleSystem:
		return v
	default:
		return constants.MessageRoleSystem
	}
}

func grantScope(v constants.GrantScope) constants.GrantScope {
	switch v {
	case constants.ScopeProject, constants.ScopeWorkspace, constants.ScopeWebTools:
		return v
	default:
		return constants.ScopeProject
	}
}

func qualityMode(v constants.QualityMode) constants.QualityMode {
	switch v {
	case constants.QualityStandard, constants.QualityDelivery, constants.QualityStudio:
		return v
	default:
		return constants.QualityStandard
	}
}

func missionDomain(v constants.MissionDomain) constants.MissionDomain {
	switch v {
	case constants.DomainGames, constants.DomainFilms, constants.DomainApps, constants.DomainGeneral:
		return v
	default:
		return constants.DomainGeneral
	}
}

func orchestrationMode(v constants.OrchestrationMode) constants.OrchestrationMode {
	switch v {
	case constants.ModeRoleSequencedWave, constants.ModeSingleTask:
		return v
	default:
		return constants.ModeSingleTask
	}
}
