package constants

// SessionStatus represents the lifecycle state of a session.
// Status values use snake_case for JSON serialization compatibility.
type SessionStatus string

// Session status constants. A session that is not active freezes all task,
// run, and grant mutation: every mutator becomes a no-op returning the
// current state.
const (
	// SessionStatusActive indicates the session accepts lifecycle operations.
	SessionStatusActive SessionStatus = "active"

	// SessionStatusStopped indicates the session was explicitly stopped.
	// Terminal: there is no un-stop operation.
	SessionStatusStopped SessionStatus = "stopped"

	// SessionStatusCompleted indicates the session finished its mission.
	// Terminal. Nothing in the core transitions here automatically; the
	// value exists for stored blobs written by outer surfaces.
	SessionStatusCompleted SessionStatus = "completed"
)

// String returns the string representation of the SessionStatus.
func (s SessionStatus) String() string {
	return string(s)
}

// TaskStatus represents the state of a checkpoint task in the baton state machine.
// Status values use snake_case for JSON serialization compatibility.
type TaskStatus string

// Task status constants define the valid states a task can be in.
// These follow the state machine:
//
//	Queued → Planning, Building, Validating, Blocked
//	Planning/Building/Validating → Done, Blocked, Error
//	Blocked → Planning, Building, Validating (re-run)
//	Error → Planning, Building, Validating (re-run), Blocked (rollback)
//	Done → Error (reviewer validation failure), Blocked (rollback)
const (
	// TaskStatusQueued indicates a task has been planned but never run.
	TaskStatusQueued TaskStatus = "queued"

	// TaskStatusPlanning indicates a planner task is mid-execution.
	TaskStatusPlanning TaskStatus = "planning"

	// TaskStatusBuilding indicates a coder task is mid-execution.
	TaskStatusBuilding TaskStatus = "building"

	// TaskStatusValidating indicates a reviewer task is mid-execution.
	TaskStatusValidating TaskStatus = "validating"

	// TaskStatusBlocked indicates a dependency or budget gate stopped the
	// task. Blocked tasks are re-runnable once the gate clears.
	TaskStatusBlocked TaskStatus = "blocked"

	// TaskStatusDone indicates the task ran to completion.
	TaskStatusDone TaskStatus = "done"

	// TaskStatusError indicates a reviewer task failed validation.
	// The task can be re-run after the underlying issue is addressed.
	TaskStatusError TaskStatus = "error"
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	return string(s)
}

// AgentRole identifies which checkpoint an agent contribution belongs to.
type AgentRole string

// Agent role constants. Every plan produces exactly one task per role, and
// waves advance roles in this fixed order.
const (
	// RolePlanner stages the execution plan.
	RolePlanner AgentRole = "planner"

	// RoleCoder produces the build output. Requires a done planner task.
	RoleCoder AgentRole = "coder"

	// RoleReviewer validates the build output. Requires a done coder task.
	RoleReviewer AgentRole = "reviewer"
)

// String returns the string representation of the AgentRole.
func (r AgentRole) String() string {
	return string(r)
}

// RoleOrder is the fixed role sequence used by planning and wave scheduling.
//
//nolint:gochecknoglobals // Read-only ordering table
var RoleOrder = []AgentRole{RolePlanner, RoleCoder, RoleReviewer}

// RunStatus represents the state of an immutable agent run record.
type RunStatus string

// Run status constants.
const (
	// RunStatusRunning indicates a run is in flight. The core only writes
	// completed runs; the value exists for stored blobs.
	RunStatusRunning RunStatus = "running"

	// RunStatusSuccess indicates the run completed.
	RunStatusSuccess RunStatus = "success"

	// RunStatusError indicates the run failed.
	RunStatusError RunStatus = "error"
)

// String returns the string representation of the RunStatus.
func (s RunStatus) String() string {
	return string(s)
}

// Verdict represents the validation outcome recorded on a reviewer task.
type Verdict string

// Verdict constants.
const (
	// VerdictPending indicates the task has not been validated since its
	// last run (or was rolled back).
	VerdictPending Verdict = "pending"

	// VerdictPassed indicates every validation check passed.
	VerdictPassed Verdict = "passed"

	// VerdictFailed indicates at least one validation check failed.
	VerdictFailed Verdict = "failed"
)

// String returns the string representation of the Verdict.
func (v Verdict) String() string {
	return string(v)
}

// MessageRole identifies the author of a transcript entry.
type MessageRole string

// Message role constants.
const (
	// MessageRoleUser marks caller-authored transcript entries.
	MessageRoleUser MessageRole = "user"

	// MessageRoleAssistant marks agent-authored transcript entries.
	MessageRoleAssistant MessageRole = "assistant"

	// MessageRoleSystem marks orchestrator-authored transcript entries.
	MessageRoleSystem MessageRole = "system"
)

// String returns the string representation of the MessageRole.
func (r MessageRole) String() string {
	return string(r)
}

// MissionDomain classifies what kind of work a mission describes.
type MissionDomain string

// Mission domain constants. Classification tests keyword sets in this fixed
// priority order; the first match wins.
const (
	// DomainGames covers game development missions.
	DomainGames MissionDomain = "games"

	// DomainFilms covers film and video production missions.
	DomainFilms MissionDomain = "films"

	// DomainApps covers application and service development missions.
	DomainApps MissionDomain = "apps"

	// DomainGeneral is the fallback when no keyword set matches.
	DomainGeneral MissionDomain = "general"
)

// String returns the string representation of the MissionDomain.
func (d MissionDomain) String() string {
	return string(d)
}

// QualityMode selects the execution tier a session asks for. Budget pressure
// can silently override the chosen mode with economy profiles.
type QualityMode string

// Quality mode constants.
const (
	// QualityStandard is the default, cheapest tier.
	QualityStandard QualityMode = "standard"

	// QualityDelivery is the mid tier for client-facing output.
	QualityDelivery QualityMode = "delivery"

	// QualityStudio is the top tier for studio-grade output.
	QualityStudio QualityMode = "studio"
)

// String returns the string representation of the QualityMode.
func (m QualityMode) String() string {
	return string(m)
}

// GrantScope identifies what a full-access grant covers.
type GrantScope string

// Grant scope constants.
const (
	// ScopeProject grants access to the session's project.
	ScopeProject GrantScope = "project"

	// ScopeWorkspace grants access to the whole workspace.
	ScopeWorkspace GrantScope = "workspace"

	// ScopeWebTools grants access to web tooling.
	ScopeWebTools GrantScope = "web_tools"
)

// String returns the string representation of the GrantScope.
func (s GrantScope) String() string {
	return string(s)
}

// WaveStrategy selects how many steps one wave may take.
type WaveStrategy string

// Wave strategy constants.
const (
	// StrategyBalanced honors the requested step cap (up to MaxWaveSteps).
	StrategyBalanced WaveStrategy = "balanced"

	// StrategyCostGuarded caps steps at two, or one under high budget pressure.
	StrategyCostGuarded WaveStrategy = "cost_guarded"

	// StrategyQualityFirst advances a single step per wave.
	StrategyQualityFirst WaveStrategy = "quality_first"
)

// String returns the string representation of the WaveStrategy.
func (s WaveStrategy) String() string {
	return string(s)
}

// OrchestrationMode records how the session schedules its tasks.
type OrchestrationMode string

// Orchestration mode constants.
const (
	// ModeRoleSequencedWave interleaves roles in fixed order within one wave.
	// "Wave" refers to logical task interleaving, not execution concurrency.
	ModeRoleSequencedWave OrchestrationMode = "role_sequenced_wave"

	// ModeSingleTask is the mode before the first plan, when tasks are run
	// only individually.
	ModeSingleTask OrchestrationMode = "single_task"
)

// String returns the string representation of the OrchestrationMode.
func (m OrchestrationMode) String() string {
	return string(m)
}
