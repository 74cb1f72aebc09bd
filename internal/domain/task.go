package domain

import (
	"time"

	"github.com/crewlab/baton/internal/constants"
)

// Task represents a single role-bound checkpoint within a session.
// Planning always produces exactly one task per role (planner, coder,
// reviewer); tasks progress independently through run → validate →
// apply/rollback.
//
// Example JSON representation:
//
//	{
//	    "id": "b41e...",
//	    "title": "Review checkpoint",
//	    "owner_role": "reviewer",
//	    "status": "done",
//	    "estimate_credits": 5,
//	    "estimate_seconds": 39,
//	    "validation_verdict": "passed",
//	    "apply_token": "apply_1a2b..."
//	}
type Task struct {
	// ID is the unique identifier for the task.
	ID string `json:"id" mapstructure:"id"`

	// Title is the human-readable checkpoint title.
	Title string `json:"title" mapstructure:"title"`

	// OwnerRole binds the task to one agent role.
	OwnerRole constants.AgentRole `json:"owner_role" mapstructure:"owner_role"`

	// Status is the task's position in the checkpoint state machine.
	Status constants.TaskStatus `json:"status" mapstructure:"status"`

	// EstimateCredits is the planned credit cost. Actual run cost is the
	// estimate scaled by the execution profile's cost factor.
	EstimateCredits float64 `json:"estimate_credits" mapstructure:"estimate_credits"`

	// EstimateSeconds is the planned duration. Synthetic run latency is
	// derived from it.
	EstimateSeconds int `json:"estimate_seconds" mapstructure:"estimate_seconds"`

	// Result is the role-specific output text. Validation does substring
	// checks against it, so markers inside it are a wire contract.
	Result string `json:"result,omitempty" mapstructure:"result"`

	// ValidationVerdict records the last validation outcome. Reset to
	// pending on every run and on rollback.
	ValidationVerdict constants.Verdict `json:"validation_verdict" mapstructure:"validation_verdict"`

	// ValidationReport holds per-check failures from the last validation
	// (nil unless a validation has failed and not been rolled back).
	ValidationReport *ValidationReport `json:"validation_report,omitempty" mapstructure:"validation_report"`

	// StartedAt is when the last run began (nil if never run).
	StartedAt *time.Time `json:"started_at,omitempty" mapstructure:"started_at"`

	// FinishedAt is when the last run (or apply) finished.
	FinishedAt *time.Time `json:"finished_at,omitempty" mapstructure:"finished_at"`

	// ApplyToken is the capability string minted by a successful apply.
	// Set only on a reviewer task with a passed verdict; cleared by rollback.
	ApplyToken string `json:"apply_token,omitempty" mapstructure:"apply_token"`
}

// ValidationReport captures the failed portion of a validation battery.
//
// Example JSON representation:
//
//	{
//	    "total_checks": 9,
//	    "failed_ids": ["quality_checklist"],
//	    "failed_messages": ["quality checklist is empty"]
//	}
type ValidationReport struct {
	// TotalChecks is the size of the battery that ran.
	TotalChecks int `json:"total_checks" mapstructure:"total_checks"`

	// FailedIDs lists the stable IDs of failed checks, in battery order.
	FailedIDs []string `json:"failed_ids" mapstructure:"failed_ids"`

	// FailedMessages holds one explanatory message per failed check.
	FailedMessages []string `json:"failed_messages" mapstructure:"failed_messages"`
}

// AgentRun is an immutable execution record. Runs are created exactly once
// per successful task run and never mutated afterward, only appended.
//
// Example JSON representation:
//
//	{
//	    "id": "77af...",
//	    "task_id": "b41e...",
//	    "role": "coder",
//	    "model": "forge-coder-max",
//	    "status": "success",
//	    "tokens_in": 2381,
//	    "tokens_out": 1204,
//	    "latency_ms": 5400,
//	    "cost": 3.12
//	}
type AgentRun struct {
	// ID is the unique identifier for the run.
	ID string `json:"id" mapstructure:"id"`

	// TaskID links the run to the task it executed.
	TaskID string `json:"task_id" mapstructure:"task_id"`

	// Role is the owner role of the executed task.
	Role constants.AgentRole `json:"role" mapstructure:"role"`

	// Model is the synthetic model name selected by the execution profile.
	Model string `json:"model" mapstructure:"model"`

	// Status is the run outcome.
	Status constants.RunStatus `json:"status" mapstructure:"status"`

	// TokensIn is the synthetic input token count.
	TokensIn int `json:"tokens_in" mapstructure:"tokens_in"`

	// TokensOut is the synthetic output token count.
	TokensOut int `json:"tokens_out" mapstructure:"tokens_out"`

	// LatencyMs is the synthetic latency, derived from the task estimate.
	LatencyMs int `json:"latency_ms" mapstructure:"latency_ms"`

	// Cost is the credit cost charged for the run, rounded to 2 decimals
	// and floored at constants.MinRunCost.
	Cost float64 `json:"cost" mapstructure:"cost"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at" mapstructure:"started_at"`

	// FinishedAt is when the run completed (nil for in-flight stored blobs).
	FinishedAt *time.Time `json:"finished_at,omitempty" mapstructure:"finished_at"`

	// Message is a short human-readable run summary.
	Message string `json:"message,omitempty" mapstructure:"message"`
}

// SessionMessage is an append-only transcript entry. Messages are purely
// observational: the core never reads them back for control decisions except
// for marker-substring checks during validation.
type SessionMessage struct {
	// ID is the unique identifier for the message.
	ID string `json:"id" mapstructure:"id"`

	// Role is the transcript author kind.
	Role constants.MessageRole `json:"role" mapstructure:"role"`

	// AgentRole is set when an agent authored the entry.
	AgentRole constants.AgentRole `json:"agent_role,omitempty" mapstructure:"agent_role"`

	// Content is the message body.
	Content string `json:"content" mapstructure:"content"`

	// Timestamp is when the message was appended.
	Timestamp time.Time `json:"timestamp" mapstructure:"timestamp"`

	// Status optionally snapshots the related task status at append time.
	Status constants.TaskStatus `json:"status,omitempty" mapstructure:"status"`
}
