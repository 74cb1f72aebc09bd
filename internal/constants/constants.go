// Package constants provides centralized constant values used throughout baton.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// File and directory names used by baton for state persistence.
const (
	// BatonHome is the hidden directory name where baton stores all its data.
	// This directory is created in the user's home directory.
	BatonHome = ".baton"

	// SessionsDir is the directory name where session data is stored.
	SessionsDir = "sessions"

	// SessionFileName is the name of the JSON file that stores a session record.
	SessionFileName = "session.json"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.baton/logs/baton.log
	CLILogFileName = "baton.log"

	// GlobalConfigName is the name of the global baton configuration file.
	// This file is located in the baton home directory.
	GlobalConfigName = "config.yaml"
)

// Budget bounds and rounding rules for the credit ledger.
const (
	// MinBudgetCap is the lowest credit budget a session may be created with.
	MinBudgetCap = 5

	// MaxBudgetCap is the highest credit budget a session may be created with.
	MaxBudgetCap = 100000

	// HighPressureThreshold is the remaining/cap ratio at or below which the
	// session is considered under high budget pressure. High pressure forces
	// economy execution profiles regardless of the chosen quality mode.
	HighPressureThreshold = 0.3

	// MinRunCost is the floor for a single agent run's credit cost.
	MinRunCost = 0.1
)

// Size caps enforced on the session aggregate during normalization.
// Stored blobs exceeding these caps are truncated, never rejected.
const (
	// MaxTasks caps the number of tasks held by one session.
	MaxTasks = 60

	// MaxAgentRuns caps the number of agent run records held by one session.
	MaxAgentRuns = 300

	// MaxMessages caps the transcript length of one session.
	MaxMessages = 500
)

// Planning estimate floors and bases. Credits are
// max(floor, round(base*estimateFactor)) per role.
const (
	// PlannerCreditFloor is the minimum credit estimate for a planner task.
	PlannerCreditFloor = 3

	// CoderCreditFloor is the minimum credit estimate for a coder task.
	CoderCreditFloor = 5

	// ReviewerCreditFloor is the minimum credit estimate for a reviewer task.
	ReviewerCreditFloor = 4

	// PlannerCreditBase is the unscaled credit estimate for a planner task.
	// It sits well above the planner floor so that studio-tier pricing can
	// exceed the minimum budget cap and trip the run budget gate.
	PlannerCreditBase = 8

	// CoderCreditBase is the unscaled credit estimate for a coder task.
	// The reviewer base equals its floor.
	CoderCreditBase = 6

	// PlannerSecondsFloor is the minimum duration estimate for a planner task.
	PlannerSecondsFloor = 20

	// CoderSecondsFloor is the minimum duration estimate for a coder task.
	CoderSecondsFloor = 45

	// ReviewerSecondsFloor is the minimum duration estimate for a reviewer task.
	ReviewerSecondsFloor = 30
)

// Wave execution limits.
const (
	// MaxWaveSteps is the largest number of tasks one wave may advance.
	MaxWaveSteps = 3
)

// Synthetic latency rules. Latency values are derived from estimates,
// never measured.
const (
	// MinRunLatencyMs is the floor for a synthetic run latency.
	MinRunLatencyMs = 200

	// LatencyPerEstimateSecondMs scales a task's second estimate into
	// synthetic run latency milliseconds.
	LatencyPerEstimateSecondMs = 120
)

// Schema version constants for data migration support.
const (
	// SessionSchemaVersion is the current version of the session record schema.
	SessionSchemaVersion = 1
)
