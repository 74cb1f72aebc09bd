package domain

import (
	"time"

	"github.com/crewlab/baton/internal/constants"
)

// CostSummary is the derived credit ledger for one session. It is recomputed
// from tasks and agent runs on every load, but UsedCredits is reconciled
// against the previously stored value with max(), so spend never moves
// backward even across destructive re-plans.
//
// Example JSON representation:
//
//	{
//	    "estimated_credits": 14,
//	    "used_credits": 3.64,
//	    "budget_cap": 50,
//	    "remaining_credits": 46.36
//	}
type CostSummary struct {
	// EstimatedCredits is the sum of task credit estimates.
	EstimatedCredits float64 `json:"estimated_credits" mapstructure:"estimated_credits"`

	// UsedCredits is max(previously stored used, sum of agent run costs),
	// rounded to 3 decimals. Monotonically non-decreasing.
	UsedCredits float64 `json:"used_credits" mapstructure:"used_credits"`

	// BudgetCap is the clamped credit budget for the session.
	BudgetCap float64 `json:"budget_cap" mapstructure:"budget_cap"`

	// RemainingCredits is max(0, BudgetCap - UsedCredits).
	RemainingCredits float64 `json:"remaining_credits" mapstructure:"remaining_credits"`
}

// FullAccessGrant is a time-boxed, revocable capability record for broader
// access, independent of task execution. Grants are additive; revocation
// stamps RevokedAt and never removes the entry, preserving the audit trail.
//
// Example JSON representation:
//
//	{
//	    "id": "c9d1...",
//	    "scope": "workspace",
//	    "created_at": "2026-08-30T10:00:00Z",
//	    "expires_at": "2026-08-30T11:00:00Z",
//	    "audit_ref": "studio_access_m0f3k9qz"
//	}
type FullAccessGrant struct {
	// ID is the unique identifier for the grant.
	ID string `json:"id" mapstructure:"id"`

	// Scope is what the grant covers.
	Scope constants.GrantScope `json:"scope" mapstructure:"scope"`

	// CreatedAt is when the grant was issued.
	CreatedAt time.Time `json:"created_at" mapstructure:"created_at"`

	// ExpiresAt is when the grant lapses.
	ExpiresAt time.Time `json:"expires_at" mapstructure:"expires_at"`

	// RevokedAt is when the grant was revoked (nil while live).
	RevokedAt *time.Time `json:"revoked_at,omitempty" mapstructure:"revoked_at"`

	// AuditRef is the audit trail reference, format
	// studio_access_<base36-millis>.
	AuditRef string `json:"audit_ref" mapstructure:"audit_ref"`
}
