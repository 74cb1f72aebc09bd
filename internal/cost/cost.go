// Package cost implements the credit ledger for baton sessions.
//
// Credits are tracked to 3 decimal places internally. The ledger is derived
// state: it is recomputed from tasks and agent runs on every session load,
// with one deliberate exception — used credits are reconciled against the
// previously stored value with max(), which makes spend monotonically
// non-decreasing even across destructive re-plans.
//
// This package holds pure functions only and MUST NOT import anything beyond
// internal/constants, internal/domain, and the standard library.
package cost

import (
	"math"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
)

// Round3 rounds credits to the 3-decimal internal precision.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round2 rounds a run cost to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampBudget clamps a requested budget cap to
// [constants.MinBudgetCap, constants.MaxBudgetCap] and rounds it to a whole
// credit.
func ClampBudget(v float64) float64 {
	return math.Round(math.Min(constants.MaxBudgetCap, math.Max(constants.MinBudgetCap, v)))
}

// Compute reconciles the session's credit summary from its tasks and agent
// runs. The stored summary's UsedCredits acts as a floor so spend never
// moves backward; its BudgetCap is re-clamped defensively.
func Compute(s *domain.Session) domain.CostSummary {
	var estimated float64
	for i := range s.Tasks {
		estimated += s.Tasks[i].EstimateCredits
	}

	var runTotal float64
	for i := range s.AgentRuns {
		runTotal += s.AgentRuns[i].Cost
	}

	budgetCap := ClampBudget(s.Cost.BudgetCap)
	used := Round3(math.Max(s.Cost.UsedCredits, runTotal))

	return domain.CostSummary{
		EstimatedCredits: Round3(estimated),
		UsedCredits:      used,
		BudgetCap:        budgetCap,
		RemainingCredits: Round3(math.Max(0, budgetCap-used)),
	}
}

// Pressure returns the budget pressure signal: remaining credits over the
// budget cap (cap floored at 1 to avoid division blowups on corrupt blobs).
func Pressure(sum domain.CostSummary) float64 {
	return sum.RemainingCredits / math.Max(1, sum.BudgetCap)
}

// HighPressure reports whether the session is under high budget pressure.
// High pressure forces economy execution profiles regardless of the chosen
// quality mode.
func HighPressure(sum domain.CostSummary) bool {
	return Pressure(sum) <= constants.HighPressureThreshold
}

// RunCost converts a task's credit estimate into the actual charge for one
// run: estimate scaled by the profile's cost factor, rounded to 2 decimals,
// floored at constants.MinRunCost.
func RunCost(estimateCredits, costFactor float64) float64 {
	c := Round2(estimateCredits * costFactor)
	if c < constants.MinRunCost {
		return constants.MinRunCost
	}
	return c
}
