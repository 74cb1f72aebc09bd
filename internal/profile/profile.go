// Package profile resolves role execution profiles for baton tasks.
//
// No model is ever invoked: model names, token counts, and cost factors are
// synthesized deterministically from the session's quality tier, its budget
// pressure, and a stable 32-bit hash of the task identity. The same task
// always resolves to the same profile, which keeps validation outcomes
// reproducible from stored state alone.
package profile

import (
	"github.com/crewlab/baton/internal/constants"
)

// Tier is the effective execution tier after budget pressure is applied.
type Tier string

// Execution tiers. Economy silently overrides the requested quality mode
// when budget pressure is high.
const (
	// TierEconomy is selected for standard quality or high budget pressure.
	TierEconomy Tier = "economy"

	// TierDelivery is selected for delivery quality under normal pressure.
	TierDelivery Tier = "delivery"

	// TierStudio is selected for studio quality under normal pressure.
	TierStudio Tier = "studio"
)

// Cost factors per tier, multiplied against the task's credit estimate to
// produce the actual run cost.
const (
	economyCostFactor  = 0.26
	deliveryCostFactor = 0.38
	studioCostFactor   = 0.52
)

// Profile is a resolved execution profile for one task run.
type Profile struct {
	// Model is the synthetic model name recorded on the agent run.
	Model string

	// TokensIn is the synthetic input token count.
	TokensIn int

	// TokensOut is the synthetic output token count.
	TokensOut int

	// CostFactor scales the task's credit estimate into the run cost.
	CostFactor float64
}

// tokenBand describes the deterministic token synthesis for a tier:
// count = base + (seed mod span).
type tokenBand struct {
	inBase  int
	inSpan  uint32
	outBase int
	outSpan uint32
	cost    float64
	models  map[constants.AgentRole]string
}

//nolint:gochecknoglobals // Read-only profile tables
var tierBands = map[Tier]tokenBand{
	TierEconomy: {
		inBase:  900,
		inSpan:  400,
		outBase: 350,
		outSpan: 200,
		cost:    economyCostFactor,
		models: map[constants.AgentRole]string{
			constants.RolePlanner:  "forge-planner-lite",
			constants.RoleCoder:    "forge-coder-lite",
			constants.RoleReviewer: "forge-reviewer-lite",
		},
	},
	TierDelivery: {
		inBase:  1600,
		inSpan:  700,
		outBase: 700,
		outSpan: 350,
		cost:    deliveryCostFactor,
		models: map[constants.AgentRole]string{
			constants.RolePlanner:  "forge-planner-pro",
			constants.RoleCoder:    "forge-coder-pro",
			constants.RoleReviewer: "forge-reviewer-pro",
		},
	},
	TierStudio: {
		inBase:  2400,
		inSpan:  1100,
		outBase: 1100,
		outSpan: 600,
		cost:    studioCostFactor,
		models: map[constants.AgentRole]string{
			constants.RolePlanner:  "forge-planner-max",
			constants.RoleCoder:    "forge-coder-max",
			constants.RoleReviewer: "forge-reviewer-max",
		},
	},
}

// FoldHash folds a string into a stable 32-bit seed using
// h = h*31 + byte with explicit uint32 wraparound. The fixed-width
// arithmetic keeps results identical across platforms.
func FoldHash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// SeedFor derives the profile seed from a task's stable identity.
func SeedFor(taskID, title string, role constants.AgentRole) uint32 {
	return FoldHash(taskID + title + string(role))
}

// ResolveTier maps the requested quality mode and the budget pressure signal
// to the effective execution tier. High pressure always forces economy.
func ResolveTier(quality constants.QualityMode, highPressure bool) Tier {
	if highPressure || quality == constants.QualityStandard {
		return TierEconomy
	}
	if quality == constants.QualityStudio {
		return TierStudio
	}
	return TierDelivery
}

// Resolve returns the deterministic execution profile for a task run.
// The same (quality, pressure, role, seed) input always yields the same
// profile; nothing here is random.
func Resolve(quality constants.QualityMode, highPressure bool, role constants.AgentRole, seed uint32) Profile {
	band := tierBands[ResolveTier(quality, highPressure)]

	model, ok := band.models[role]
	if !ok {
		model = band.models[constants.RolePlanner]
	}

	return Profile{
		Model:      model,
		TokensIn:   band.inBase + int(seed%band.inSpan),
		TokensOut:  band.outBase + int(seed%band.outSpan),
		CostFactor: band.cost,
	}
}
