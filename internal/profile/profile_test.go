package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewlab/baton/internal/constants"
)

func TestFoldHash(t *testing.T) {
	t.Run("empty string hashes to zero", func(t *testing.T) {
		assert.Equal(t, uint32(0), FoldHash(""))
	})

	t.Run("matches the 31-multiplier fold", func(t *testing.T) {
		// "ab" = 'a'*31 + 'b' = 97*31 + 98 = 3105
		assert.Equal(t, uint32(3105), FoldHash("ab"))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, FoldHash("task-1 Plan checkpoint planner"), FoldHash("task-1 Plan checkpoint planner"))
	})

	t.Run("wraps at 32 bits", func(t *testing.T) {
		long := make([]byte, 64)
		for i := range long {
			long[i] = 'z'
		}
		// Just exercising the wraparound path; the value must be stable.
		assert.Equal(t, FoldHash(string(long)), FoldHash(string(long)))
	})
}

func TestResolveTier(t *testing.T) {
	tests := []struct {
		name         string
		quality      constants.QualityMode
		highPressure bool
		want         Tier
	}{
		{"standard quality is economy", constants.QualityStandard, false, TierEconomy},
		{"delivery quality", constants.QualityDelivery, false, TierDelivery},
		{"studio quality", constants.QualityStudio, false, TierStudio},
		{"high pressure overrides delivery", constants.QualityDelivery, true, TierEconomy},
		{"high pressure overrides studio", constants.QualityStudio, true, TierEconomy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTier(tt.quality, tt.highPressure))
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	seed := SeedFor("task-1", "Build checkpoint", constants.RoleCoder)

	a := Resolve(constants.QualityStudio, false, constants.RoleCoder, seed)
	b := Resolve(constants.QualityStudio, false, constants.RoleCoder, seed)

	assert.Equal(t, a, b)
}

func TestResolve_CostFactorsPerTier(t *testing.T) {
	seed := uint32(12345)

	economy := Resolve(constants.QualityStandard, false, constants.RolePlanner, seed)
	delivery := Resolve(constants.QualityDelivery, false, constants.RolePlanner, seed)
	studio := Resolve(constants.QualityStudio, false, constants.RolePlanner, seed)

	assert.InDelta(t, 0.26, economy.CostFactor, 0.0001)
	assert.InDelta(t, 0.38, delivery.CostFactor, 0.0001)
	assert.InDelta(t, 0.52, studio.CostFactor, 0.0001)
}

func TestResolve_EconomyOverrideUnderPressure(t *testing.T) {
	seed := uint32(999)

	p := Resolve(constants.QualityStudio, true, constants.RoleReviewer, seed)

	assert.Equal(t, "forge-reviewer-lite", p.Model)
	assert.InDelta(t, 0.26, p.CostFactor, 0.0001)
}

func TestResolve_TokensWithinBand(t *testing.T) {
	for _, tier := range []Tier{TierEconomy, TierDelivery, TierStudio} {
		band := tierBands[tier]
		for seed := uint32(0); seed < 50; seed++ {
			var quality constants.QualityMode
			switch tier {
			case TierEconomy:
				quality = constants.QualityStandard
			case TierDelivery:
				quality = constants.QualityDelivery
			case TierStudio:
				quality = constants.QualityStudio
			}

			p := Resolve(quality, false, constants.RoleCoder, seed)
			assert.GreaterOrEqual(t, p.TokensIn, band.inBase)
			assert.Less(t, p.TokensIn, band.inBase+int(band.inSpan))
			assert.GreaterOrEqual(t, p.TokensOut, band.outBase)
			assert.Less(t, p.TokensOut, band.outBase+int(band.outSpan))
		}
	}
}

func TestResolve_ModelNamesPerRole(t *testing.T) {
	seed := uint32(7)

	tests := []struct {
		role constants.AgentRole
		want string
	}{
		{constants.RolePlanner, "forge-planner-max"},
		{constants.RoleCoder, "forge-coder-max"},
		{constants.RoleReviewer, "forge-reviewer-max"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			p := Resolve(constants.QualityStudio, false, tt.role, seed)
			assert.Equal(t, tt.want, p.Model)
		})
	}
}
