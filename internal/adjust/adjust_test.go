package adjust

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenorlab/tenorpick/internal/profile"
)

func TestCompute_NeutralProfileIsIdentity(t *testing.T) {
	calc := NewDefaultCalculator()
	f := calc.Compute(profile.Neutral())
	assert.Equal(t, 1.0, f.Theta)
	assert.Equal(t, 1.0, f.Gamma)
	assert.Equal(t, 1.0, f.Liquidity)
	assert.Equal(t, 1.0, f.Event)
}

func TestCompute_HighVolHighBetaShrinksGamma(t *testing.T) {
	calc := NewDefaultCalculator()
	p := profile.Profile{VolatilityRatio: 1.8, Beta: 2.0, Liquidity: 1.2, MarketCapTier: 1.4, OptionsActivity: 1.4}
	f := calc.Compute(p)

	assert.Less(t, f.Gamma, 1.0, "volatile high-beta names get less gamma tolerance")
	assert.InDelta(t, 1.0+0.8*(-0.15)+1.0*(-0.10), f.Gamma, 1e-9)
	assert.Greater(t, f.Theta, 1.0, "large liquid names earn a theta premium")
	assert.Greater(t, f.Liquidity, 1.0)
	assert.Equal(t, 1.0, f.Event, "event factor stays neutral")
}

func TestCompute_FactorsAreBounded(t *testing.T) {
	calc := NewDefaultCalculator()
	extreme := profile.Profile{VolatilityRatio: 10, Beta: 10, Liquidity: 10, MarketCapTier: 10, OptionsActivity: 10}
	f := calc.Compute(extreme)

	assert.Equal(t, 0.7, f.Gamma, "gamma clamps at the lower bound")
	assert.Equal(t, 1.3, f.Theta, "theta clamps at the upper bound")
	assert.Equal(t, 1.3, f.Liquidity)
}

func TestCompute_LowBetaExpandsGamma(t *testing.T) {
	calc := NewDefaultCalculator()
	p := profile.Profile{VolatilityRatio: 0.6, Beta: 0.6, Liquidity: 1.0, MarketCapTier: 1.4, OptionsActivity: 0.8}
	f := calc.Compute(p)
	assert.Greater(t, f.Gamma, 1.0, "calm low-beta names tolerate more gamma")
}
