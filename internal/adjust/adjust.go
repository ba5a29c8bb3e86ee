package adjust

import (
	"github.com/tenorlab/tenorpick/internal/profile"
)

// Factors are the per-security multiplicative adjustments applied to each
// scoring curve. A neutral profile yields exactly 1.0 across the board.
type Factors struct {
	Theta     float64 `json:"theta"`
	Gamma     float64 `json:"gamma"`
	Liquidity float64 `json:"liquidity"`
	Event     float64 `json:"event"`
}

// Neutral returns the identity factors.
func Neutral() Factors {
	return Factors{Theta: 1.0, Gamma: 1.0, Liquidity: 1.0, Event: 1.0}
}

// Config holds the linear sensitivities around the 1.0 baseline and the
// hard deviation bounds.
type Config struct {
	// Gamma tolerance shrinks for volatile, high-beta names.
	GammaVolSensitivity  float64 `yaml:"gamma_vol_sensitivity"`
	GammaBetaSensitivity float64 `yaml:"gamma_beta_sensitivity"`

	// Theta efficiency gets a premium for large, liquid names.
	ThetaCapSensitivity float64 `yaml:"theta_cap_sensitivity"`
	ThetaLiqSensitivity float64 `yaml:"theta_liq_sensitivity"`

	// Liquidity scoring rewards deep books and active chains.
	LiqLiqSensitivity      float64 `yaml:"liq_liq_sensitivity"`
	LiqActivitySensitivity float64 `yaml:"liq_activity_sensitivity"`

	MinFactor float64 `yaml:"min_factor"`
	MaxFactor float64 `yaml:"max_factor"`
}

// DefaultConfig returns the stock sensitivities. Deviations are bounded to
// +/-30% so a single trait can never dominate the curve output.
func DefaultConfig() Config {
	return Config{
		GammaVolSensitivity:    -0.15,
		GammaBetaSensitivity:   -0.10,
		ThetaCapSensitivity:    0.08,
		ThetaLiqSensitivity:    0.07,
		LiqLiqSensitivity:      0.10,
		LiqActivitySensitivity: 0.10,
		MinFactor:              0.7,
		MaxFactor:              1.3,
	}
}

// Calculator derives adjustment factors from a market profile.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator with the supplied sensitivities.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// NewDefaultCalculator creates a calculator with DefaultConfig.
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultConfig())
}

// Compute maps a profile to bounded adjustment factors. Each factor is a
// linear function of the trait deviations from 1.0, clamped to
// [MinFactor, MaxFactor]. The event factor stays neutral until a richer
// earnings model is plugged in.
func (c *Calculator) Compute(p profile.Profile) Factors {
	gamma := 1.0 +
		(p.VolatilityRatio-1.0)*c.cfg.GammaVolSensitivity +
		(p.Beta-1.0)*c.cfg.GammaBetaSensitivity
	theta := 1.0 +
		(p.MarketCapTier-1.0)*c.cfg.ThetaCapSensitivity +
		(p.Liquidity-1.0)*c.cfg.ThetaLiqSensitivity
	liquidity := 1.0 +
		(p.Liquidity-1.0)*c.cfg.LiqLiqSensitivity +
		(p.OptionsActivity-1.0)*c.cfg.LiqActivitySensitivity

	return Factors{
		Theta:     c.bound(theta),
		Gamma:     c.bound(gamma),
		Liquidity: c.bound(liquidity),
		Event:     1.0,
	}
}

func (c *Calculator) bound(v float64) float64 {
	if v < c.cfg.MinFactor {
		return c.cfg.MinFactor
	}
	if v > c.cfg.MaxFactor {
		return c.cfg.MaxFactor
	}
	return v
}
