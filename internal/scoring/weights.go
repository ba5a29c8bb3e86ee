package scoring

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// StrategyType names an options strategy with its own weight preset.
type StrategyType string

const (
	StrategyCashSecuredPut StrategyType = "csp"
	StrategyCoveredCall    StrategyType = "covered_call"
	StrategyCreditSpread   StrategyType = "credit_spread"
)

// ParseStrategy maps a raw strategy tag to a known StrategyType, falling
// back to cash-secured put.
func ParseStrategy(s string) StrategyType {
	switch StrategyType(s) {
	case StrategyCashSecuredPut, StrategyCoveredCall, StrategyCreditSpread:
		return StrategyType(s)
	default:
		return StrategyCashSecuredPut
	}
}

// WeightConfig distributes the composite score across the four sub-scores.
type WeightConfig struct {
	ThetaEfficiency float64 `yaml:"theta_efficiency" json:"theta_efficiency"`
	GammaRisk       float64 `yaml:"gamma_risk" json:"gamma_risk"`
	Liquidity       float64 `yaml:"liquidity" json:"liquidity"`
	EventBuffer     float64 `yaml:"event_buffer" json:"event_buffer"`
}

// Sum returns the raw weight total.
func (w WeightConfig) Sum() float64 {
	return w.ThetaEfficiency + w.GammaRisk + w.Liquidity + w.EventBuffer
}

// Map returns the weights keyed by their canonical names.
func (w WeightConfig) Map() map[string]float64 {
	return map[string]float64{
		"theta_efficiency": w.ThetaEfficiency,
		"gamma_risk":       w.GammaRisk,
		"liquidity":        w.Liquidity,
		"event_buffer":     w.EventBuffer,
	}
}

// normalizeTolerance is the sum deviation below which weights are accepted
// as-is; warnTolerance is the deviation above which the rescale is logged.
const (
	normalizeTolerance = 1e-9
	warnTolerance      = 0.01
)

// Normalized rescales the weights to sum to exactly 1.0 so composite scores
// stay comparable across runs with different raw inputs. A zero or negative
// sum is invalid.
func (w WeightConfig) Normalized() (WeightConfig, error) {
	sum := w.Sum()
	if sum <= 0 || math.IsNaN(sum) {
		return WeightConfig{}, fmt.Errorf("weight sum must be positive, got %.4f", sum)
	}
	if math.Abs(sum-1.0) <= normalizeTolerance {
		return w, nil
	}
	if math.Abs(sum-1.0) > warnTolerance {
		log.Warn().Float64("sum", sum).Msg("Weight sum deviates from 1.0, renormalizing")
	}
	return WeightConfig{
		ThetaEfficiency: w.ThetaEfficiency / sum,
		GammaRisk:       w.GammaRisk / sum,
		Liquidity:       w.Liquidity / sum,
		EventBuffer:     w.EventBuffer / sum,
	}, nil
}

// PresetFor returns the default weight configuration for a strategy.
// Cash-secured puts weigh theta harvest and fill quality; covered calls
// weigh gamma-risk control more heavily.
func PresetFor(strategy StrategyType) WeightConfig {
	switch strategy {
	case StrategyCoveredCall:
		return WeightConfig{ThetaEfficiency: 0.30, GammaRisk: 0.35, Liquidity: 0.20, EventBuffer: 0.15}
	case StrategyCreditSpread:
		return WeightConfig{ThetaEfficiency: 0.30, GammaRisk: 0.30, Liquidity: 0.25, EventBuffer: 0.15}
	default:
		return WeightConfig{ThetaEfficiency: 0.35, GammaRisk: 0.25, Liquidity: 0.25, EventBuffer: 0.15}
	}
}

// Describe returns a one-line summary of a strategy's weighting rationale.
func Describe(strategy StrategyType) string {
	switch strategy {
	case StrategyCoveredCall:
		return "Covered call: gamma-risk control weighted up to protect the share position near expiry"
	case StrategyCreditSpread:
		return "Credit spread: balanced theta and gamma weighting with a liquidity tilt for two-leg fills"
	default:
		return "Cash-secured put: theta harvest and fill quality weighted up for premium selling"
	}
}
