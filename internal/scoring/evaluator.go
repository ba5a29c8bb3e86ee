package scoring

import (
	"fmt"
	"strings"

	"github.com/tenorlab/tenorpick/internal/adjust"
	"github.com/tenorlab/tenorpick/internal/curves"
	"github.com/tenorlab/tenorpick/internal/profile"
)

// Evaluator scores one expiration candidate at a time. It is stateless
// between calls and safe for concurrent use; the profile provider is
// read-only.
type Evaluator struct {
	curves   *curves.Scorer
	adjuster *adjust.Calculator
	profiles profile.Provider
	weights  WeightConfig
}

// NewEvaluator builds an evaluator. The weights are normalized on
// construction; a nil provider disables stock-specific adjustment.
func NewEvaluator(sc *curves.Scorer, ac *adjust.Calculator, prov profile.Provider, weights WeightConfig) (*Evaluator, error) {
	normalized, err := weights.Normalized()
	if err != nil {
		return nil, fmt.Errorf("invalid weight configuration: %w", err)
	}
	return &Evaluator{
		curves:   sc,
		adjuster: ac,
		profiles: prov,
		weights:  normalized,
	}, nil
}

// NewDefaultEvaluator builds an evaluator with default curves, default
// adjustment sensitivities, the built-in profile table, and the preset
// weights for the given strategy.
func NewDefaultEvaluator(strategy StrategyType) *Evaluator {
	ev, err := NewEvaluator(
		curves.NewDefaultScorer(),
		adjust.NewDefaultCalculator(),
		profile.DefaultProvider(),
		PresetFor(strategy),
	)
	if err != nil {
		// Presets always sum to 1.0.
		panic(err)
	}
	return ev
}

// Weights returns the normalized weight configuration in use.
func (e *Evaluator) Weights() WeightConfig {
	return e.weights
}

// Curves returns the curve scorer in use.
func (e *Evaluator) Curves() *curves.Scorer {
	return e.curves
}

// Evaluate scores a single candidate. It never fails for well-typed
// numeric and categorical inputs; date validation belongs to the caller.
func (e *Evaluator) Evaluate(in Input) ExpirationCandidate {
	vol := in.Volatility
	if vol <= 0 {
		vol = DefaultVolatility
	}
	expType := in.Type
	if expType == "" {
		expType = curves.Other
	}

	prof := profile.Resolve(e.profiles, in.Symbol)
	factors := adjust.Neutral()
	if e.adjuster != nil {
		factors = e.adjuster.Compute(prof)
	}

	theta := e.curves.ThetaEfficiency(in.Days, factors.Theta)
	gamma := e.curves.GammaRisk(in.Days, vol, factors.Gamma)
	liquidity := e.curves.Liquidity(expType, in.Days, in.Liquidity, factors.Liquidity)
	event := e.curves.EventBuffer(in.Days, in.DaysToEarnings, factors.Event)

	composite := theta*e.weights.ThetaEfficiency +
		gamma*e.weights.GammaRisk +
		liquidity*e.weights.Liquidity +
		event*e.weights.EventBuffer

	cand := ExpirationCandidate{
		Date:            in.Date,
		DaysToExpiry:    in.Days,
		ExpirationType:  expType,
		ThetaEfficiency: theta,
		GammaRisk:       gamma,
		LiquidityScore:  liquidity,
		EventBuffer:     event,
		CompositeScore:  composite,
	}
	cand.SelectionReason = e.selectionReason(cand, prof, factors)
	return cand
}

// selectionReason summarizes which sub-scores made the candidate stand
// out, with a note when a known stock profile moved the outcome.
func (e *Evaluator) selectionReason(c ExpirationCandidate, prof profile.Profile, factors adjust.Factors) string {
	var parts []string
	if c.ThetaEfficiency > NotableTheta {
		parts = append(parts, fmt.Sprintf("strong theta decay efficiency (%.0f)", c.ThetaEfficiency))
	}
	if c.GammaRisk > NotableGamma {
		parts = append(parts, fmt.Sprintf("well-controlled gamma risk (%.0f)", c.GammaRisk))
	}
	if c.LiquidityScore > NotableLiquidity {
		parts = append(parts, fmt.Sprintf("deep liquidity (%.0f)", c.LiquidityScore))
	}
	if c.EventBuffer > NotableEvent {
		parts = append(parts, fmt.Sprintf("safe earnings buffer (%.0f)", c.EventBuffer))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("composite score %.1f", c.CompositeScore))
	}
	if !prof.IsNeutral() {
		if factors.Gamma < 0.95 {
			parts = append(parts, "high-beta name, gamma tolerance reduced")
		} else if factors.Theta > 1.05 {
			parts = append(parts, "large liquid name, theta premium applied")
		}
	}
	return strings.Join(parts, "; ")
}
