package scoring

import (
	"github.com/tenorlab/tenorpick/internal/curves"
)

// ExpirationCandidate is one scored expiration date. It is immutable once
// built by the evaluator.
type ExpirationCandidate struct {
	Date            string                `json:"date"`
	DaysToExpiry    int                   `json:"days_to_expiry"`
	ExpirationType  curves.ExpirationType `json:"expiration_type"`
	ThetaEfficiency float64               `json:"theta_efficiency"`
	GammaRisk       float64               `json:"gamma_risk"`
	LiquidityScore  float64               `json:"liquidity_score"`
	EventBuffer     float64               `json:"event_buffer"`
	CompositeScore  float64               `json:"composite_score"`
	SelectionReason string                `json:"selection_reason"`
}

// Input carries everything the evaluator needs for one candidate. The
// composite score is a pure function of these fields plus the configured
// weights; identical inputs reproduce the score bit-for-bit.
type Input struct {
	Symbol         string
	Date           string
	Days           int
	Type           curves.ExpirationType
	Volatility     float64
	DaysToEarnings *int
	Liquidity      curves.LiquidityInputs
}

// DefaultVolatility is assumed when no estimate is supplied.
const DefaultVolatility = 0.3

// Notable sub-score thresholds used when synthesizing selection reasons
// and winner advantages.
const (
	NotableTheta     = 90.0
	NotableGamma     = 80.0
	NotableLiquidity = 85.0
	NotableEvent     = 90.0
)
