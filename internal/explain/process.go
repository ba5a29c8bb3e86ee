package explain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tenorlab/tenorpick/internal/curves"
	"github.com/tenorlab/tenorpick/internal/scoring"
)

// OptimizationProcess is the full audit trail of one optimization call:
// why each candidate scored as it did, why the winner won, and why the
// rest lost. It is a pure projection of the ranked candidate list plus the
// configuration used, generated once and never mutated.
type OptimizationProcess struct {
	ID          string             `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Symbol      string             `json:"symbol,omitempty"`
	Strategy    string             `json:"strategy"`
	Screening   ScreeningCriteria  `json:"screening_criteria"`
	Candidates  []CandidateRow     `json:"candidates"`
	Rejections  []Rejection        `json:"rejections"`
	Advantages  []string           `json:"winner_advantages"`
	Methodology string             `json:"methodology"`
}

// ScreeningCriteria snapshots the configuration the scores were built
// from: the normalized weights and the named curve thresholds.
type ScreeningCriteria struct {
	Weights            map[string]float64 `json:"weights"`
	OptimalThetaWindow [2]int             `json:"optimal_theta_window"`
	GammaRiskUnderDays int                `json:"gamma_risk_under_days"`
	EfficiencyCeiling  float64            `json:"efficiency_ceiling"`
	Volatility         float64            `json:"volatility"`
}

// CandidateRow is one line of the all-candidate table, in rank order.
type CandidateRow struct {
	Rank            int     `json:"rank"`
	Date            string  `json:"date"`
	DaysToExpiry    int     `json:"days_to_expiry"`
	ExpirationType  string  `json:"expiration_type"`
	ThetaEfficiency float64 `json:"theta_efficiency"`
	GammaRisk       float64 `json:"gamma_risk"`
	LiquidityScore  float64 `json:"liquidity_score"`
	EventBuffer     float64 `json:"event_buffer"`
	CompositeScore  float64 `json:"composite_score"`
	IsWinner        bool    `json:"is_winner"`
}

// Rejection explains why one losing candidate ranked below the winner.
type Rejection struct {
	Rank   int    `json:"rank"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// maxRejections caps the rejection analysis to the strongest losers.
const maxRejections = 5

// Gaps considered material when comparing a loser to the winner.
const (
	compositeGap = 5.0
	thetaGap     = 10.0
	liquidityGap = 10.0
)

// BuildInput carries everything needed to assemble a process report.
type BuildInput struct {
	Symbol     string
	Strategy   scoring.StrategyType
	Weights    scoring.WeightConfig
	Curves     curves.Config
	Volatility float64
	Ranked     []scoring.ExpirationCandidate
	Now        time.Time
}

// Build assembles the transparency report from an already-ranked candidate
// list. Ranked[0] is the winner.
func Build(in BuildInput) *OptimizationProcess {
	proc := &OptimizationProcess{
		ID:          uuid.NewString(),
		GeneratedAt: in.Now,
		Symbol:      in.Symbol,
		Strategy:    string(in.Strategy),
		Screening: ScreeningCriteria{
			Weights:            in.Weights.Map(),
			OptimalThetaWindow: [2]int{in.Curves.OptimalWindowStart, in.Curves.OptimalWindowEnd},
			GammaRiskUnderDays: in.Curves.GammaRiskUnder,
			EfficiencyCeiling:  100,
			Volatility:         in.Volatility,
		},
		Methodology: Methodology(in.Strategy, in.Weights),
	}
	if len(in.Ranked) == 0 {
		return proc
	}

	winner := in.Ranked[0]
	proc.Candidates = make([]CandidateRow, len(in.Ranked))
	for i, c := range in.Ranked {
		proc.Candidates[i] = CandidateRow{
			Rank:            i + 1,
			Date:            c.Date,
			DaysToExpiry:    c.DaysToExpiry,
			ExpirationType:  string(c.ExpirationType),
			ThetaEfficiency: c.ThetaEfficiency,
			GammaRisk:       c.GammaRisk,
			LiquidityScore:  c.LiquidityScore,
			EventBuffer:     c.EventBuffer,
			CompositeScore:  c.CompositeScore,
			IsWinner:        i == 0,
		}
	}

	for i := 1; i < len(in.Ranked) && i <= maxRejections; i++ {
		proc.Rejections = append(proc.Rejections, Rejection{
			Rank:   i + 1,
			Date:   in.Ranked[i].Date,
			Reason: rejectionReason(in.Ranked[i], winner, in.Curves),
		})
	}

	proc.Advantages = advantages(winner, in.Curves)
	return proc
}

// rejectionReason compares a loser to the winner and names the material
// gaps, defaulting to a marginal-loss message when none stand out.
func rejectionReason(loser, winner scoring.ExpirationCandidate, cfg curves.Config) string {
	var reasons []string
	if d := winner.CompositeScore - loser.CompositeScore; d >= compositeGap {
		reasons = append(reasons, fmt.Sprintf("composite score %.1f points below the winner", d))
	}
	if d := winner.ThetaEfficiency - loser.ThetaEfficiency; d >= thetaGap {
		reasons = append(reasons, fmt.Sprintf("theta efficiency %.0f points weaker", d))
	}
	if d := winner.LiquidityScore - loser.LiquidityScore; d >= liquidityGap {
		reasons = append(reasons, fmt.Sprintf("liquidity %.0f points thinner", d))
	}
	if loser.DaysToExpiry < cfg.OptimalWindowStart || loser.DaysToExpiry > cfg.OptimalWindowEnd {
		reasons = append(reasons, fmt.Sprintf("%dd sits outside the %d-%dd theta sweet spot",
			loser.DaysToExpiry, cfg.OptimalWindowStart, cfg.OptimalWindowEnd))
	}
	if loser.DaysToExpiry < cfg.GammaRiskUnder {
		reasons = append(reasons, fmt.Sprintf("%dd is inside the high gamma-risk window (<%dd)",
			loser.DaysToExpiry, cfg.GammaRiskUnder))
	}
	if len(reasons) == 0 {
		return "marginally lower composite score"
	}
	return strings.Join(reasons, "; ")
}

// advantages lists the winner's standout qualities as positive statements.
func advantages(winner scoring.ExpirationCandidate, cfg curves.Config) []string {
	var out []string
	if winner.ThetaEfficiency > scoring.NotableTheta {
		out = append(out, fmt.Sprintf("Theta efficiency %.0f/100: time decay accrues near its fastest useful rate", winner.ThetaEfficiency))
	}
	if winner.GammaRisk > scoring.NotableGamma {
		out = append(out, fmt.Sprintf("Gamma risk score %.0f/100: far enough out to avoid violent delta swings", winner.GammaRisk))
	}
	if winner.LiquidityScore > scoring.NotableLiquidity {
		out = append(out, fmt.Sprintf("Liquidity %.0f/100: tight markets expected for entry and exit", winner.LiquidityScore))
	}
	if winner.DaysToExpiry >= cfg.OptimalWindowStart && winner.DaysToExpiry <= cfg.OptimalWindowEnd {
		out = append(out, fmt.Sprintf("%d days to expiry sits inside the %d-%dd optimal window",
			winner.DaysToExpiry, cfg.OptimalWindowStart, cfg.OptimalWindowEnd))
	}
	return out
}

// Methodology renders a plain-language restatement of each curve's
// rationale and the weight breakdown actually used. Callers embed it in
// higher-level reports as-is.
func Methodology(strategy scoring.StrategyType, weights scoring.WeightConfig) string {
	var b strings.Builder
	b.WriteString("Expiration scoring methodology:\n")
	fmt.Fprintf(&b, "- Theta efficiency (%.0f%%): rewards the 30-45 day window where time decay is fastest relative to the gamma taken on.\n",
		weights.ThetaEfficiency*100)
	fmt.Fprintf(&b, "- Gamma risk control (%.0f%%): penalizes short-dated expiries where delta becomes unstable; high volatility lowers the score further out.\n",
		weights.GammaRisk*100)
	fmt.Fprintf(&b, "- Liquidity (%.0f%%): monthly and end-of-month cycles carry the deepest books; very short or very long tenors trade thinner.\n",
		weights.Liquidity*100)
	fmt.Fprintf(&b, "- Event buffer (%.0f%%): expiries clear of the next earnings date avoid binary event risk.\n",
		weights.EventBuffer*100)
	b.WriteString(scoring.Describe(strategy))
	return b.String()
}
