package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tenorlab/tenorpick/internal/adjust"
	"github.com/tenorlab/tenorpick/internal/curves"
	"github.com/tenorlab/tenorpick/internal/explain"
	"github.com/tenorlab/tenorpick/internal/profile"
	"github.com/tenorlab/tenorpick/internal/scoring"
	"github.com/tenorlab/tenorpick/internal/telemetry"
)

// DefaultMaxCandidates bounds one optimization call. The sort is
// O(n log n); anything past a few thousand candidates is garbage input.
const DefaultMaxCandidates = 2000

// Config wires the engine's collaborators. Zero values fall back to the
// package defaults.
type Config struct {
	Curves        *curves.Scorer
	Adjuster      *adjust.Calculator
	Profiles      profile.Provider
	Metrics       *telemetry.Metrics
	MaxCandidates int
}

// Engine evaluates, ranks, and explains expiration candidates. Every call
// is a pure function of its inputs plus the read-only profile table, so an
// Engine is safe for concurrent use.
type Engine struct {
	curves        *curves.Scorer
	adjuster      *adjust.Calculator
	profiles      profile.Provider
	metrics       *telemetry.Metrics
	maxCandidates int
}

// New creates an engine, filling unset config fields with defaults.
func New(cfg Config) *Engine {
	if cfg.Curves == nil {
		cfg.Curves = curves.NewDefaultScorer()
	}
	if cfg.Adjuster == nil {
		cfg.Adjuster = adjust.NewDefaultCalculator()
	}
	if cfg.Profiles == nil {
		cfg.Profiles = profile.DefaultProvider()
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	return &Engine{
		curves:        cfg.Curves,
		adjuster:      cfg.Adjuster,
		profiles:      cfg.Profiles,
		metrics:       cfg.Metrics,
		maxCandidates: cfg.MaxCandidates,
	}
}

// NewDefault creates an engine with all defaults and no metrics.
func NewDefault() *Engine {
	return New(Config{})
}

// Options tunes one optimization call.
type Options struct {
	// Symbol enables stock-specific adjustment; empty means the neutral
	// baseline.
	Symbol string
	// Volatility is the implied/realized estimate; <= 0 uses the default.
	Volatility float64
	// Strategy picks the weight preset when Weights is nil.
	Strategy scoring.StrategyType
	// Weights overrides the strategy preset. Normalized on use.
	Weights *scoring.WeightConfig
	// DaysToEarnings is from "now" to the next announcement, if known.
	DaysToEarnings *int
	// Now anchors day-count derivation for the whole batch. Zero means
	// time.Now().UTC(), captured once per call.
	Now time.Time
	// WithProcess requests the full transparency report.
	WithProcess bool
}

// Result is the outcome of one optimization call.
type Result struct {
	Winner  scoring.ExpirationCandidate   `json:"winner"`
	Ranked  []scoring.ExpirationCandidate `json:"ranked"`
	Process *explain.OptimizationProcess  `json:"process,omitempty"`
}

// FindOptimal scores every candidate, ranks them descending by composite
// score (ties keep input order), and returns the winner. The process
// report is built only when requested.
func (e *Engine) FindOptimal(raw []RawCandidate, opts Options) (*Result, error) {
	started := time.Now()
	strategy := scoring.ParseStrategy(string(opts.Strategy))

	res, err := e.findOptimal(raw, opts, strategy)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	evaluated := 0
	if res != nil {
		evaluated = len(res.Ranked)
	}
	e.metrics.ObserveOptimization(string(strategy), outcome, time.Since(started), evaluated)
	return res, err
}

func (e *Engine) findOptimal(raw []RawCandidate, opts Options, strategy scoring.StrategyType) (*Result, error) {
	if len(raw) > e.maxCandidates {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCandidates, len(raw), e.maxCandidates)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	weights := scoring.PresetFor(strategy)
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	evaluator, err := scoring.NewEvaluator(e.curves, e.adjuster, e.profiles, weights)
	if err != nil {
		return nil, err
	}

	cands := normalizeCandidates(raw, now, e.metrics.ObserveDrop)
	if len(cands) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	vol := opts.Volatility
	if vol <= 0 {
		vol = scoring.DefaultVolatility
	}

	ranked := make([]scoring.ExpirationCandidate, 0, len(cands))
	for _, c := range cands {
		ranked = append(ranked, evaluator.Evaluate(scoring.Input{
			Symbol:         opts.Symbol,
			Date:           c.date,
			Days:           c.days,
			Type:           c.expType,
			Volatility:     vol,
			DaysToEarnings: opts.DaysToEarnings,
			Liquidity:      c.liquidity,
		}))
	}

	// Stable sort: equal composites keep their input precedence.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})

	res := &Result{Winner: ranked[0], Ranked: ranked}
	log.Debug().
		Str("symbol", opts.Symbol).
		Str("strategy", string(strategy)).
		Int("candidates", len(ranked)).
		Str("winner", res.Winner.Date).
		Float64("score", res.Winner.CompositeScore).
		Msg("Expiration optimization completed")

	if opts.WithProcess {
		res.Process = explain.Build(explain.BuildInput{
			Symbol:     opts.Symbol,
			Strategy:   strategy,
			Weights:    evaluator.Weights(),
			Curves:     e.curves.Config(),
			Volatility: vol,
			Ranked:     ranked,
			Now:        now,
		})
	}
	return res, nil
}
