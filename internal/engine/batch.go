package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tenorlab/tenorpick/internal/scoring"
)

// BatchRequest optimizes many underlyings in one pass.
type BatchRequest struct {
	// Candidates maps symbol -> raw expiration descriptors.
	Candidates map[string][]RawCandidate
	// Volatility maps symbol -> estimate; absent symbols use the default.
	Volatility map[string]float64
	// Strategy applies to every symbol in the batch.
	Strategy scoring.StrategyType
	// Now anchors day counts for the entire batch; zero captures once.
	Now time.Time
}

// BatchEntry is one symbol's outcome. Exactly one of Winner/Error is set.
type BatchEntry struct {
	Winner *scoring.ExpirationCandidate `json:"winner,omitempty"`
	Error  string                       `json:"error,omitempty"`
}

// Failed reports whether this symbol's optimization failed.
func (b BatchEntry) Failed() bool {
	return b.Error != ""
}

// BatchOptimize runs FindOptimal per symbol, sharing one captured "now"
// across the whole pass so day counts cannot drift mid-batch. A failing
// symbol is marked in its entry and never aborts the rest. No process
// reports are built; at batch scale they would be generated and thrown
// away.
func (e *Engine) BatchOptimize(req BatchRequest) map[string]BatchEntry {
	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	out := make(map[string]BatchEntry, len(req.Candidates))
	for symbol, raw := range req.Candidates {
		res, err := e.FindOptimal(raw, Options{
			Symbol:     symbol,
			Volatility: req.Volatility[symbol],
			Strategy:   req.Strategy,
			Now:        now,
		})
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("Batch optimization failed for symbol")
			out[symbol] = BatchEntry{Error: err.Error()}
			continue
		}
		winner := res.Winner
		out[symbol] = BatchEntry{Winner: &winner}
	}
	return out
}
