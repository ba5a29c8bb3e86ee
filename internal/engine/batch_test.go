package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchOptimize_PartialFailure(t *testing.T) {
	e := NewDefault()
	req := BatchRequest{
		Candidates: map[string][]RawCandidate{
			"A": dayCandidates(30, 45, 60),
			"B": {},
		},
	}

	results := e.BatchOptimize(req)
	require.Len(t, results, 2)

	require.False(t, results["A"].Failed())
	assert.NotNil(t, results["A"].Winner)
	assert.Contains(t, []int{30, 35, 45}, results["A"].Winner.DaysToExpiry)

	assert.True(t, results["B"].Failed(), "empty candidate list fails that symbol only")
	assert.Nil(t, results["B"].Winner)
	assert.NotEmpty(t, results["B"].Error)
}

func TestBatchOptimize_PerSymbolVolatility(t *testing.T) {
	e := NewDefault()
	req := BatchRequest{
		Candidates: map[string][]RawCandidate{
			"CALM": dayCandidates(45),
			"WILD": dayCandidates(45),
		},
		Volatility: map[string]float64{"WILD": 0.9},
	}

	results := e.BatchOptimize(req)
	require.False(t, results["CALM"].Failed())
	require.False(t, results["WILD"].Failed())
	assert.Less(t, results["WILD"].Winner.CompositeScore, results["CALM"].Winner.CompositeScore,
		"symbol-specific volatility must flow into the gamma score")
}

func TestBatchOptimize_SharedNowAcrossSymbols(t *testing.T) {
	e := NewDefault()
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req := BatchRequest{
		Candidates: map[string][]RawCandidate{
			"A": {{Date: "2026-10-16"}},
			"B": {{Date: "2026-10-16"}},
		},
		Now: now,
	}

	results := e.BatchOptimize(req)
	require.False(t, results["A"].Failed())
	require.False(t, results["B"].Failed())
	assert.Equal(t, results["A"].Winner.DaysToExpiry, results["B"].Winner.DaysToExpiry,
		"one captured timestamp anchors every symbol's day counts")
}
