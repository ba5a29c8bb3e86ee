package curves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurve_Eval(t *testing.T) {
	c := Curve{{0, 10}, {10, 50}, {20, 30}}

	assert.Equal(t, 10.0, c.Eval(-5), "below first knot is flat")
	assert.Equal(t, 10.0, c.Eval(0))
	assert.Equal(t, 30.0, c.Eval(5), "midpoint interpolates")
	assert.Equal(t, 50.0, c.Eval(10), "exact knot")
	assert.Equal(t, 40.0, c.Eval(15), "descending segment interpolates")
	assert.Equal(t, 30.0, c.Eval(100), "beyond last knot is flat")
	assert.Equal(t, 0.0, Curve{}.Eval(10), "empty curve")
}

func TestThetaEfficiency_OptimalWindow(t *testing.T) {
	s := NewDefaultScorer()
	cfg := s.Config()

	for days := 0; days <= 120; days++ {
		score := s.ThetaEfficiency(days, 1.0)
		if days >= cfg.OptimalWindowStart && days <= cfg.OptimalWindowEnd {
			assert.GreaterOrEqual(t, score, 95.0, "days=%d should be in the sweet spot", days)
		} else {
			assert.Less(t, score, 95.0, "days=%d should be below the sweet spot", days)
		}
	}
}

func TestThetaEfficiency_Floor(t *testing.T) {
	s := NewDefaultScorer()
	assert.Equal(t, 40.0, s.ThetaEfficiency(120, 1.0))
	assert.Equal(t, 40.0, s.ThetaEfficiency(300, 1.0))
}

func TestThetaEfficiency_AdjustmentClamped(t *testing.T) {
	s := NewDefaultScorer()
	assert.Equal(t, 100.0, s.ThetaEfficiency(35, 1.3), "adjusted score clamps at 100")
	assert.Equal(t, 0.0, s.ThetaEfficiency(35, 0.0))
}

func TestGammaRisk_ShortDatedIsWorst(t *testing.T) {
	s := NewDefaultScorer()
	for days := 0; days < 7; days++ {
		for _, vol := range []float64{0.05, 0.3, 0.6, 1.5} {
			assert.LessOrEqual(t, s.GammaRisk(days, vol, 1.0), 30.0,
				"days=%d vol=%.2f", days, vol)
		}
	}
}

func TestGammaRisk_Breakpoints(t *testing.T) {
	s := NewDefaultScorer()
	assert.Equal(t, 20.0, s.GammaRisk(7, 0.3, 1.0))
	assert.Equal(t, 40.0, s.GammaRisk(14, 0.3, 1.0))
	assert.Equal(t, 60.0, s.GammaRisk(21, 0.3, 1.0))
	assert.Equal(t, 80.0, s.GammaRisk(30, 0.3, 1.0))
}

func TestGammaRisk_VolatilityPenalty(t *testing.T) {
	s := NewDefaultScorer()
	calm := s.GammaRisk(45, 0.2, 1.0)
	wild := s.GammaRisk(45, 0.8, 1.0)
	assert.Greater(t, calm, wild, "high volatility must lower the gamma score past 30d")

	// Reference vol is score-neutral: base 80 plus day bonus only.
	assert.InDelta(t, 87.5, s.GammaRisk(45, 0.3, 1.0), 1e-9)
}

func TestGammaRisk_DayBonusCapped(t *testing.T) {
	s := NewDefaultScorer()
	assert.InDelta(t, 90.0, s.GammaRisk(50, 0.3, 1.0), 1e-9)
	assert.InDelta(t, 90.0, s.GammaRisk(120, 0.3, 1.0), 1e-9, "bonus caps at 10 points")
	assert.LessOrEqual(t, s.GammaRisk(120, 0.0, 1.3), 100.0)
}

func TestLiquidity_CategoryOrdering(t *testing.T) {
	s := NewDefaultScorer()
	none := LiquidityInputs{}
	monthly := s.Liquidity(Monthly, 30, none, 1.0)
	weekly := s.Liquidity(Weekly, 30, none, 1.0)
	quarterly := s.Liquidity(Quarterly, 30, none, 1.0)
	other := s.Liquidity(Other, 30, none, 1.0)

	assert.Equal(t, 95.0, monthly)
	assert.Equal(t, 85.0, weekly)
	assert.Equal(t, 75.0, quarterly)
	assert.Equal(t, 60.0, other)
	assert.Equal(t, monthly, s.Liquidity(EndOfMonth, 30, none, 1.0))
}

func TestLiquidity_DayCountPenalties(t *testing.T) {
	s := NewDefaultScorer()
	none := LiquidityInputs{}
	assert.InDelta(t, 95.0*0.7, s.Liquidity(Monthly, 5, none, 1.0), 1e-9, "short-dated penalty")
	assert.InDelta(t, 95.0*0.8, s.Liquidity(Monthly, 120, none, 1.0), 1e-9, "long-dated penalty")
}

func TestLiquidity_TurnoverRefinement(t *testing.T) {
	s := NewDefaultScorer()
	vol := func(v float64) *float64 { return &v }

	active := s.Liquidity(Other, 30, LiquidityInputs{Volume: vol(5000), OpenInterest: vol(2000)}, 1.0)
	assert.InDelta(t, 66.0, active, 1e-9, "turnover > 1.0 boosts 10%")

	stale := s.Liquidity(Other, 30, LiquidityInputs{Volume: vol(50), OpenInterest: vol(2000)}, 1.0)
	assert.InDelta(t, 48.0, stale, 1e-9, "turnover < 0.1 cuts 20%")

	zeroOI := s.Liquidity(Other, 30, LiquidityInputs{Volume: vol(50), OpenInterest: vol(0)}, 1.0)
	assert.Equal(t, 60.0, zeroOI, "zero open interest skips the refinement")
}

func TestEventBuffer(t *testing.T) {
	s := NewDefaultScorer()
	earnings := func(d int) *int { return &d }

	tests := []struct {
		name     string
		days     int
		earnings *int
		want     float64
	}{
		{"no calendar data", 30, nil, 75},
		{"expiry well before earnings", 20, earnings(30), 100},
		{"expiry exactly five days before", 25, earnings(30), 100},
		{"expiry on earnings day", 30, earnings(30), 30},
		{"expiry just after earnings", 33, earnings(30), 30},
		{"expiry shortly after earnings", 38, earnings(30), 70},
		{"expiry well past earnings", 45, earnings(30), 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.EventBuffer(tt.days, tt.earnings, 1.0))
		})
	}
}

func TestParseExpirationType(t *testing.T) {
	require.Equal(t, Monthly, ParseExpirationType("monthly"))
	require.Equal(t, EndOfQuarter, ParseExpirationType("end_of_quarter"))
	require.Equal(t, Other, ParseExpirationType("lunar"))
	require.Equal(t, Other, ParseExpirationType(""))
}
