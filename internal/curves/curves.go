package curves

import (
	"math"
)

// ExpirationType categorizes an expiration date by its calendar placement.
type ExpirationType string

const (
	Weekly       ExpirationType = "weekly"
	Monthly      ExpirationType = "monthly"
	Quarterly    ExpirationType = "quarterly"
	EndOfWeek    ExpirationType = "end_of_week"
	EndOfMonth   ExpirationType = "end_of_month"
	EndOfQuarter ExpirationType = "end_of_quarter"
	Other        ExpirationType = "other"
)

// ParseExpirationType maps a raw category tag to a known ExpirationType,
// falling back to Other for anything unrecognized.
func ParseExpirationType(s string) ExpirationType {
	switch ExpirationType(s) {
	case Weekly, Monthly, Quarterly, EndOfWeek, EndOfMonth, EndOfQuarter:
		return ExpirationType(s)
	default:
		return Other
	}
}

// Knot is one breakpoint of a piecewise-linear curve.
type Knot struct {
	Days  float64 `yaml:"days"`
	Score float64 `yaml:"score"`
}

// Curve is a piecewise-linear interpolation table over days-to-expiry.
// Knots must be sorted by Days ascending; evaluation is flat beyond the
// first and last knot.
type Curve []Knot

// Eval interpolates the curve at the given day count.
func (c Curve) Eval(days float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if days <= c[0].Days {
		return c[0].Score
	}
	last := c[len(c)-1]
	if days >= last.Days {
		return last.Score
	}
	for i := 1; i < len(c); i++ {
		if days <= c[i].Days {
			lo, hi := c[i-1], c[i]
			frac := (days - lo.Days) / (hi.Days - lo.Days)
			return lo.Score + frac*(hi.Score-lo.Score)
		}
	}
	return last.Score
}

// LiquidityInputs carries optional live chain data used to refine the
// liquidity score. Nil fields mean the data was unavailable.
type LiquidityInputs struct {
	Volume       *float64
	OpenInterest *float64
}

// Config holds the tuning constants for all four scoring curves. The
// breakpoints are empirical; callers that disagree with the defaults can
// supply their own table.
type Config struct {
	// Theta is the time-decay efficiency curve. The plateau between
	// OptimalWindowStart and OptimalWindowEnd is the sweet spot.
	Theta              Curve `yaml:"theta"`
	OptimalWindowStart int   `yaml:"optimal_window_start"`
	OptimalWindowEnd   int   `yaml:"optimal_window_end"`

	// Gamma is the convexity-risk curve (higher = safer). Volatility only
	// enters beyond GammaVolFromDays.
	Gamma            Curve   `yaml:"gamma"`
	GammaVolFromDays int     `yaml:"gamma_vol_from_days"`
	GammaVolRef      float64 `yaml:"gamma_vol_ref"`
	GammaVolSlope    float64 `yaml:"gamma_vol_slope"`
	GammaDayBonus    float64 `yaml:"gamma_day_bonus"`
	GammaDayBonusCap float64 `yaml:"gamma_day_bonus_cap"`
	GammaRiskUnder   int     `yaml:"gamma_risk_under"`

	// Liquidity base scores by expiration category plus day-count penalties.
	LiquidityBase       map[ExpirationType]float64 `yaml:"liquidity_base"`
	ShortDatedUnderDays int                        `yaml:"short_dated_under_days"`
	ShortDatedPenalty   float64                    `yaml:"short_dated_penalty"`
	LongDatedOverDays   int                        `yaml:"long_dated_over_days"`
	LongDatedPenalty    float64                    `yaml:"long_dated_penalty"`
	TurnoverHighRatio   float64                    `yaml:"turnover_high_ratio"`
	TurnoverHighFactor  float64                    `yaml:"turnover_high_factor"`
	TurnoverLowRatio    float64                    `yaml:"turnover_low_ratio"`
	TurnoverLowFactor   float64                    `yaml:"turnover_low_factor"`

	// Event-buffer step scores keyed on the expiry's distance to earnings.
	EventNoData       float64 `yaml:"event_no_data"`
	EventSafeBefore   float64 `yaml:"event_safe_before"`
	EventStraddling   float64 `yaml:"event_straddling"`
	EventShortlyAfter float64 `yaml:"event_shortly_after"`
	EventWellAfter    float64 `yaml:"event_well_after"`
	EventSafeMargin   int     `yaml:"event_safe_margin"`
	EventAfterWindow  int     `yaml:"event_after_window"`
}

// DefaultConfig returns the stock curve tables.
func DefaultConfig() Config {
	return Config{
		Theta: Curve{
			{0, 10},   // ultra-short: assignment and gamma blowup territory
			{7, 30},   // still too hot
			{21, 60},  // decay picking up
			{30, 95},  // entering the sweet spot
			{35, 100}, // peak decay efficiency
			{45, 95},  // sweet spot ends
			{60, 70},
			{90, 50},
			{120, 40}, // floor
		},
		OptimalWindowStart: 30,
		OptimalWindowEnd:   45,

		Gamma: Curve{
			{0, 20},
			{7, 20},
			{14, 40},
			{21, 60},
			{30, 80},
		},
		GammaVolFromDays: 30,
		GammaVolRef:      0.30,
		GammaVolSlope:    20.0,
		GammaDayBonus:    0.5,
		GammaDayBonusCap: 10.0,
		GammaRiskUnder:   14,

		LiquidityBase: map[ExpirationType]float64{
			Monthly:      95,
			EndOfMonth:   95,
			Weekly:       85,
			EndOfWeek:    85,
			Quarterly:    75,
			EndOfQuarter: 75,
			Other:        60,
		},
		ShortDatedUnderDays: 7,
		ShortDatedPenalty:   0.7,
		LongDatedOverDays:   90,
		LongDatedPenalty:    0.8,
		TurnoverHighRatio:   1.0,
		TurnoverHighFactor:  1.1,
		TurnoverLowRatio:    0.1,
		TurnoverLowFactor:   0.8,

		EventNoData:       75,
		EventSafeBefore:   100,
		EventStraddling:   30,
		EventShortlyAfter: 70,
		EventWellAfter:    90,
		EventSafeMargin:   5,
		EventAfterWindow:  10,
	}
}

// Scorer evaluates the four curves against a single Config.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the supplied config.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// NewDefaultScorer creates a scorer with the default curve tables.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultConfig())
}

// Config returns the tuning constants in use.
func (s *Scorer) Config() Config {
	return s.cfg
}

// ThetaEfficiency scores how favorably time decay accrues at the given
// day count. adjustment scales the raw score before clamping to [0,100].
func (s *Scorer) ThetaEfficiency(days int, adjustment float64) float64 {
	return clamp(s.cfg.Theta.Eval(float64(days)) * adjustment)
}

// GammaRisk scores convexity-risk control (higher = safer). Below the
// volatility activation point only the day count matters; beyond it, high
// volatility lowers the score and extra days earn a small capped bonus.
func (s *Scorer) GammaRisk(days int, volatility, adjustment float64) float64 {
	base := s.cfg.Gamma.Eval(float64(days))
	if days > s.cfg.GammaVolFromDays {
		base += (s.cfg.GammaVolRef - volatility) * s.cfg.GammaVolSlope
		base += math.Min(float64(days-s.cfg.GammaVolFromDays)*s.cfg.GammaDayBonus, s.cfg.GammaDayBonusCap)
	}
	return clamp(base * adjustment)
}

// Liquidity scores expected fill quality from the expiration category and
// day count, refined by live turnover when volume/open interest are known.
func (s *Scorer) Liquidity(expType ExpirationType, days int, live LiquidityInputs, adjustment float64) float64 {
	base, ok := s.cfg.LiquidityBase[expType]
	if !ok {
		base = s.cfg.LiquidityBase[Other]
	}
	if days < s.cfg.ShortDatedUnderDays {
		base *= s.cfg.ShortDatedPenalty
	} else if days > s.cfg.LongDatedOverDays {
		base *= s.cfg.LongDatedPenalty
	}
	if live.Volume != nil && live.OpenInterest != nil && *live.OpenInterest > 0 {
		turnover := *live.Volume / *live.OpenInterest
		switch {
		case turnover > s.cfg.TurnoverHighRatio:
			base *= s.cfg.TurnoverHighFactor
		case turnover < s.cfg.TurnoverLowRatio:
			base *= s.cfg.TurnoverLowFactor
		}
	}
	return clamp(base * adjustment)
}

// EventBuffer scores how safely the expiry sits relative to the next
// earnings date. daysToEarnings is from "now" to the announcement; nil
// means no calendar data.
func (s *Scorer) EventBuffer(days int, daysToEarnings *int, adjustment float64) float64 {
	if daysToEarnings == nil {
		return clamp(s.cfg.EventNoData * adjustment)
	}
	gap := days - *daysToEarnings // expiry position relative to earnings
	margin := s.cfg.EventSafeMargin
	var base float64
	switch {
	case gap <= -margin:
		base = s.cfg.EventSafeBefore
	case gap <= margin:
		base = s.cfg.EventStraddling
	case gap <= s.cfg.EventAfterWindow:
		base = s.cfg.EventShortlyAfter
	default:
		base = s.cfg.EventWellAfter
	}
	return clamp(base * adjustment)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
