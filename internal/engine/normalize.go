package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tenorlab/tenorpick/internal/curves"
)

// RawCandidate is an expiration descriptor as supplied by a data client:
// either a bare date string, or a date plus day count and category tag.
type RawCandidate struct {
	Date string `yaml:"date" json:"date"`
	// Days overrides the derived day count when >= 0.
	Days int `yaml:"days" json:"days"`
	// HasDays marks Days as explicitly supplied (zero is a valid count).
	HasDays bool   `yaml:"has_days" json:"has_days"`
	Type    string `yaml:"type" json:"type"`

	Volume       *float64 `yaml:"volume" json:"volume,omitempty"`
	OpenInterest *float64 `yaml:"open_interest" json:"open_interest,omitempty"`
}

// DateLayout is the accepted expiration date format.
const DateLayout = "2006-01-02"

// normalized is a candidate after date parsing and classification.
type normalized struct {
	date      string
	days      int
	expType   curves.ExpirationType
	liquidity curves.LiquidityInputs
}

// normalizeCandidates derives day counts and expiration types for a batch
// against a single captured "now". Candidates with unparseable or expired
// dates are dropped with a logged warning; the caller decides whether the
// surviving set is big enough.
func normalizeCandidates(raw []RawCandidate, now time.Time, onDrop func(reason string)) []normalized {
	out := make([]normalized, 0, len(raw))
	for _, rc := range raw {
		n, reason := normalizeCandidate(rc, now)
		if reason != "" {
			log.Warn().Str("date", rc.Date).Str("reason", reason).Msg("Dropping expiration candidate")
			if onDrop != nil {
				onDrop(reason)
			}
			continue
		}
		out = append(out, n)
	}
	return out
}

func normalizeCandidate(rc RawCandidate, now time.Time) (normalized, string) {
	n := normalized{
		date: rc.Date,
		liquidity: curves.LiquidityInputs{
			Volume:       rc.Volume,
			OpenInterest: rc.OpenInterest,
		},
	}

	var expiry time.Time
	if rc.Date != "" {
		var err error
		expiry, err = time.Parse(DateLayout, rc.Date)
		if err != nil {
			return normalized{}, "invalid_date"
		}
	}

	switch {
	case rc.HasDays:
		if rc.Days < 0 {
			return normalized{}, "negative_days"
		}
		n.days = rc.Days
	case !expiry.IsZero():
		n.days = daysUntil(now, expiry)
		if n.days < 0 {
			return normalized{}, "expired"
		}
	default:
		return normalized{}, "missing_date"
	}

	if rc.Type != "" {
		n.expType = curves.ParseExpirationType(rc.Type)
	} else if !expiry.IsZero() {
		n.expType = ClassifyExpiration(expiry)
	} else {
		n.expType = curves.Other
	}
	return n, ""
}

// daysUntil counts calendar days from now to the expiry date, rounding
// partial days up so a same-week expiry is never understated.
func daysUntil(now, expiry time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expDay := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(expDay.Sub(nowDay).Hours() / 24.0))
}

// ClassifyExpiration guesses the expiration category from the calendar
// date alone: quarter-end months near month-end rank as quarterly,
// any date near month-end as monthly, Fridays as weekly, the rest other.
func ClassifyExpiration(date time.Time) curves.ExpirationType {
	nearMonthEnd := date.Day() >= daysInMonth(date)-6
	if nearMonthEnd {
		switch date.Month() {
		case time.March, time.June, time.September, time.December:
			return curves.Quarterly
		default:
			return curves.Monthly
		}
	}
	if date.Weekday() == time.Friday {
		return curves.Weekly
	}
	return curves.Other
}

func daysInMonth(date time.Time) int {
	firstOfNext := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
