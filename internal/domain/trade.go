package domain

import (
	"strings"
	"time"
)

// Trade represents one logged sports-trading position.
//
// Points, DailyPL and TpSl are derived fields: they are owned by the
// recalculation engine and are always rewritten together as a triple. For an
// OPEN trade the derived fields are neutral and ProfitLoss/ROI are zero;
// open trades never contribute to aggregates.
type Trade struct {
	ID           string    // ULID, lexicographically time-sortable
	Date         time.Time // Calendar date of the event (date-only)
	CreatedAt    time.Time // Timestamp the entry was logged (zero if unknown)
	Competition  string    // Free text, e.g. "Premier League"
	HomeTeam     string
	AwayTeam     string
	Strategy     string  // Grouping tag; empty normalizes to StrategyNA
	Odds         float64 // Decimal odds, >= 1
	StakePercent float64 // Stake as percent of bankroll
	StakeAmount  float64 // Stake in currency
	Result       Result
	ProfitLoss   float64 // Currency, signed; 0 while OPEN
	ROI          float64 // Percent relative to own stake; 0 while OPEN

	// Derived by the recalculation engine.
	Points  float64   // ProfitLoss normalized against the initial bankroll
	DailyPL float64   // Running intra-day P/L up to and including this trade
	TpSl    TpSlLabel // Daily threshold label, if any
}

// IsOpen reports whether the trade has not been settled yet.
func (t *Trade) IsOpen() bool {
	return t.Result == ResultOpen
}

// Day returns the trade date truncated to midnight UTC, the grouping key for
// all per-day computations.
func (t *Trade) Day() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// StrategyKey returns the normalized strategy grouping key.
func (t *Trade) StrategyKey() string {
	key := strings.TrimSpace(t.Strategy)
	if key == "" {
		return StrategyNA
	}
	return key
}
