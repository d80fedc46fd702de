// Package analytics implements the deterministic core of the journal: the
// chronological recalculation pass that derives per-trade fields from the
// full trade history, and the aggregation functions that turn a trade set
// into performance, risk and segmentation reports.
//
// Every function in this package is pure: inputs are never mutated and no
// I/O happens here. Callers re-run the whole derivation after any mutation;
// there is no incremental path, because thresholds and running totals depend
// on the complete chronological history up to the affected date.
package analytics

import (
	"sort"
	"time"

	"betjournal/internal/domain"
	"betjournal/internal/numutil"
)

// Recalculate derives the per-trade fields (normalized points, running daily
// P/L, take-profit/stop-loss label) for the complete trade history and
// returns a fresh slice sorted by date descending for display.
//
// The computation walks trades in ascending date order because every derived
// value depends only on trades at or before the same date: the bankroll
// entering a day equals the bankroll after all settled trades of the
// previous days were applied, accumulated strictly sequentially. Points
// normalize against the fixed initial bankroll, not the compounding daily
// bankroll, so they stay comparable across days.
//
// Total over well-formed input: an empty list yields an empty list, an
// unparsable (zero) date simply sorts earliest, and a missing or
// non-positive initial bankroll disables points and thresholds instead of
// dividing by zero.
func Recalculate(trades []*domain.Trade, settings *domain.Settings) []*domain.Trade {
	out := make([]*domain.Trade, len(trades))
	for i, t := range trades {
		cp := *t
		out[i] = &cp
	}
	if len(out) == 0 {
		return out
	}

	var initialBank float64
	var dailyTP, dailySL float64
	if settings != nil {
		initialBank = settings.InitialBank
		dailyTP = settings.DailyTP
		dailySL = settings.DailySL
	}

	// Ascending, stable: ties keep their original relative order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day().Before(out[j].Day())
	})

	var (
		runningBank = initialBank
		sodBank     = initialBank // bankroll entering the current day
		dayPL       float64       // settled P/L accumulated within the current day
		curDay      time.Time
		haveDay     bool
	)

	for _, t := range out {
		day := t.Day()
		if !haveDay || !day.Equal(curDay) {
			runningBank += dayPL
			sodBank = runningBank
			dayPL = 0
			curDay = day
			haveDay = true
		}

		if t.IsOpen() {
			// Open trades are placeholders, not data points.
			t.ProfitLoss = 0
			t.ROI = 0
			t.Points = 0
			t.DailyPL = 0
			t.TpSl = domain.LabelNone
			continue
		}

		t.ROI = numutil.ReturnOnInvestment(t.ProfitLoss, t.StakeAmount)

		if initialBank > 0 {
			t.Points = t.ProfitLoss / initialBank * 100
		} else {
			t.Points = 0
		}

		dayPL += t.ProfitLoss
		t.DailyPL = dayPL

		// Target-profit is checked first; at most one label applies.
		t.TpSl = domain.LabelNone
		if sodBank > 0 {
			if dailyTP > 0 && dayPL >= sodBank*dailyTP/100 {
				t.TpSl = domain.LabelTargetProfit
			} else if dailySL < 0 && dayPL <= sodBank*dailySL/100 {
				t.TpSl = domain.LabelStopLoss
			}
		}
	}

	// The ascending pass is an internal computation order; display order is
	// newest first. Stable, so intra-day order is preserved.
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Day().Before(out[i].Day())
	})
	return out
}
