package analytics

import (
	"time"

	"betjournal/internal/domain"
)

// CompareMonths recomputes the performance overview for the calendar month
// containing ref and for the month before it, and reports absolute and
// percentage deltas. A percentage delta is 0 whenever the previous month's
// value is exactly 0, a guarded division rather than a true percentage.
func CompareMonths(trades []*domain.Trade, settings *domain.Settings, adjustments []*domain.BankrollAdjustment, ref time.Time) domain.MonthlyComparison {
	curStart := firstOfMonth(ref)
	nextStart := curStart.AddDate(0, 1, 0)
	prevStart := curStart.AddDate(0, -1, 0)

	cur := Overview(trades, settings, adjustments, Window{Start: curStart, End: nextStart})
	prev := Overview(trades, settings, adjustments, Window{Start: prevStart, End: curStart})

	mc := domain.MonthlyComparison{
		CurrentMonth:  curStart.Format("2006-01"),
		PreviousMonth: prevStart.Format("2006-01"),
		Current:       cur,
		Previous:      prev,
	}

	mc.ROIDelta = cur.ROI - prev.ROI
	mc.ROIDeltaPercent = deltaPercent(cur.ROI, prev.ROI)
	mc.WinRateDelta = cur.WinRate - prev.WinRate
	mc.WinRateDeltaPercent = deltaPercent(cur.WinRate, prev.WinRate)
	mc.ProfitFactorDelta = cur.ProfitFactor - prev.ProfitFactor
	mc.ProfitFactorDeltaPct = deltaPercent(cur.ProfitFactor, prev.ProfitFactor)

	curAvg := avgProfitPerTrade(cur)
	prevAvg := avgProfitPerTrade(prev)
	mc.AvgProfitPerTradeDelta = curAvg - prevAvg
	mc.AvgProfitPerTradeDltPct = deltaPercent(curAvg, prevAvg)

	return mc
}

func avgProfitPerTrade(ov domain.PerformanceOverview) float64 {
	if ov.TotalTrades == 0 {
		return 0
	}
	return ov.NetProfit / float64(ov.TotalTrades)
}

func deltaPercent(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// firstOfMonth truncates a time to midnight UTC on the first of its month.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
