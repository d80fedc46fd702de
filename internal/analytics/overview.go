package analytics

import (
	"math"
	"sort"
	"time"

	"betjournal/internal/domain"
)

// Window is a half-open [Start, End) time filter. A zero bound is open on
// that side.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the trade's calendar day falls inside the window.
func (w Window) Contains(t *domain.Trade) bool {
	day := t.Day()
	if !w.Start.IsZero() && day.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !day.Before(w.End) {
		return false
	}
	return true
}

// Filter returns the trades whose day falls inside the window.
func (w Window) Filter(trades []*domain.Trade) []*domain.Trade {
	out := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if w.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Overview computes the performance summary of a time window. It takes the
// complete trade history rather than a pre-filtered slice because the
// starting bankroll of a window is the capital invested before the window
// start plus the cumulative profit of every trade strictly before it.
func Overview(trades []*domain.Trade, settings *domain.Settings, adjustments []*domain.BankrollAdjustment, win Window) domain.PerformanceOverview {
	var initialBank float64
	if settings != nil {
		initialBank = settings.InitialBank
	}

	var priorProfit float64
	for _, t := range trades {
		if !win.Start.IsZero() && t.Day().Before(win.Start) && t.Result.IsSettled() {
			priorProfit += t.ProfitLoss
		}
	}

	ov := domain.PerformanceOverview{
		StartingBank:   CapitalBefore(initialBank, adjustments, win.Start) + priorProfit,
		NetAdjustments: NetAdjustments(adjustments, win.Start, win.End),
	}

	var grossWins, grossLosses float64
	for _, t := range win.Filter(trades) {
		if t.IsOpen() {
			continue
		}
		ov.TotalTrades++
		ov.NetProfit += t.ProfitLoss
		ov.TotalStaked += t.StakeAmount
		switch t.Result {
		case domain.ResultWin:
			ov.WinningTrades++
			grossWins += t.ProfitLoss
		case domain.ResultLose:
			ov.LosingTrades++
			grossLosses += -t.ProfitLoss
		}
	}

	ov.EndingBank = ov.StartingBank + ov.NetProfit + ov.NetAdjustments

	if ov.TotalStaked > 0 {
		ov.ROI = ov.NetProfit / ov.TotalStaked * 100
	}

	closed := ov.WinningTrades + ov.LosingTrades
	if closed > 0 {
		ov.WinRate = float64(ov.WinningTrades) / float64(closed) * 100
	}
	if ov.WinningTrades > 0 {
		ov.AverageWin = grossWins / float64(ov.WinningTrades)
	}
	if ov.LosingTrades > 0 {
		ov.AverageLoss = grossLosses / float64(ov.LosingTrades)
	}

	ov.ProfitFactor = ratioOrSentinel(grossWins, grossLosses)

	if closed > 0 {
		winRate := float64(ov.WinningTrades) / float64(closed)
		ov.Expectancy = winRate*ov.AverageWin - (1-winRate)*ov.AverageLoss
	}

	return ov
}

// Risk computes drawdown, streak and volatility metrics over an
// already-filtered trade slice. startBank anchors the equity curve so the
// drawdown percentage is relative to a real bankroll peak, not to a
// cumulative-P/L peak of zero.
func Risk(trades []*domain.Trade, startBank float64) domain.RiskMetrics {
	var rm domain.RiskMetrics

	chrono := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Result.IsClosed() {
			chrono = append(chrono, t)
		}
	}
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].Day().Before(chrono[j].Day())
	})

	var (
		equity    = startBank
		peak      = startBank
		netProfit float64
		curWins   int
		curLosses int
		returns   []float64
	)

	for _, t := range chrono {
		equity += t.ProfitLoss
		netProfit += t.ProfitLoss
		if equity > peak {
			peak = equity
		}
		dd := peak - equity
		if dd > rm.MaxDrawdown {
			rm.MaxDrawdown = dd
			if peak > 0 {
				rm.MaxDrawdownPercent = dd / peak * 100
			}
		}

		if t.Result == domain.ResultWin {
			curWins++
			curLosses = 0
			if curWins > rm.MaxConsecutiveWins {
				rm.MaxConsecutiveWins = curWins
			}
		} else {
			curLosses++
			curWins = 0
			if curLosses > rm.MaxConsecutiveLosses {
				rm.MaxConsecutiveLosses = curLosses
			}
		}

		var r float64
		if t.StakeAmount != 0 {
			r = t.ProfitLoss / t.StakeAmount
		}
		returns = append(returns, r)
	}

	if sd := stdDev(returns); sd > 0 {
		rm.SharpeRatio = mean(returns) / sd
	}

	if rm.MaxDrawdown > 0 {
		rm.RecoveryFactor = netProfit / rm.MaxDrawdown
	} else if netProfit > 0 {
		rm.RecoveryFactor = domain.SentinelInfinite
	}

	return rm
}

// Behavior describes activity shape (stake sizing, odds preference, trading
// cadence) over an already-filtered trade slice.
func Behavior(trades []*domain.Trade) domain.TradingBehavior {
	var tb domain.TradingBehavior
	tb.TotalTrades = len(trades)

	var stakeSum, stakePctSum, oddsSum float64
	days := make(map[time.Time]int)
	for _, t := range trades {
		if t.IsOpen() {
			tb.OpenTrades++
		} else {
			tb.SettledTrades++
		}
		stakeSum += t.StakeAmount
		stakePctSum += t.StakePercent
		oddsSum += t.Odds
		days[t.Day()]++
	}

	if tb.TotalTrades > 0 {
		n := float64(tb.TotalTrades)
		tb.AverageStake = stakeSum / n
		tb.AverageStakePercent = stakePctSum / n
		tb.AverageOdds = oddsSum / n
	}

	tb.ActiveDays = len(days)
	for _, n := range days {
		if n > tb.BusiestDayTrades {
			tb.BusiestDayTrades = n
		}
	}
	if tb.ActiveDays > 0 {
		tb.TradesPerActiveDay = float64(tb.TotalTrades) / float64(tb.ActiveDays)
	}

	return tb
}

// ratioOrSentinel divides wins by losses with the standard sentinel policy:
// 999 for a positive numerator over zero, 0 when both sides are zero.
func ratioOrSentinel(wins, losses float64) float64 {
	if losses > 0 {
		return wins / losses
	}
	if wins > 0 {
		return domain.SentinelInfinite
	}
	return 0
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the population standard deviation.
func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return math.Sqrt(sq / float64(len(xs)))
}
