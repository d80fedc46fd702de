package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"betjournal/internal/domain"
)

func adjustment(date time.Time, kind domain.AdjustmentKind, amount float64) *domain.BankrollAdjustment {
	return &domain.BankrollAdjustment{ID: "adj", Date: date, Kind: kind, Amount: amount}
}

func TestWindow_Contains(t *testing.T) {
	win := Window{Start: day(2026, 8, 1), End: day(2026, 9, 1)}

	assert.True(t, win.Contains(trade(day(2026, 8, 1), domain.ResultWin, 10, 10)))
	assert.True(t, win.Contains(trade(day(2026, 8, 31), domain.ResultWin, 10, 10)))
	assert.False(t, win.Contains(trade(day(2026, 9, 1), domain.ResultWin, 10, 10)), "end is exclusive")
	assert.False(t, win.Contains(trade(day(2026, 7, 31), domain.ResultWin, 10, 10)))

	open := Window{}
	assert.True(t, open.Contains(trade(day(1999, 1, 1), domain.ResultWin, 10, 10)))
}

func TestOverview_Totals(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2026, 8, 10), domain.ResultWin, 100, 50),
		trade(day(2026, 8, 11), domain.ResultLose, 100, -30),
		trade(day(2026, 8, 12), domain.ResultVoid, 50, 0),
		trade(day(2026, 8, 13), domain.ResultOpen, 100, 0),
	}

	ov := Overview(trades, settingsWith(1000, 0, 0), nil, Window{})

	assert.Equal(t, 1000.0, ov.StartingBank)
	assert.Equal(t, 3, ov.TotalTrades, "OPEN trades excluded")
	assert.Equal(t, 1, ov.WinningTrades)
	assert.Equal(t, 1, ov.LosingTrades)
	assert.Equal(t, 20.0, ov.NetProfit)
	assert.Equal(t, 250.0, ov.TotalStaked)
	assert.Equal(t, 1020.0, ov.EndingBank)
	assert.InDelta(t, 8.0, ov.ROI, 1e-9)
	assert.Equal(t, 50.0, ov.WinRate, "VOID excluded from the rate")
	assert.Equal(t, 50.0, ov.AverageWin)
	assert.Equal(t, 30.0, ov.AverageLoss)
	assert.InDelta(t, 50.0/30.0, ov.ProfitFactor, 1e-9)
	assert.InDelta(t, 10.0, ov.Expectancy, 1e-9)
}

func TestOverview_ProfitFactorSentinels(t *testing.T) {
	winsOnly := []*domain.Trade{trade(day(2026, 8, 10), domain.ResultWin, 100, 50)}
	ov := Overview(winsOnly, settingsWith(1000, 0, 0), nil, Window{})
	assert.Equal(t, domain.SentinelInfinite, ov.ProfitFactor)

	empty := Overview(nil, settingsWith(1000, 0, 0), nil, Window{})
	assert.Zero(t, empty.ProfitFactor)
	assert.Zero(t, empty.WinRate)
	assert.Zero(t, empty.ROI)
}

func TestOverview_WindowStartingBankCarriesPriorProfit(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2026, 1, 10), domain.ResultWin, 100, 100), // before the window
		trade(day(2026, 2, 10), domain.ResultWin, 100, 40),  // inside
	}
	adjustments := []*domain.BankrollAdjustment{
		adjustment(day(2026, 1, 15), domain.AdjustmentDeposit, 200),   // before
		adjustment(day(2026, 2, 12), domain.AdjustmentDeposit, 50),    // inside
		adjustment(day(2026, 2, 20), domain.AdjustmentWithdrawal, 10), // inside
	}
	win := Window{Start: day(2026, 2, 1), End: day(2026, 3, 1)}

	ov := Overview(trades, settingsWith(1000, 0, 0), adjustments, win)

	assert.Equal(t, 1300.0, ov.StartingBank, "initial + prior deposit + prior profit")
	assert.Equal(t, 1, ov.TotalTrades)
	assert.Equal(t, 40.0, ov.NetProfit)
	assert.Equal(t, 40.0, ov.NetAdjustments)
	assert.Equal(t, 1380.0, ov.EndingBank)
}

func TestOverview_OpenStartWindowCountsAdjustmentsOnce(t *testing.T) {
	// With no window start there is no "before": the whole ledger belongs
	// to the window's net adjustments and must not also inflate the
	// starting bank.
	trades := []*domain.Trade{
		trade(day(2026, 8, 10), domain.ResultWin, 100, 40),
	}
	adjustments := []*domain.BankrollAdjustment{
		adjustment(day(2026, 8, 5), domain.AdjustmentDeposit, 500),
	}

	ov := Overview(trades, settingsWith(1000, 0, 0), adjustments, Window{})

	assert.Equal(t, 1000.0, ov.StartingBank)
	assert.Equal(t, 500.0, ov.NetAdjustments)
	assert.Equal(t, 40.0, ov.NetProfit)
	assert.Equal(t, 1540.0, ov.EndingBank)
}

func TestCapitalBefore(t *testing.T) {
	adjustments := []*domain.BankrollAdjustment{
		adjustment(day(2026, 1, 10), domain.AdjustmentDeposit, 500),
		adjustment(day(2026, 2, 10), domain.AdjustmentWithdrawal, 100),
	}

	assert.Equal(t, 1000.0, CapitalBefore(1000, adjustments, time.Time{}), "nothing precedes a zero cutoff")
	assert.Equal(t, 1500.0, CapitalBefore(1000, adjustments, day(2026, 2, 1)))
	assert.Equal(t, 1000.0, CapitalBefore(1000, adjustments, day(2026, 1, 10)), "cutoff is exclusive")
}

func TestNetAdjustments(t *testing.T) {
	adjustments := []*domain.BankrollAdjustment{
		adjustment(day(2026, 1, 10), domain.AdjustmentDeposit, 500),
		adjustment(day(2026, 2, 10), domain.AdjustmentWithdrawal, 100),
	}

	assert.Equal(t, 400.0, NetAdjustments(adjustments, time.Time{}, time.Time{}))
	assert.Equal(t, -100.0, NetAdjustments(adjustments, day(2026, 2, 1), day(2026, 3, 1)))
	assert.Equal(t, 500.0, NetAdjustments(adjustments, day(2026, 1, 1), day(2026, 2, 1)))
}

func TestRisk_DrawdownAndStreaks(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2026, 8, 10), domain.ResultWin, 100, 100),
		trade(day(2026, 8, 11), domain.ResultLose, 200, -200),
		trade(day(2026, 8, 12), domain.ResultLose, 100, -100),
		trade(day(2026, 8, 13), domain.ResultWin, 300, 300),
	}

	rm := Risk(trades, 1000)

	assert.Equal(t, 300.0, rm.MaxDrawdown)
	assert.InDelta(t, 300.0/1100.0*100, rm.MaxDrawdownPercent, 1e-9)
	assert.Equal(t, 1, rm.MaxConsecutiveWins)
	assert.Equal(t, 2, rm.MaxConsecutiveLosses)
	assert.InDelta(t, 100.0/300.0, rm.RecoveryFactor, 1e-9)
}

func TestRisk_RecoveryFactorSentinelWithoutDrawdown(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2026, 8, 10), domain.ResultWin, 100, 50),
		trade(day(2026, 8, 11), domain.ResultWin, 100, 50),
	}

	rm := Risk(trades, 1000)

	assert.Zero(t, rm.MaxDrawdown)
	assert.Equal(t, domain.SentinelInfinite, rm.RecoveryFactor)
	assert.Equal(t, 2, rm.MaxConsecutiveWins)
}

func TestRisk_SharpeRatio(t *testing.T) {
	// Per-trade returns 0.5, 0.5, -1.0: mean 0, stddev > 0 keeps the ratio
	// finite; a positive tilt makes it positive.
	trades := []*domain.Trade{
		trade(day(2026, 8, 10), domain.ResultWin, 100, 80),
		trade(day(2026, 8, 11), domain.ResultWin, 100, 80),
		trade(day(2026, 8, 12), domain.ResultLose, 100, -100),
	}

	rm := Risk(trades, 1000)

	// returns: 0.8, 0.8, -1.0; mean 0.2; population stddev ~0.8485
	assert.InDelta(t, 0.2357, rm.SharpeRatio, 1e-3)
}

func TestRisk_IgnoresOpenAndVoid(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2026, 8, 10), domain.ResultVoid, 100, 0),
		trade(day(2026, 8, 11), domain.ResultOpen, 100, 0),
	}

	rm := Risk(trades, 1000)

	assert.Zero(t, rm.MaxDrawdown)
	assert.Zero(t, rm.MaxConsecutiveWins)
	assert.Zero(t, rm.MaxConsecutiveLosses)
	assert.Zero(t, rm.SharpeRatio)
}

func TestBehavior(t *testing.T) {
	t1 := trade(day(2026, 8, 10), domain.ResultWin, 100, 50)
	t1.StakePercent = 10
	t1.Odds = 1.5
	t2 := trade(day(2026, 8, 10), domain.ResultLose, 200, -200)
	t2.StakePercent = 20
	t2.Odds = 2.5
	t3 := trade(day(2026, 8, 12), domain.ResultOpen, 100, 0)
	t3.StakePercent = 10
	t3.Odds = 2.0

	tb := Behavior([]*domain.Trade{t1, t2, t3})

	assert.Equal(t, 3, tb.TotalTrades)
	assert.Equal(t, 1, tb.OpenTrades)
	assert.Equal(t, 2, tb.SettledTrades)
	assert.InDelta(t, 400.0/3, tb.AverageStake, 1e-9)
	assert.InDelta(t, 40.0/3, tb.AverageStakePercent, 1e-9)
	assert.InDelta(t, 2.0, tb.AverageOdds, 1e-9)
	assert.Equal(t, 2, tb.ActiveDays)
	assert.Equal(t, 2, tb.BusiestDayTrades)
	assert.InDelta(t, 1.5, tb.TradesPerActiveDay, 1e-9)
}
