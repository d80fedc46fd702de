package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betjournal/internal/domain"
)

func strategyTrade(date time.Time, strategy string, result domain.Result, stake, pl float64) *domain.Trade {
	tr := trade(date, result, stake, pl)
	tr.Strategy = strategy
	return tr
}

func TestByStrategy_GroupingAndOrder(t *testing.T) {
	trades := []*domain.Trade{
		strategyTrade(day(2026, 8, 10), "Lay the draw", domain.ResultWin, 100, 100),
		strategyTrade(day(2026, 8, 11), "Back favourite", domain.ResultLose, 100, -50),
		strategyTrade(day(2026, 8, 12), "  ", domain.ResultVoid, 50, 0),
		strategyTrade(day(2026, 8, 13), "Lay the draw", domain.ResultOpen, 100, 0),
	}

	groups := ByStrategy(trades, settingsWith(1000, 0, 0))

	require.Len(t, groups, 3)
	assert.Equal(t, "Lay the draw", groups[0].Key, "sorted by profit descending")
	assert.Equal(t, domain.StrategyNA, groups[1].Key, "blank strategy folds into N/A")
	assert.Equal(t, "Back favourite", groups[2].Key)

	ltd := groups[0]
	assert.Equal(t, 1, ltd.Trades, "OPEN trades excluded from the group")
	assert.Equal(t, 100.0, ltd.Profit)
	assert.Equal(t, 100.0, ltd.WinRate)
	assert.Equal(t, 100.0, ltd.ROI)
	assert.Equal(t, 10.0, ltd.Yield, "profit relative to the initial bankroll")
	assert.Equal(t, domain.SentinelInfinite, ltd.ProfitFactor)
	assert.Equal(t, domain.AlertLowSample, ltd.Alert)
}

func TestByCompetition_EmptyNameFoldsIntoNA(t *testing.T) {
	t1 := trade(day(2026, 8, 10), domain.ResultWin, 100, 50)
	t1.Competition = "Premier League"
	t2 := trade(day(2026, 8, 11), domain.ResultLose, 100, -100)

	groups := ByCompetition([]*domain.Trade{t1, t2}, settingsWith(1000, 0, 0))

	require.Len(t, groups, 2)
	assert.Equal(t, "Premier League", groups[0].Key)
	assert.Equal(t, domain.StrategyNA, groups[1].Key)
}

func TestByOddsRange_Boundaries(t *testing.T) {
	mk := func(odds float64) *domain.Trade {
		tr := trade(day(2026, 8, 10), domain.ResultWin, 100, 50)
		tr.Odds = odds
		return tr
	}
	trades := []*domain.Trade{mk(1.2), mk(1.5), mk(2.0), mk(2.99), mk(3.0), mk(10.0)}

	buckets := ByOddsRange(trades)

	require.Len(t, buckets, 4)
	assert.Equal(t, "1.00-1.50", buckets[0].Key)
	assert.Equal(t, 1, buckets[0].Trades)
	assert.Equal(t, "1.50-2.00", buckets[1].Key, "1.5 belongs to the upper band")
	assert.Equal(t, 1, buckets[1].Trades)
	assert.Equal(t, "2.00-3.00", buckets[2].Key)
	assert.Equal(t, 2, buckets[2].Trades)
	assert.Equal(t, "3.00+", buckets[3].Key)
	assert.Equal(t, 2, buckets[3].Trades)
}

func TestByDayOfWeek_MondayFirstEmptySkipped(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2026, 8, 23), domain.ResultWin, 100, 50),   // Sunday
		trade(day(2026, 8, 24), domain.ResultLose, 100, -50), // Monday
	}

	buckets := ByDayOfWeek(trades)

	require.Len(t, buckets, 2)
	assert.Equal(t, "Monday", buckets[0].Key)
	assert.Equal(t, "Sunday", buckets[1].Key)
}

func TestByHourRange(t *testing.T) {
	withCreated := trade(day(2026, 8, 10), domain.ResultWin, 100, 50)
	withCreated.CreatedAt = time.Date(2026, 8, 10, 14, 30, 0, 0, time.UTC)

	withClock := trade(time.Date(2026, 8, 11, 7, 15, 0, 0, time.UTC), domain.ResultWin, 100, 50)

	dateOnly := trade(day(2026, 8, 12), domain.ResultLose, 100, -50)

	buckets := ByHourRange([]*domain.Trade{withCreated, withClock, dateOnly})

	require.Len(t, buckets, 3)
	assert.Equal(t, "06-12", buckets[0].Key)
	assert.Equal(t, "12-18", buckets[1].Key)
	assert.Equal(t, "Unknown", buckets[2].Key, "date-only trades never get an invented hour")
}

func TestKelly(t *testing.T) {
	tests := []struct {
		name           string
		wins, losses   int
		avgOdds        float64
		wantFull       float64
		wantFractional float64
	}{
		{"below sample threshold", 10, 5, 2.0, 0, 0},
		{"positive edge", 18, 12, 2.0, 20, 5},
		{"negative edge", 10, 20, 2.0, 0, 0},
		{"no net odds", 20, 10, 1.0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full, fractional := kelly(tt.wins, tt.losses, tt.avgOdds)
			assert.InDelta(t, tt.wantFull, full, 1e-9)
			assert.InDelta(t, tt.wantFractional, fractional, 1e-9)
		})
	}
}

func TestByStrategy_LowSampleAlert(t *testing.T) {
	// Ten profitable trades are still too small a sample for sizing advice.
	var trades []*domain.Trade
	for i := 0; i < 10; i++ {
		trades = append(trades, strategyTrade(day(2026, 8, 1+i), "small", domain.ResultWin, 100, 100))
	}

	groups := ByStrategy(trades, settingsWith(1000, 0, 0))

	require.Len(t, groups, 1)
	assert.Equal(t, domain.AlertLowSample, groups[0].Alert)
	assert.Zero(t, groups[0].Kelly)
	assert.Zero(t, groups[0].FractionalKelly)
}

func TestByStrategy_ConsecutiveLossesAlert(t *testing.T) {
	// 25 wins followed by 5 straight losses: sample is big enough, so the
	// streak outranks everything else.
	var trades []*domain.Trade
	for i := 0; i < 25; i++ {
		trades = append(trades, strategyTrade(day(2026, 7, 1).AddDate(0, 0, i), "streaky", domain.ResultWin, 100, 100))
	}
	for i := 0; i < 5; i++ {
		trades = append(trades, strategyTrade(day(2026, 7, 26).AddDate(0, 0, i), "streaky", domain.ResultLose, 100, -100))
	}

	groups := ByStrategy(trades, settingsWith(1000, 0, 0))

	require.Len(t, groups, 1)
	assert.Equal(t, domain.AlertConsecutiveLosses, groups[0].Alert)
}

func TestByStrategy_ScaleUpAlert(t *testing.T) {
	// 60 trades in a WWL pattern: 33% ROI on a big sample with no losing
	// streak worth flagging.
	var trades []*domain.Trade
	for i := 0; i < 60; i++ {
		result := domain.ResultWin
		pl := 100.0
		if i%3 == 2 {
			result = domain.ResultLose
			pl = -100.0
		}
		trades = append(trades, strategyTrade(day(2026, 6, 1).AddDate(0, 0, i), "scaler", result, 100, pl))
	}

	groups := ByStrategy(trades, settingsWith(1000, 0, 0))

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Greater(t, g.ROI, 30.0)
	assert.Equal(t, domain.AlertScaleUp, g.Alert)
	assert.Greater(t, g.Kelly, 0.0)
	assert.InDelta(t, g.Kelly/4, g.FractionalKelly, 1e-9)
}

func TestGroupDrawdown(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2026, 8, 10), domain.ResultWin, 100, 100),
		trade(day(2026, 8, 11), domain.ResultLose, 100, -60),
		trade(day(2026, 8, 12), domain.ResultLose, 100, -50),
		trade(day(2026, 8, 13), domain.ResultWin, 100, 200),
	}

	assert.Equal(t, 110.0, groupDrawdown(trades))
	assert.Zero(t, groupDrawdown(nil))
}

func TestMaxConsecutiveLosses(t *testing.T) {
	var trades []*domain.Trade
	for i, r := range []domain.Result{
		domain.ResultLose, domain.ResultLose, domain.ResultWin,
		domain.ResultLose, domain.ResultLose, domain.ResultLose,
		domain.ResultVoid, domain.ResultLose,
	} {
		trades = append(trades, trade(day(2026, 8, 1+i), r, 100, 0))
	}

	// VOID is not closed, so it neither breaks nor extends a streak.
	assert.Equal(t, 4, maxConsecutiveLosses(trades))
}

func TestByStrategy_AverageOddsFromClosedOnly(t *testing.T) {
	mk := func(d time.Time, result domain.Result, odds float64) *domain.Trade {
		tr := strategyTrade(d, "odds", result, 100, 0)
		tr.Odds = odds
		return tr
	}
	trades := []*domain.Trade{
		mk(day(2026, 8, 10), domain.ResultWin, 2.0),
		mk(day(2026, 8, 11), domain.ResultLose, 3.0),
		mk(day(2026, 8, 12), domain.ResultVoid, 100.0), // must not skew the average
	}
	trades[0].ProfitLoss = 100
	trades[1].ProfitLoss = -100

	groups := ByStrategy(trades, settingsWith(1000, 0, 0))

	require.Len(t, groups, 1)
	assert.InDelta(t, 2.5, groups[0].AverageOdds, 1e-9)
}

func ExampleByOddsRange() {
	tr := &domain.Trade{
		Date:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Odds:        1.8,
		StakeAmount: 100,
		Result:      domain.ResultWin,
		ProfitLoss:  80,
	}
	for _, b := range ByOddsRange([]*domain.Trade{tr}) {
		fmt.Printf("%s: %d trade(s), %.0f profit\n", b.Key, b.Trades, b.Profit)
	}
	// Output: 1.50-2.00: 1 trade(s), 80 profit
}
