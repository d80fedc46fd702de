package analytics

import (
	"fmt"
	"sort"

	"betjournal/internal/domain"
)

// Minimum closed-trade sample before a Kelly recommendation is reported.
const kellyMinSample = 30

// ByStrategy groups settled trades by normalized strategy tag and computes
// the full per-group aggregate, sorted by profit descending.
func ByStrategy(trades []*domain.Trade, settings *domain.Settings) []domain.GroupPerformance {
	return groupFull(trades, settings, func(t *domain.Trade) string { return t.StrategyKey() })
}

// ByCompetition groups settled trades by competition name and computes the
// full per-group aggregate, sorted by profit descending.
func ByCompetition(trades []*domain.Trade, settings *domain.Settings) []domain.GroupPerformance {
	return groupFull(trades, settings, func(t *domain.Trade) string {
		if t.Competition == "" {
			return domain.StrategyNA
		}
		return t.Competition
	})
}

// ByOddsRange buckets settled trades into fixed decimal-odds bands.
func ByOddsRange(trades []*domain.Trade) []domain.BucketPerformance {
	order := []string{"1.00-1.50", "1.50-2.00", "2.00-3.00", "3.00+"}
	return groupLight(trades, order, func(t *domain.Trade) string {
		switch {
		case t.Odds < 1.5:
			return "1.00-1.50"
		case t.Odds < 2.0:
			return "1.50-2.00"
		case t.Odds < 3.0:
			return "2.00-3.00"
		default:
			return "3.00+"
		}
	})
}

// ByDayOfWeek buckets settled trades by weekday, Monday first.
func ByDayOfWeek(trades []*domain.Trade) []domain.BucketPerformance {
	order := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	return groupLight(trades, order, func(t *domain.Trade) string {
		return t.Date.Weekday().String()
	})
}

// ByHourRange buckets settled trades into six-hour bands of the trade's
// time of day. Most journal entries carry a date only; a trade whose date
// has no clock and no creation timestamp lands in the explicit "Unknown"
// bucket rather than being silently defaulted, so the report cannot be
// biased by invented times.
func ByHourRange(trades []*domain.Trade) []domain.BucketPerformance {
	order := []string{"00-06", "06-12", "12-18", "18-24", "Unknown"}
	return groupLight(trades, order, func(t *domain.Trade) string {
		hour, ok := hourOf(t)
		if !ok {
			return "Unknown"
		}
		start := (hour / 6) * 6
		return fmt.Sprintf("%02d-%02d", start, start+6)
	})
}

// hourOf extracts the best-effort time of day: the creation timestamp when
// present, otherwise a non-midnight clock on the date itself.
func hourOf(t *domain.Trade) (int, bool) {
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt.Hour(), true
	}
	h, m, s := t.Date.Clock()
	if h == 0 && m == 0 && s == 0 {
		return 0, false
	}
	return h, true
}

type groupAccumulator struct {
	key         string
	trades      []*domain.Trade
	wins        int
	losses      int
	profit      float64
	staked      float64
	grossWins   float64
	grossLosses float64
	oddsSum     float64
	oddsCount   int
}

// groupFull computes the heavyweight aggregate (profit factor, expectancy,
// payoff ratio, in-group drawdown, Kelly sizing, alert tag) per key.
func groupFull(trades []*domain.Trade, settings *domain.Settings, keyOf func(*domain.Trade) string) []domain.GroupPerformance {
	groups := accumulate(trades, keyOf)

	var initialBank float64
	if settings != nil {
		initialBank = settings.InitialBank
	}

	out := make([]domain.GroupPerformance, 0, len(groups))
	for _, g := range groups {
		gp := domain.GroupPerformance{
			Key:    g.key,
			Trades: len(g.trades),
			Wins:   g.wins,
			Losses: g.losses,
			Profit: g.profit,

			TotalStaked: g.staked,
		}

		closed := g.wins + g.losses
		if closed > 0 {
			gp.WinRate = float64(g.wins) / float64(closed) * 100
		}
		if g.staked > 0 {
			gp.ROI = g.profit / g.staked * 100
		}
		if initialBank > 0 {
			gp.Yield = g.profit / initialBank * 100
		}
		if g.wins > 0 {
			gp.AverageWin = g.grossWins / float64(g.wins)
		}
		if g.losses > 0 {
			gp.AverageLoss = g.grossLosses / float64(g.losses)
		}
		gp.ProfitFactor = ratioOrSentinel(g.grossWins, g.grossLosses)
		gp.PayoffRatio = ratioOrSentinel(gp.AverageWin, gp.AverageLoss)
		if closed > 0 {
			winRate := float64(g.wins) / float64(closed)
			gp.Expectancy = winRate*gp.AverageWin - (1-winRate)*gp.AverageLoss
		}
		if g.oddsCount > 0 {
			gp.AverageOdds = g.oddsSum / float64(g.oddsCount)
		}

		gp.MaxDrawdown = groupDrawdown(g.trades)
		gp.Kelly, gp.FractionalKelly = kelly(g.wins, g.losses, gp.AverageOdds)
		gp.Alert = alertFor(g)

		out = append(out, gp)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit > out[j].Profit })
	return out
}

// groupLight computes the count/rate/profit aggregate per key, emitting
// buckets in the given fixed order and skipping empty ones.
func groupLight(trades []*domain.Trade, order []string, keyOf func(*domain.Trade) string) []domain.BucketPerformance {
	groups := accumulate(trades, keyOf)
	byKey := make(map[string]*groupAccumulator, len(groups))
	for _, g := range groups {
		byKey[g.key] = g
	}

	out := make([]domain.BucketPerformance, 0, len(groups))
	for _, key := range order {
		g, ok := byKey[key]
		if !ok {
			continue
		}
		bp := domain.BucketPerformance{
			Key:    key,
			Trades: len(g.trades),
			Wins:   g.wins,
			Losses: g.losses,
			Profit: g.profit,
		}
		closed := g.wins + g.losses
		if closed > 0 {
			bp.WinRate = float64(g.wins) / float64(closed) * 100
		}
		if g.staked > 0 {
			bp.ROI = g.profit / g.staked * 100
		}
		out = append(out, bp)
	}
	return out
}

// accumulate folds settled trades into per-key accumulators. OPEN trades are
// excluded entirely; VOID trades count toward size and stake but not toward
// win/loss rates (their P/L is always zero).
func accumulate(trades []*domain.Trade, keyOf func(*domain.Trade) string) []*groupAccumulator {
	byKey := make(map[string]*groupAccumulator)
	var ordered []*groupAccumulator

	for _, t := range trades {
		if t.IsOpen() {
			continue
		}
		key := keyOf(t)
		g, ok := byKey[key]
		if !ok {
			g = &groupAccumulator{key: key}
			byKey[key] = g
			ordered = append(ordered, g)
		}
		g.trades = append(g.trades, t)
		g.profit += t.ProfitLoss
		g.staked += t.StakeAmount
		switch t.Result {
		case domain.ResultWin:
			g.wins++
			g.grossWins += t.ProfitLoss
			g.oddsSum += t.Odds
			g.oddsCount++
		case domain.ResultLose:
			g.losses++
			g.grossLosses += -t.ProfitLoss
			g.oddsSum += t.Odds
			g.oddsCount++
		}
	}
	return ordered
}

// groupDrawdown walks the group's own trades chronologically and returns the
// deepest peak-to-trough decline of the group's cumulative P/L.
func groupDrawdown(trades []*domain.Trade) float64 {
	chrono := make([]*domain.Trade, len(trades))
	copy(chrono, trades)
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].Day().Before(chrono[j].Day())
	})

	var equity, peak, maxDD float64
	for _, t := range chrono {
		equity += t.ProfitLoss
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// kelly computes the Kelly criterion stake percentage and its quarter-scale
// fraction. Reported as zero (no recommendation) when the sample is below
// kellyMinSample, the average net odds are non-positive, or the edge is
// negative.
func kelly(wins, losses int, avgOdds float64) (full, fractional float64) {
	closed := wins + losses
	if closed < kellyMinSample {
		return 0, 0
	}
	b := avgOdds - 1
	if b <= 0 {
		return 0, 0
	}
	p := float64(wins) / float64(closed)
	k := (p - (1-p)/b) * 100
	if k <= 0 {
		return 0, 0
	}
	return k, k / 4
}

// alertFor picks at most one tag per group, in priority order.
func alertFor(g *groupAccumulator) domain.AlertTag {
	closed := g.wins + g.losses
	if closed < kellyMinSample {
		return domain.AlertLowSample
	}
	if maxConsecutiveLosses(g.trades) >= 5 {
		return domain.AlertConsecutiveLosses
	}
	roi := 0.0
	if g.staked > 0 {
		roi = g.profit / g.staked * 100
	}
	if roi > 30 && len(g.trades) > 50 {
		return domain.AlertScaleUp
	}
	return domain.AlertNone
}

func maxConsecutiveLosses(trades []*domain.Trade) int {
	chrono := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Result.IsClosed() {
			chrono = append(chrono, t)
		}
	}
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].Day().Before(chrono[j].Day())
	})

	var cur, longest int
	for _, t := range chrono {
		if t.Result == domain.ResultLose {
			cur++
			if cur > longest {
				longest = cur
			}
		} else {
			cur = 0
		}
	}
	return longest
}
