package domain

import "time"

// Report structs are the typed aggregate outputs of the statistics engine.
// All percentages are expressed in [0,100]; currency values are float64
// amounts in the journal's single configured currency. The sentinel value
// 999 stands for a mathematically infinite ratio (positive numerator over a
// zero denominator) in ProfitFactor, PayoffRatio and RecoveryFactor;
// consumers should render it as "∞", not treat it as a magnitude.

// SentinelInfinite is the finite stand-in for an unbounded ratio.
const SentinelInfinite = 999.0

// PerformanceOverview summarizes a time window of settled trades.
type PerformanceOverview struct {
	StartingBank   float64 `yaml:"starting_bank"`
	EndingBank     float64 `yaml:"ending_bank"`
	NetProfit      float64 `yaml:"net_profit"`
	NetAdjustments float64 `yaml:"net_adjustments"`
	TotalStaked    float64 `yaml:"total_staked"`
	ROI            float64 `yaml:"roi"`
	TotalTrades    int     `yaml:"total_trades"`
	WinningTrades  int     `yaml:"winning_trades"`
	LosingTrades   int     `yaml:"losing_trades"`
	WinRate        float64 `yaml:"win_rate"`
	AverageWin     float64 `yaml:"average_win"`
	AverageLoss    float64 `yaml:"average_loss"` // Positive magnitude
	ProfitFactor   float64 `yaml:"profit_factor"`
	Expectancy     float64 `yaml:"expectancy"` // Currency per trade
}

// RiskMetrics captures drawdown, streak and volatility measures.
type RiskMetrics struct {
	MaxDrawdown          float64 `yaml:"max_drawdown"`         // Currency, >= 0
	MaxDrawdownPercent   float64 `yaml:"max_drawdown_percent"` // Relative to the peak at the trough
	MaxConsecutiveWins   int     `yaml:"max_consecutive_wins"`
	MaxConsecutiveLosses int     `yaml:"max_consecutive_losses"`
	SharpeRatio          float64 `yaml:"sharpe_ratio"` // Mean over stddev of per-trade returns
	RecoveryFactor       float64 `yaml:"recovery_factor"`
}

// TradingBehavior describes the shape of the trading activity rather than
// its profitability.
type TradingBehavior struct {
	TotalTrades         int     `yaml:"total_trades"`
	SettledTrades       int     `yaml:"settled_trades"`
	OpenTrades          int     `yaml:"open_trades"`
	AverageStake        float64 `yaml:"average_stake"`
	AverageStakePercent float64 `yaml:"average_stake_percent"`
	AverageOdds         float64 `yaml:"average_odds"`
	ActiveDays          int     `yaml:"active_days"`
	TradesPerActiveDay  float64 `yaml:"trades_per_active_day"`
	BusiestDayTrades    int     `yaml:"busiest_day_trades"`
}

// GroupPerformance is the full aggregate computed per strategy and per
// competition.
type GroupPerformance struct {
	Key             string   `yaml:"key"`
	Trades          int      `yaml:"trades"`
	Wins            int      `yaml:"wins"`
	Losses          int      `yaml:"losses"`
	WinRate         float64  `yaml:"win_rate"`
	Profit          float64  `yaml:"profit"`
	TotalStaked     float64  `yaml:"total_staked"`
	ROI             float64  `yaml:"roi"`
	Yield           float64  `yaml:"yield"`
	ProfitFactor    float64  `yaml:"profit_factor"`
	Expectancy      float64  `yaml:"expectancy"`
	AverageWin      float64  `yaml:"average_win"`
	AverageLoss     float64  `yaml:"average_loss"` // Positive magnitude
	PayoffRatio     float64  `yaml:"payoff_ratio"`
	MaxDrawdown     float64  `yaml:"max_drawdown"`
	AverageOdds     float64  `yaml:"average_odds"`
	Kelly           float64  `yaml:"kelly"`            // Percent, clamped >= 0
	FractionalKelly float64  `yaml:"fractional_kelly"` // Quarter-Kelly
	Alert           AlertTag `yaml:"alert,omitempty"`
}

// BucketPerformance is the light aggregate computed per odds range, day of
// week and hour range.
type BucketPerformance struct {
	Key     string  `yaml:"key"`
	Trades  int     `yaml:"trades"`
	Wins    int     `yaml:"wins"`
	Losses  int     `yaml:"losses"`
	WinRate float64 `yaml:"win_rate"`
	Profit  float64 `yaml:"profit"`
	ROI     float64 `yaml:"roi"`
}

// MonthlyComparison reports current-versus-previous calendar month deltas.
// Percent deltas are 0 when the previous value is exactly 0 (not a true
// percentage, just a guarded division).
type MonthlyComparison struct {
	CurrentMonth  string `yaml:"current_month"`  // "2006-01"
	PreviousMonth string `yaml:"previous_month"` // "2006-01"

	Current  PerformanceOverview `yaml:"current"`
	Previous PerformanceOverview `yaml:"previous"`

	ROIDelta                float64 `yaml:"roi_delta"`
	ROIDeltaPercent         float64 `yaml:"roi_delta_percent"`
	WinRateDelta            float64 `yaml:"win_rate_delta"`
	WinRateDeltaPercent     float64 `yaml:"win_rate_delta_percent"`
	ProfitFactorDelta       float64 `yaml:"profit_factor_delta"`
	ProfitFactorDeltaPct    float64 `yaml:"profit_factor_delta_percent"`
	AvgProfitPerTradeDelta  float64 `yaml:"avg_profit_per_trade_delta"`
	AvgProfitPerTradeDltPct float64 `yaml:"avg_profit_per_trade_delta_percent"`
}

// Insights holds the rule-based qualitative output, ordered by rule priority.
type Insights struct {
	Strengths    []string `yaml:"strengths"`
	Improvements []string `yaml:"improvements"`
}

// Report bundles every aggregate the statistics engine produces for one
// time window.
type Report struct {
	GeneratedAt  time.Time           `yaml:"generated_at"`
	WindowStart  time.Time           `yaml:"window_start"`
	WindowEnd    time.Time           `yaml:"window_end"`
	Overview     PerformanceOverview `yaml:"overview"`
	Risk         RiskMetrics         `yaml:"risk"`
	Behavior     TradingBehavior     `yaml:"behavior"`
	Strategies   []GroupPerformance  `yaml:"strategies"`
	Competitions []GroupPerformance  `yaml:"competitions"`
	OddsRanges   []BucketPerformance `yaml:"odds_ranges"`
	DaysOfWeek   []BucketPerformance `yaml:"days_of_week"`
	HourRanges   []BucketPerformance `yaml:"hour_ranges"`
	Monthly      MonthlyComparison   `yaml:"monthly"`
	Insights     Insights            `yaml:"insights"`
}
