package analytics

import (
	"fmt"

	"betjournal/internal/domain"
)

// GenerateInsights turns computed aggregates into ordered human-readable
// strengths and improvement points. Purely derivative: it consumes the
// overview and risk outputs and never touches raw trades.
func GenerateInsights(ov domain.PerformanceOverview, rm domain.RiskMetrics) domain.Insights {
	var ins domain.Insights

	closed := ov.WinningTrades + ov.LosingTrades
	if closed == 0 {
		ins.Improvements = append(ins.Improvements,
			"No settled trades yet - log and settle some trades to unlock insights")
		return ins
	}

	// Strengths, highest-signal first.
	if ov.WinRate >= 60 {
		ins.Strengths = append(ins.Strengths,
			fmt.Sprintf("Strong win rate of %.1f%% across %d closed trades", ov.WinRate, closed))
	}
	if ov.ProfitFactor >= 1.5 && ov.ProfitFactor != domain.SentinelInfinite {
		ins.Strengths = append(ins.Strengths,
			fmt.Sprintf("Healthy profit factor of %.2f - gross wins comfortably cover gross losses", ov.ProfitFactor))
	}
	if ov.ProfitFactor == domain.SentinelInfinite {
		ins.Strengths = append(ins.Strengths,
			"No losing trades recorded in this window")
	}
	if ov.Expectancy > 0 {
		ins.Strengths = append(ins.Strengths,
			fmt.Sprintf("Positive expectancy of %.2f per trade", ov.Expectancy))
	}
	if rm.RecoveryFactor >= 3 {
		ins.Strengths = append(ins.Strengths,
			"Profits recover drawdowns quickly (recovery factor >= 3)")
	}

	// Improvement points.
	if ov.ProfitFactor < 1.0 {
		ins.Improvements = append(ins.Improvements,
			fmt.Sprintf("Profit factor %.2f is below break-even - losses outweigh wins", ov.ProfitFactor))
	}
	if ov.WinRate < 40 {
		ins.Improvements = append(ins.Improvements,
			fmt.Sprintf("Win rate of %.1f%% is low - review entry criteria", ov.WinRate))
	}
	if rm.MaxDrawdownPercent > 20 {
		ins.Improvements = append(ins.Improvements,
			fmt.Sprintf("Max drawdown of %.1f%% of bankroll - consider reducing stake sizes", rm.MaxDrawdownPercent))
	}
	if rm.MaxConsecutiveLosses >= 5 {
		ins.Improvements = append(ins.Improvements,
			fmt.Sprintf("Losing streak of %d trades - a daily stop loss would cap damage", rm.MaxConsecutiveLosses))
	}

	return ins
}
