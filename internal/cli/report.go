package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"betjournal/internal/analytics"
	"betjournal/internal/domain"
	"betjournal/internal/numutil"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the full analytics report",
	Long: `Compute the performance overview, risk metrics, trading behavior,
segment breakdowns, monthly comparison and insights over an optional time
window.

Examples:
  betjournal report
  betjournal report --from 2026-01-01 --to 2026-07-01
  betjournal report --yaml > report.yaml`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportFrom string
	reportTo   string
	reportYAML bool
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "window start (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "window end (YYYY-MM-DD, exclusive)")
	reportCmd.Flags().BoolVar(&reportYAML, "yaml", false, "emit the full report as YAML")
}

func runReport(cmd *cobra.Command, args []string) error {
	service, closer, err := openService()
	if err != nil {
		return err
	}
	defer closer()

	win, err := parseWindow(reportFrom, reportTo)
	if err != nil {
		return err
	}

	report, err := service.BuildReport(cmd.Context(), win)
	if err != nil {
		return err
	}

	if reportYAML {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(report)
	}

	printReport(report)
	return nil
}

func parseWindow(from, to string) (analytics.Window, error) {
	var win analytics.Window
	var err error
	if from != "" {
		win.Start, err = time.Parse("2006-01-02", from)
		if err != nil {
			return win, fmt.Errorf("invalid --from %q (want YYYY-MM-DD): %w", from, err)
		}
	}
	if to != "" {
		win.End, err = time.Parse("2006-01-02", to)
		if err != nil {
			return win, fmt.Errorf("invalid --to %q (want YYYY-MM-DD): %w", to, err)
		}
	}
	return win, nil
}

func printReport(r *domain.Report) {
	fmt.Println("=== Performance Overview ===")
	fmt.Printf("Starting bank:   %s\n", numutil.FormatCurrency("", r.Overview.StartingBank))
	fmt.Printf("Ending bank:     %s\n", numutil.FormatCurrency("", r.Overview.EndingBank))
	fmt.Printf("Net profit:      %s\n", numutil.FormatCurrency("", r.Overview.NetProfit))
	fmt.Printf("ROI:             %s\n", numutil.FormatPercent(r.Overview.ROI))
	fmt.Printf("Trades (W/L):    %d (%d/%d)\n", r.Overview.TotalTrades, r.Overview.WinningTrades, r.Overview.LosingTrades)
	fmt.Printf("Win rate:        %s\n", numutil.FormatPercent(r.Overview.WinRate))
	fmt.Printf("Profit factor:   %s\n", formatRatio(r.Overview.ProfitFactor))
	fmt.Printf("Expectancy:      %s per trade\n", numutil.FormatCurrency("", r.Overview.Expectancy))

	fmt.Println("\n=== Risk ===")
	fmt.Printf("Max drawdown:    %s (%s of peak)\n",
		numutil.FormatCurrency("", r.Risk.MaxDrawdown), numutil.FormatPercent(r.Risk.MaxDrawdownPercent))
	fmt.Printf("Streaks:         %d wins / %d losses\n", r.Risk.MaxConsecutiveWins, r.Risk.MaxConsecutiveLosses)
	fmt.Printf("Sharpe ratio:    %.2f\n", r.Risk.SharpeRatio)
	fmt.Printf("Recovery factor: %s\n", formatRatio(r.Risk.RecoveryFactor))

	if len(r.Strategies) > 0 {
		fmt.Println("\n=== Strategies ===")
		for _, g := range r.Strategies {
			line := fmt.Sprintf("%-24s %4d trades  %6s win  %10s profit  kelly %5.2f%%",
				g.Key, g.Trades, numutil.FormatPercent(g.WinRate),
				numutil.FormatCurrency("", g.Profit), g.FractionalKelly)
			if g.Alert != domain.AlertNone {
				line += "  [" + string(g.Alert) + "]"
			}
			fmt.Println(line)
		}
	}

	fmt.Printf("\n=== Month over Month (%s vs %s) ===\n", r.Monthly.CurrentMonth, r.Monthly.PreviousMonth)
	fmt.Printf("ROI delta:       %+.2f\n", r.Monthly.ROIDelta)
	fmt.Printf("Win rate delta:  %+.2f\n", r.Monthly.WinRateDelta)

	if len(r.Insights.Strengths) > 0 {
		fmt.Println("\n=== Strengths ===")
		for _, s := range r.Insights.Strengths {
			fmt.Println("  + " + s)
		}
	}
	if len(r.Insights.Improvements) > 0 {
		fmt.Println("\n=== Improvements ===")
		for _, s := range r.Insights.Improvements {
			fmt.Println("  - " + s)
		}
	}
}

// formatRatio renders the 999 sentinel as infinity.
func formatRatio(v float64) string {
	if v == domain.SentinelInfinite {
		return "∞"
	}
	return fmt.Sprintf("%.2f", v)
}
