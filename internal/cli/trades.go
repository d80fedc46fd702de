package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"betjournal/internal/domain"
	"betjournal/internal/numutil"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new trade",
	Long: `Log a new trade in the journal. The stake can be given as a percent of
the initial bankroll (--stake-pct) or as a currency amount (--stake); the
missing one is derived. Profit/loss of a WIN or LOSE trade is derived from
the stake and odds when not given explicitly.

Example:
  betjournal add --date 2026-08-15 --competition "Premier League" \
    --home Arsenal --away Chelsea --strategy "Lay the draw" \
    --odds 2.0 --stake-pct 1.0 --result WIN`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var (
	addDate        string
	addCompetition string
	addHome        string
	addAway        string
	addStrategy    string
	addOdds        float64
	addStakePct    float64
	addStake       float64
	addResult      string
	addProfitLoss  float64
	listLimit      int
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)

	addCmd.Flags().StringVar(&addDate, "date", "", "trade date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addCompetition, "competition", "", "competition name")
	addCmd.Flags().StringVar(&addHome, "home", "", "home participant")
	addCmd.Flags().StringVar(&addAway, "away", "", "away participant")
	addCmd.Flags().StringVar(&addStrategy, "strategy", "", "strategy tag")
	addCmd.Flags().Float64Var(&addOdds, "odds", 0, "decimal odds (>= 1.00)")
	addCmd.Flags().Float64Var(&addStakePct, "stake-pct", 0, "stake as percent of initial bankroll")
	addCmd.Flags().Float64Var(&addStake, "stake", 0, "stake as currency amount")
	addCmd.Flags().StringVar(&addResult, "result", "OPEN", "result: OPEN, WIN, LOSE or VOID")
	addCmd.Flags().Float64Var(&addProfitLoss, "pl", 0, "explicit profit/loss (overrides the formula)")
	addCmd.MarkFlagRequired("odds")

	listCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum number of trades to show (0 = all)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	service, closer, err := openService()
	if err != nil {
		return err
	}
	defer closer()

	date := time.Now().UTC()
	if addDate != "" {
		date, err = time.Parse("2006-01-02", addDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", addDate, err)
		}
	}

	trade := &domain.Trade{
		Date:         date,
		Competition:  addCompetition,
		HomeTeam:     addHome,
		AwayTeam:     addAway,
		Strategy:     addStrategy,
		Odds:         addOdds,
		StakePercent: addStakePct,
		StakeAmount:  addStake,
		Result:       domain.Result(strings.ToUpper(addResult)),
		ProfitLoss:   addProfitLoss,
	}
	if err := service.AddTrade(cmd.Context(), trade); err != nil {
		return err
	}
	fmt.Printf("Trade %s logged\n", trade.ID)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	service, closer, err := openService()
	if err != nil {
		return err
	}
	defer closer()

	trades, err := service.EnrichedTrades(cmd.Context())
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Println("No trades logged yet")
		return nil
	}

	fmt.Printf("%-28s %-12s %-22s %-6s %-9s %-6s %10s %8s %-14s\n",
		"ID", "DATE", "MATCH", "ODDS", "STAKE", "RES", "P/L", "POINTS", "TP/SL")
	for i, t := range trades {
		if listLimit > 0 && i >= listLimit {
			fmt.Printf("... and %d more\n", len(trades)-listLimit)
			break
		}
		match := t.HomeTeam
		if t.AwayTeam != "" {
			match += " v " + t.AwayTeam
		}
		if len(match) > 22 {
			match = match[:22]
		}
		fmt.Printf("%-28s %-12s %-22s %-6.2f %-9s %-6s %10s %8.2f %-14s\n",
			t.ID, t.Date.Format("2006-01-02"), match, t.Odds,
			numutil.FormatCurrency("", t.StakeAmount), t.Result,
			numutil.FormatCurrency("", t.ProfitLoss), t.Points, t.TpSl)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	service, closer, err := openService()
	if err != nil {
		return err
	}
	defer closer()

	if err := service.DeleteTrade(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Trade %s deleted\n", args[0])
	return nil
}
