package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"betjournal/internal/numutil"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage bankroll settings and capital adjustments",
	Long: `Manage the bankroll: set the initial bank and the daily take-profit /
stop-loss thresholds, and record deposits or withdrawals.

Examples:
  betjournal bank set --initial 1000 --daily-tp 3 --daily-sl -5
  betjournal bank deposit 250
  betjournal bank withdraw 100 --date 2026-08-01`,
}

var bankSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update bankroll settings",
	Args:  cobra.NoArgs,
	RunE:  runBankSet,
}

var bankDepositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Record a capital deposit",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankAdjust(true),
}

var bankWithdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Record a capital withdrawal",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankAdjust(false),
}

var (
	bankInitial float64
	bankCurrent float64
	bankDailyTP float64
	bankDailySL float64
	bankAdjDate string
)

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(bankSetCmd)
	bankCmd.AddCommand(bankDepositCmd)
	bankCmd.AddCommand(bankWithdrawCmd)

	bankSetCmd.Flags().Float64Var(&bankInitial, "initial", 0, "initial bankroll (required, > 0)")
	bankSetCmd.Flags().Float64Var(&bankCurrent, "current", 0, "current bankroll override (0 = computed)")
	bankSetCmd.Flags().Float64Var(&bankDailyTP, "daily-tp", 0, "daily take-profit percent (> 0, 0 disables)")
	bankSetCmd.Flags().Float64Var(&bankDailySL, "daily-sl", 0, "daily stop-loss percent (< 0, 0 disables)")
	bankSetCmd.MarkFlagRequired("initial")

	bankDepositCmd.Flags().StringVar(&bankAdjDate, "date", "", "adjustment date (YYYY-MM-DD, default today)")
	bankWithdrawCmd.Flags().StringVar(&bankAdjDate, "date", "", "adjustment date (YYYY-MM-DD, default today)")
}

func runBankSet(cmd *cobra.Command, args []string) error {
	service, closer, err := openService()
	if err != nil {
		return err
	}
	defer closer()

	settings, err := service.Settings(cmd.Context())
	if err != nil {
		return err
	}
	settings.InitialBank = bankInitial
	settings.CurrentBank = bankCurrent
	settings.DailyTP = bankDailyTP
	settings.DailySL = bankDailySL

	if err := service.SaveSettings(cmd.Context(), settings); err != nil {
		return err
	}
	fmt.Println("Bankroll settings saved")
	return nil
}

func runBankAdjust(deposit bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}

		date := time.Now().UTC()
		if bankAdjDate != "" {
			date, err = time.Parse("2006-01-02", bankAdjDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", bankAdjDate, err)
			}
		}

		service, closer, err := openService()
		if err != nil {
			return err
		}
		defer closer()

		if deposit {
			err = service.Deposit(cmd.Context(), date, amount)
		} else {
			err = service.Withdraw(cmd.Context(), date, amount)
		}
		if err != nil {
			return err
		}
		fmt.Println("Adjustment recorded")
		return nil
	}
}

func parseAmount(s string) (float64, error) {
	v, err := numutil.ParseFlexibleFloat(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", v)
	}
	return v, nil
}
