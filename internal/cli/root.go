package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"betjournal/config"
	"betjournal/internal/adapters/logger"
	"betjournal/internal/adapters/sqlite"
	"betjournal/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "betjournal",
	Short: "A sports-trading journal with deterministic bankroll analytics",
	Long: `betjournal keeps a single-user journal of sports trades and derives
performance analytics from it:

  - Chronological recalculation of points, daily P/L and TP/SL labels
  - Performance overview, risk metrics and trading behavior
  - Strategy, competition, odds-range, weekday and hour breakdowns
  - Kelly-criterion position sizing per strategy
  - Month-over-month comparison and rule-based insights

All data lives in a local SQLite database; trades can be bulk-imported
from CSV exports.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openService wires config, logger, repository and service. Callers own the
// returned closer.
func openService() (*app.JournalService, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)

	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	service, err := app.NewJournalService(cfg, appLogger, repo, repo, repo.Adjustments())
	if err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("failed to initialize journal service: %w", err)
	}

	closer := func() {
		if err := repo.Close(); err != nil {
			log.Printf("error closing repository: %v", err)
		}
	}
	return service, closer, nil
}
