package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"betjournal/internal/domain"
	"betjournal/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.TradeRepository and ports.SettingsRepository
// using SQLite. The adjustment ledger is exposed through Adjustments(),
// since its Create signature collides with the trade one.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/betjournal.db" // Default path
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT NULL,
		competition TEXT NOT NULL DEFAULT '',
		home_team TEXT NOT NULL DEFAULT '',
		away_team TEXT NOT NULL DEFAULT '',
		strategy TEXT NOT NULL DEFAULT '',
		odds REAL NOT NULL,
		stake_percent REAL NOT NULL DEFAULT 0,
		stake_amount REAL NOT NULL DEFAULT 0,
		result TEXT NOT NULL,
		profit_loss REAL NOT NULL DEFAULT 0,
		roi REAL NOT NULL DEFAULT 0,
		points REAL NOT NULL DEFAULT 0,
		daily_pl REAL NOT NULL DEFAULT 0,
		tp_sl TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		initial_bank REAL NOT NULL,
		current_bank REAL NOT NULL DEFAULT 0,
		daily_tp REAL NOT NULL DEFAULT 0,
		daily_sl REAL NOT NULL DEFAULT 0,
		weekly_tp REAL NOT NULL DEFAULT 0,
		weekly_sl REAL NOT NULL DEFAULT 0,
		monthly_tp REAL NOT NULL DEFAULT 0,
		monthly_sl REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS adjustments (
		id TEXT PRIMARY KEY,
		date TIMESTAMP NOT NULL,
		kind TEXT NOT NULL,
		amount REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades (date);
	CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades (strategy);
	CREATE INDEX IF NOT EXISTS idx_adjustments_date ON adjustments (date);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- TradeRepository Implementation ---

const tradeColumns = `id, date, created_at, competition, home_team, away_team, strategy,
	odds, stake_percent, stake_amount, result, profit_loss, roi, points, daily_pl, tp_sl`

// Create saves a new trade. The trade must already carry its ID.
func (r *Repository) Create(ctx context.Context, trade *domain.Trade) error {
	const query = `
	INSERT INTO trades (id, date, created_at, competition, home_team, away_team, strategy,
	                    odds, stake_percent, stake_amount, result, profit_loss, roi, points, daily_pl, tp_sl)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID, trade.Date, nullTime(trade.CreatedAt), trade.Competition, trade.HomeTeam, trade.AwayTeam,
		trade.Strategy, trade.Odds, trade.StakePercent, trade.StakeAmount, trade.Result,
		trade.ProfitLoss, trade.ROI, trade.Points, trade.DailyPL, trade.TpSl)
	if err != nil {
		return fmt.Errorf("failed to insert trade %s: %w", trade.ID, err)
	}
	r.logger.Debug(ctx, "Trade created", map[string]interface{}{"tradeID": trade.ID, "result": trade.Result})
	return nil
}

// Update modifies an existing trade, including its derived fields.
func (r *Repository) Update(ctx context.Context, trade *domain.Trade) error {
	const query = `
	UPDATE trades
	SET date = ?, created_at = ?, competition = ?, home_team = ?, away_team = ?, strategy = ?,
	    odds = ?, stake_percent = ?, stake_amount = ?, result = ?, profit_loss = ?, roi = ?,
	    points = ?, daily_pl = ?, tp_sl = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		trade.Date, nullTime(trade.CreatedAt), trade.Competition, trade.HomeTeam, trade.AwayTeam,
		trade.Strategy, trade.Odds, trade.StakePercent, trade.StakeAmount, trade.Result,
		trade.ProfitLoss, trade.ROI, trade.Points, trade.DailyPL, trade.TpSl,
		trade.ID)
	if err != nil {
		return fmt.Errorf("failed to update trade %s: %w", trade.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for trade %s: %w", trade.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade %s not found for update: %w", trade.ID, ports.ErrNotFound)
	}
	return nil
}

// Delete removes a trade by ID.
func (r *Repository) Delete(ctx context.Context, tradeID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade %s: %w", tradeID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete of trade %s: %w", tradeID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade %s not found for delete: %w", tradeID, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade deleted", map[string]interface{}{"tradeID": tradeID})
	return nil
}

// FindByID retrieves a trade by its unique ID. Returns nil, nil if not found.
func (r *Repository) FindByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, tradeID)
	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query trade %s: %w", tradeID, err)
	}
	return trade, nil
}

// FindAll retrieves every trade, ordered by date descending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all trades: %w", err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// FindBetween retrieves trades with start <= date < end, date descending.
func (r *Repository) FindBetween(ctx context.Context, start, end time.Time) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE date >= ? AND date < ? ORDER BY date DESC, id DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades between %s and %s: %w", start, end, err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// ReplaceDerived rewrites the derived fields of every listed trade in one
// transaction, so a recalculation pass lands atomically or not at all.
func (r *Repository) ReplaceDerived(ctx context.Context, trades []*domain.Trade) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin derived-field transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE trades SET profit_loss = ?, roi = ?, points = ?, daily_pl = ?, tp_sl = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare derived-field update: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx, t.ProfitLoss, t.ROI, t.Points, t.DailyPL, t.TpSl, t.ID); err != nil {
			return fmt.Errorf("failed to update derived fields of trade %s: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit derived-field transaction: %w", err)
	}
	r.logger.Debug(ctx, "Derived fields replaced", map[string]interface{}{"trades": len(trades)})
	return nil
}

// --- SettingsRepository Implementation ---

// Load retrieves the settings record. Returns nil, nil when none saved yet.
func (r *Repository) Load(ctx context.Context) (*domain.Settings, error) {
	const query = `
	SELECT initial_bank, current_bank, daily_tp, daily_sl, weekly_tp, weekly_sl, monthly_tp, monthly_sl
	FROM settings WHERE id = 1`

	s := &domain.Settings{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.InitialBank, &s.CurrentBank, &s.DailyTP, &s.DailySL,
		&s.WeeklyTP, &s.WeeklySL, &s.MonthlyTP, &s.MonthlySL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// Save persists the settings record wholesale (single-row upsert).
func (r *Repository) Save(ctx context.Context, s *domain.Settings) error {
	const query = `
	INSERT INTO settings (id, initial_bank, current_bank, daily_tp, daily_sl, weekly_tp, weekly_sl, monthly_tp, monthly_sl)
	VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		initial_bank = excluded.initial_bank,
		current_bank = excluded.current_bank,
		daily_tp = excluded.daily_tp,
		daily_sl = excluded.daily_sl,
		weekly_tp = excluded.weekly_tp,
		weekly_sl = excluded.weekly_sl,
		monthly_tp = excluded.monthly_tp,
		monthly_sl = excluded.monthly_sl`

	_, err := r.db.ExecContext(ctx, query,
		s.InitialBank, s.CurrentBank, s.DailyTP, s.DailySL,
		s.WeeklyTP, s.WeeklySL, s.MonthlyTP, s.MonthlySL)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	r.logger.Debug(ctx, "Settings saved", map[string]interface{}{"initialBank": s.InitialBank})
	return nil
}

// --- AdjustmentRepository Implementation ---

type adjustmentStore struct {
	r *Repository
}

// Adjustments returns a view of the repository implementing
// ports.AdjustmentRepository.
func (r *Repository) Adjustments() ports.AdjustmentRepository {
	return &adjustmentStore{r: r}
}

// Create saves a new adjustment. The adjustment must carry its ID.
func (a *adjustmentStore) Create(ctx context.Context, adj *domain.BankrollAdjustment) error {
	const query = `INSERT INTO adjustments (id, date, kind, amount) VALUES (?, ?, ?, ?)`
	_, err := a.r.db.ExecContext(ctx, query, adj.ID, adj.Date, adj.Kind, adj.Amount)
	if err != nil {
		return fmt.Errorf("failed to insert adjustment %s: %w", adj.ID, err)
	}
	a.r.logger.Debug(ctx, "Adjustment created", map[string]interface{}{"adjustmentID": adj.ID, "kind": adj.Kind})
	return nil
}

// Delete removes an adjustment by ID.
func (a *adjustmentStore) Delete(ctx context.Context, adjID string) error {
	result, err := a.r.db.ExecContext(ctx, `DELETE FROM adjustments WHERE id = ?`, adjID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment %s: %w", adjID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete of adjustment %s: %w", adjID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("adjustment %s not found for delete: %w", adjID, ports.ErrNotFound)
	}
	return nil
}

// FindAll retrieves every adjustment, ordered by date ascending.
func (a *adjustmentStore) FindAll(ctx context.Context) ([]*domain.BankrollAdjustment, error) {
	rows, err := a.r.db.QueryContext(ctx, `SELECT id, date, kind, amount FROM adjustments ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := make([]*domain.BankrollAdjustment, 0)
	for rows.Next() {
		adj := &domain.BankrollAdjustment{}
		var kind string
		if err := rows.Scan(&adj.ID, &adj.Date, &kind, &adj.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adj.Kind = domain.AdjustmentKind(kind)
		adjustments = append(adjustments, adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment rows: %w", err)
	}
	return adjustments, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTrade scans a row into a domain.Trade struct.
func scanTrade(s scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var createdAt sql.NullTime
	var result, tpSl string
	err := s.Scan(
		&t.ID, &t.Date, &createdAt, &t.Competition, &t.HomeTeam, &t.AwayTeam, &t.Strategy,
		&t.Odds, &t.StakePercent, &t.StakeAmount, &result, &t.ProfitLoss, &t.ROI,
		&t.Points, &t.DailyPL, &tpSl)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	if createdAt.Valid {
		t.CreatedAt = createdAt.Time
	}
	t.Result = domain.Result(result)
	t.TpSl = domain.TpSlLabel(tpSl)
	return t, nil
}

func collectTrades(rows *sql.Rows) ([]*domain.Trade, error) {
	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
