package ports

import (
	"context"
	"time"

	"betjournal/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving journal
// trades. FindAll returns trades ordered by date descending (display order);
// the recalculation engine re-sorts internally and does not depend on it.
type TradeRepository interface {
	// Create saves a new trade. The trade must already carry its ID.
	Create(ctx context.Context, trade *domain.Trade) error
	// Update modifies an existing trade, including its derived fields.
	Update(ctx context.Context, trade *domain.Trade) error
	// Delete removes a trade by ID. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
	// FindByID retrieves a trade by its unique ID. Returns nil, nil if not found.
	FindByID(ctx context.Context, id string) (*domain.Trade, error)
	// FindAll retrieves every trade, ordered by date descending.
	FindAll(ctx context.Context) ([]*domain.Trade, error)
	// FindBetween retrieves trades with start <= date < end, date descending.
	FindBetween(ctx context.Context, start, end time.Time) ([]*domain.Trade, error)
	// ReplaceDerived rewrites the derived fields (points, daily P/L, TP/SL
	// label, profit/loss, ROI) of every listed trade in one transaction.
	ReplaceDerived(ctx context.Context, trades []*domain.Trade) error
}

// SettingsRepository stores the single per-user settings record.
type SettingsRepository interface {
	// Load retrieves the settings record. Returns nil, nil when none saved yet.
	Load(ctx context.Context) (*domain.Settings, error)
	// Save persists the settings record wholesale.
	Save(ctx context.Context, settings *domain.Settings) error
}

// AdjustmentRepository stores the chronological ledger of bankroll
// deposits and withdrawals.
type AdjustmentRepository interface {
	// Create saves a new adjustment. The adjustment must carry its ID.
	Create(ctx context.Context, adj *domain.BankrollAdjustment) error
	// Delete removes an adjustment by ID. Returns ErrNotFound if missing.
	Delete(ctx context.Context, id string) error
	// FindAll retrieves every adjustment, ordered by date ascending.
	FindAll(ctx context.Context) ([]*domain.BankrollAdjustment, error)
}
