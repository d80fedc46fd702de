package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"betjournal/config"
	"betjournal/internal/analytics"
	"betjournal/internal/domain"
	"betjournal/internal/id"
	"betjournal/internal/numutil"
	"betjournal/internal/ports"
)

// JournalService orchestrates the journal: it owns every mutation path and
// guarantees that each one is followed by a full recalculation pass. The
// enriched trade list is replaced wholesale on every pass; there is no
// incremental patching, because derived fields depend on the complete
// chronological history.
type JournalService struct {
	cfg          *config.Config
	logger       ports.Logger
	tradeRepo    ports.TradeRepository
	settingsRepo ports.SettingsRepository
	adjRepo      ports.AdjustmentRepository

	// mu serializes mutations and recalculations so rapid consecutive
	// writes cannot interleave their derived-field rewrites.
	mu       sync.Mutex
	enriched []*domain.Trade
}

// NewJournalService creates a new application service instance.
func NewJournalService(
	cfg *config.Config,
	logger ports.Logger,
	tradeRepo ports.TradeRepository,
	settingsRepo ports.SettingsRepository,
	adjRepo ports.AdjustmentRepository,
) (*JournalService, error) {
	if cfg == nil || logger == nil || tradeRepo == nil || settingsRepo == nil || adjRepo == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	return &JournalService{
		cfg:          cfg,
		logger:       logger,
		tradeRepo:    tradeRepo,
		settingsRepo: settingsRepo,
		adjRepo:      adjRepo,
	}, nil
}

// Settings returns the stored settings, falling back to the config seed
// values when no settings row exists yet.
func (s *JournalService) Settings(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if stored != nil {
		return stored, nil
	}
	seed := s.cfg.SeedSettings()
	return &domain.Settings{
		InitialBank: seed.InitialBank,
		DailyTP:     seed.DailyTP,
		DailySL:     seed.DailySL,
		WeeklyTP:    seed.WeeklyTP,
		WeeklySL:    seed.WeeklySL,
		MonthlyTP:   seed.MonthlyTP,
		MonthlySL:   seed.MonthlySL,
	}, nil
}

// SaveSettings persists the settings wholesale and re-derives everything,
// since thresholds and normalization depend on them.
func (s *JournalService) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	if settings == nil || settings.InitialBank <= 0 {
		return fmt.Errorf("initial bankroll must be positive: %w", ports.ErrInvalidRequest)
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return s.Refresh(ctx)
}

// AddTrade stores a new trade and re-derives the journal. The trade gets a
// generated ID when it has none. A percent-only stake is converted into a
// currency amount against the initial bankroll, and a missing profit/loss on
// a WIN or LOSE trade is derived from the stake and odds.
func (s *JournalService) AddTrade(ctx context.Context, trade *domain.Trade) error {
	if trade == nil {
		return fmt.Errorf("trade is required: %w", ports.ErrInvalidRequest)
	}
	if !trade.Result.IsValid() {
		return fmt.Errorf("unknown result %q: %w", trade.Result, ports.ErrInvalidRequest)
	}
	if trade.Odds < 1 {
		return fmt.Errorf("odds %.2f below 1.00: %w", trade.Odds, ports.ErrInvalidRequest)
	}
	if trade.ID == "" {
		trade.ID = id.New()
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now().UTC()
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	s.normalizeStakeAndPL(trade, settings)

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	s.logger.Info(ctx, "Trade added", map[string]interface{}{"tradeID": trade.ID, "result": trade.Result})
	return s.Refresh(ctx)
}

// UpdateTrade rewrites a trade's user-entered fields and re-derives the
// journal.
func (s *JournalService) UpdateTrade(ctx context.Context, trade *domain.Trade) error {
	if trade == nil || trade.ID == "" {
		return fmt.Errorf("trade with ID is required: %w", ports.ErrInvalidRequest)
	}
	if !trade.Result.IsValid() {
		return fmt.Errorf("unknown result %q: %w", trade.Result, ports.ErrInvalidRequest)
	}
	if trade.Odds < 1 {
		return fmt.Errorf("odds %.2f below 1.00: %w", trade.Odds, ports.ErrInvalidRequest)
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	s.normalizeStakeAndPL(trade, settings)

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	return s.Refresh(ctx)
}

// DeleteTrade removes a trade and re-derives the journal.
func (s *JournalService) DeleteTrade(ctx context.Context, tradeID string) error {
	if err := s.tradeRepo.Delete(ctx, tradeID); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return s.Refresh(ctx)
}

// ImportTrades stores a batch of trades (typically from a CSV import) and
// runs a single recalculation at the end.
func (s *JournalService) ImportTrades(ctx context.Context, trades []*domain.Trade) (int, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return 0, err
	}

	var stored int
	for _, trade := range trades {
		if trade.ID == "" {
			trade.ID = id.New()
		}
		s.normalizeStakeAndPL(trade, settings)
		if err := s.tradeRepo.Create(ctx, trade); err != nil {
			return stored, fmt.Errorf("failed to store imported trade: %w", err)
		}
		stored++
	}
	s.logger.Info(ctx, "Trades imported", map[string]interface{}{"count": stored})
	if err := s.Refresh(ctx); err != nil {
		return stored, err
	}
	return stored, nil
}

// Deposit records a capital deposit and re-derives the journal.
func (s *JournalService) Deposit(ctx context.Context, date time.Time, amount float64) error {
	return s.addAdjustment(ctx, date, domain.AdjustmentDeposit, amount)
}

// Withdraw records a capital withdrawal and re-derives the journal.
func (s *JournalService) Withdraw(ctx context.Context, date time.Time, amount float64) error {
	return s.addAdjustment(ctx, date, domain.AdjustmentWithdrawal, amount)
}

func (s *JournalService) addAdjustment(ctx context.Context, date time.Time, kind domain.AdjustmentKind, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("adjustment amount must be positive: %w", ports.ErrInvalidRequest)
	}
	adj := &domain.BankrollAdjustment{
		ID:     id.New(),
		Date:   date,
		Kind:   kind,
		Amount: amount,
	}
	if err := s.adjRepo.Create(ctx, adj); err != nil {
		return fmt.Errorf("failed to record adjustment: %w", err)
	}
	s.logger.Info(ctx, "Adjustment recorded", map[string]interface{}{"kind": kind, "amount": amount})
	return s.Refresh(ctx)
}

// Refresh runs the full recalculation pass: load all inputs, derive, persist
// the derived fields, replace the cached enriched list. Serialized so
// overlapping refreshes cannot interleave their writes.
func (s *JournalService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.tradeRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trades for recalculation: %w", err)
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}

	enriched := analytics.Recalculate(trades, settings)

	if err := s.tradeRepo.ReplaceDerived(ctx, enriched); err != nil {
		return fmt.Errorf("failed to persist derived fields: %w", err)
	}
	s.enriched = enriched
	s.logger.Debug(ctx, "Journal recalculated", map[string]interface{}{"trades": len(enriched)})
	return nil
}

// EnrichedTrades returns the current enriched list (newest first), loading
// and deriving it on first use.
func (s *JournalService) EnrichedTrades(ctx context.Context) ([]*domain.Trade, error) {
	s.mu.Lock()
	cached := s.enriched
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enriched, nil
}

// BuildReport assembles the full aggregate report for a time window. A zero
// window covers the whole history.
func (s *JournalService) BuildReport(ctx context.Context, win analytics.Window) (*domain.Report, error) {
	trades, err := s.EnrichedTrades(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.adjRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustments: %w", err)
	}

	now := time.Now().UTC()
	windowed := win.Filter(trades)
	overview := analytics.Overview(trades, settings, adjustments, win)
	risk := analytics.Risk(windowed, overview.StartingBank)

	report := &domain.Report{
		GeneratedAt:  now,
		WindowStart:  win.Start,
		WindowEnd:    win.End,
		Overview:     overview,
		Risk:         risk,
		Behavior:     analytics.Behavior(windowed),
		Strategies:   analytics.ByStrategy(windowed, settings),
		Competitions: analytics.ByCompetition(windowed, settings),
		OddsRanges:   analytics.ByOddsRange(windowed),
		DaysOfWeek:   analytics.ByDayOfWeek(windowed),
		HourRanges:   analytics.ByHourRange(windowed),
		Monthly:      analytics.CompareMonths(trades, settings, adjustments, now),
		Insights:     analytics.GenerateInsights(overview, risk),
	}
	return report, nil
}

// normalizeStakeAndPL fills the derivable user-entered fields: a currency
// stake from a percent-only stake, a percent stake from a currency-only
// stake, and the formula profit/loss for settled trades that carry none.
func (s *JournalService) normalizeStakeAndPL(trade *domain.Trade, settings *domain.Settings) {
	bank := settings.InitialBank
	if trade.StakeAmount == 0 && trade.StakePercent > 0 && bank > 0 {
		trade.StakeAmount = numutil.StakeFromPercent(bank, trade.StakePercent)
	}
	if trade.StakePercent == 0 && trade.StakeAmount > 0 && bank > 0 {
		trade.StakePercent = trade.StakeAmount / bank * 100
	}

	switch trade.Result {
	case domain.ResultWin, domain.ResultLose:
		if trade.ProfitLoss == 0 {
			trade.ProfitLoss = numutil.ProfitLoss(trade.StakeAmount, trade.Odds, trade.Result)
		}
	default:
		trade.ProfitLoss = 0
	}
	trade.ROI = numutil.ReturnOnInvestment(trade.ProfitLoss, trade.StakeAmount)
}
