package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betjournal/internal/adapters/logger"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_PATH", "CURRENCY_SYMBOL", "INITIAL_BANKROLL",
		"DAILY_TP_PERCENT", "DAILY_SL_PERCENT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "./data/betjournal.db", cfg.DBPath)
	assert.Equal(t, "€", cfg.CurrencySymbol)
	assert.Equal(t, 1000.0, cfg.InitialBankroll)
	assert.Zero(t, cfg.DailyTPPercent)
	assert.Zero(t, cfg.DailySLPercent)
	assert.Equal(t, logger.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/test-journal.db")
	t.Setenv("CURRENCY_SYMBOL", "£")
	t.Setenv("INITIAL_BANKROLL", "2500")
	t.Setenv("DAILY_TP_PERCENT", "3")
	t.Setenv("DAILY_SL_PERCENT", "-5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test-journal.db", cfg.DBPath)
	assert.Equal(t, "£", cfg.CurrencySymbol)
	assert.Equal(t, 2500.0, cfg.InitialBankroll)
	assert.Equal(t, 3.0, cfg.DailyTPPercent)
	assert.Equal(t, -5.0, cfg.DailySLPercent)
	assert.Equal(t, logger.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_ValidationErrorsAccumulate(t *testing.T) {
	t.Setenv("INITIAL_BANKROLL", "-100")
	t.Setenv("DAILY_TP_PERCENT", "-3")
	t.Setenv("DAILY_SL_PERCENT", "5")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INITIAL_BANKROLL")
	assert.Contains(t, err.Error(), "DAILY_TP_PERCENT")
	assert.Contains(t, err.Error(), "DAILY_SL_PERCENT")
}

func TestLoadConfig_InvalidBankrollValue(t *testing.T) {
	t.Setenv("INITIAL_BANKROLL", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid INITIAL_BANKROLL")
}

func TestSeedSettings(t *testing.T) {
	cfg := &Config{
		InitialBankroll: 1500,
		DailyTPPercent:  3,
		DailySLPercent:  -5,
		WeeklyTPPercent: 10,
		MonthTPPercent:  20,
	}

	seed := cfg.SeedSettings()
	assert.Equal(t, 1500.0, seed.InitialBank)
	assert.Equal(t, 3.0, seed.DailyTP)
	assert.Equal(t, -5.0, seed.DailySL)
	assert.Equal(t, 10.0, seed.WeeklyTP)
	assert.Equal(t, 20.0, seed.MonthlyTP)
}
