package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"betjournal/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Database
	DBPath string

	// Display
	CurrencySymbol string

	// Bankroll seeds, used only when the settings table is empty. Thresholds
	// are percentages: TP positive, SL negative, 0 disables.
	InitialBankroll float64
	DailyTPPercent  float64
	DailySLPercent  float64
	WeeklyTPPercent float64
	WeeklySLPercent float64
	MonthTPPercent  float64
	MonthSLPercent  float64

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/betjournal.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Display
	cfg.CurrencySymbol = getEnv("CURRENCY_SYMBOL", "€")

	// Bankroll seeds
	cfg.InitialBankroll, err = getEnvAsFloatRequired("INITIAL_BANKROLL", 1000.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid INITIAL_BANKROLL: %v", err))
	} else if cfg.InitialBankroll <= 0 {
		errs = append(errs, "INITIAL_BANKROLL must be positive")
	}

	cfg.DailyTPPercent = getEnvAsFloat("DAILY_TP_PERCENT", 0)
	if cfg.DailyTPPercent < 0 {
		errs = append(errs, "DAILY_TP_PERCENT cannot be negative (use DAILY_SL_PERCENT for losses)")
	}
	cfg.DailySLPercent = getEnvAsFloat("DAILY_SL_PERCENT", 0)
	if cfg.DailySLPercent > 0 {
		errs = append(errs, "DAILY_SL_PERCENT must be negative or zero")
	}

	cfg.WeeklyTPPercent = getEnvAsFloat("WEEKLY_TP_PERCENT", 0)
	cfg.WeeklySLPercent = getEnvAsFloat("WEEKLY_SL_PERCENT", 0)
	cfg.MonthTPPercent = getEnvAsFloat("MONTHLY_TP_PERCENT", 0)
	cfg.MonthSLPercent = getEnvAsFloat("MONTHLY_SL_PERCENT", 0)

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr)

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// SeedSettings converts the config seed values into a settings record, used
// the first time the journal runs before any settings row exists.
func (c *Config) SeedSettings() SettingsSeed {
	return SettingsSeed{
		InitialBank: c.InitialBankroll,
		DailyTP:     c.DailyTPPercent,
		DailySL:     c.DailySLPercent,
		WeeklyTP:    c.WeeklyTPPercent,
		WeeklySL:    c.WeeklySLPercent,
		MonthlyTP:   c.MonthTPPercent,
		MonthlySL:   c.MonthSLPercent,
	}
}

// SettingsSeed carries the default bankroll settings without importing the
// domain package into config.
type SettingsSeed struct {
	InitialBank float64
	DailyTP     float64
	DailySL     float64
	WeeklyTP    float64
	WeeklySL    float64
	MonthlyTP   float64
	MonthlySL   float64
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
