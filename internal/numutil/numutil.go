// Package numutil holds the shared numeric helpers of the journal: locale
// tolerant number parsing, currency/percent formatting and the profit/loss
// formula for a single settled position.
package numutil

import (
	"fmt"
	"strconv"
	"strings"

	"betjournal/internal/domain"
)

// ParseFlexibleFloat parses a number the way journal imports show up in the
// wild: "1,234.56", "1.234,56", "1234,56", "€ 1 234,56". Currency symbols,
// spaces and NBSP grouping are stripped; the last separator wins as the
// decimal mark when both appear.
func ParseFlexibleFloat(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-', r == '+':
			return r
		default:
			return -1 // drop currency symbols, spaces, NBSP and the rest
		}
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric content in %q", s)
	}

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// "1.234,56": dots group, comma is the decimal mark
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// "1,234.56": commas group, dot is the decimal mark
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			// "1,234,567": commas can only be grouping
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case strings.Count(cleaned, ".") > 1:
		// "1.234.567": dots can only be grouping
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

// FormatCurrency renders an amount with the given currency symbol,
// e.g. "€1234.56" or "-€50.00".
func FormatCurrency(symbol string, amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// FormatPercent renders a percentage already expressed in [0,100].
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// ProfitLoss computes the signed P/L of a single settled position. A win
// returns the stake times the net odds, a loss forfeits the stake, VOID and
// OPEN contribute zero.
func ProfitLoss(stake, odds float64, result domain.Result) float64 {
	switch result {
	case domain.ResultWin:
		return stake * (odds - 1)
	case domain.ResultLose:
		return -stake
	default:
		return 0
	}
}

// ReturnOnInvestment computes P/L relative to the position's own stake, in
// percent. Zero stake yields zero rather than a division error.
func ReturnOnInvestment(profitLoss, stake float64) float64 {
	if stake == 0 {
		return 0
	}
	return profitLoss / stake * 100
}

// StakeFromPercent converts a percent-of-bankroll stake into a currency
// amount.
func StakeFromPercent(bank, percent float64) float64 {
	return bank * percent / 100
}
