package numutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betjournal/internal/domain"
)

func TestParseFlexibleFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain", "1234.56", 1234.56},
		{"plain comma decimal", "1234,56", 1234.56},
		{"us grouping", "1,234.56", 1234.56},
		{"eu grouping", "1.234,56", 1234.56},
		{"comma grouping only", "1,234,567", 1234567},
		{"dot grouping only", "1.234.567", 1234567},
		{"currency prefix", "€ 1 234,56", 1234.56},
		{"currency suffix", "50.00 EUR", 50.0},
		{"negative", "-12,5", -12.5},
		{"explicit plus", "+3.25", 3.25},
		{"integer", "42", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleFloat(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseFlexibleFloat_Errors(t *testing.T) {
	for _, input := range []string{"", "abc", "€", "--", ".,"} {
		_, err := ParseFlexibleFloat(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "€1234.56", FormatCurrency("€", 1234.56))
	assert.Equal(t, "-€50.00", FormatCurrency("€", -50))
	assert.Equal(t, "0.00", FormatCurrency("", 0))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercent(12.345))
	assert.Equal(t, "-5.00%", FormatPercent(-5))
}

func TestProfitLoss(t *testing.T) {
	tests := []struct {
		name   string
		stake  float64
		odds   float64
		result domain.Result
		want   float64
	}{
		{"win pays net odds", 10, 2.0, domain.ResultWin, 10},
		{"win short odds", 100, 1.25, domain.ResultWin, 25},
		{"loss forfeits stake", 10, 2.0, domain.ResultLose, -10},
		{"void is flat", 10, 2.0, domain.ResultVoid, 0},
		{"open is flat", 10, 2.0, domain.ResultOpen, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProfitLoss(tt.stake, tt.odds, tt.result), 1e-9)
		})
	}
}

func TestReturnOnInvestment(t *testing.T) {
	assert.Equal(t, 100.0, ReturnOnInvestment(10, 10))
	assert.Equal(t, -100.0, ReturnOnInvestment(-10, 10))
	assert.Equal(t, 0.0, ReturnOnInvestment(10, 0), "zero stake never divides")
}

func TestStakeFromPercent(t *testing.T) {
	assert.Equal(t, 10.0, StakeFromPercent(1000, 1))
	assert.Equal(t, 25.0, StakeFromPercent(500, 5))
	assert.Equal(t, 0.0, StakeFromPercent(0, 5))
}
