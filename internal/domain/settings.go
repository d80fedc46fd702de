package domain

import "time"

// Settings is the single per-user configuration record.
//
// InitialBank must be positive; a zero or missing value is treated by every
// consumer as a guarded default, never as a silent divide-by-zero. TP values
// are positive percentages, SL values negative percentages; zero disables
// the corresponding threshold.
type Settings struct {
	InitialBank float64 // Starting bankroll, currency
	CurrentBank float64 // Optional override of the computed bankroll (0 = unset)

	DailyTP   float64 // e.g. 3 means +3% of the start-of-day bankroll
	DailySL   float64 // e.g. -5 means -5% of the start-of-day bankroll
	WeeklyTP  float64
	WeeklySL  float64
	MonthlyTP float64
	MonthlySL float64
}

// BankrollAdjustment is a dated, signed capital event. Only adjustments
// strictly before a cutoff date count toward capital at that point in time.
type BankrollAdjustment struct {
	ID     string
	Date   time.Time
	Kind   AdjustmentKind
	Amount float64 // Always positive; Kind carries the sign
}

// Signed returns the amount with the sign implied by the adjustment kind.
func (a *BankrollAdjustment) Signed() float64 {
	if a.Kind == AdjustmentWithdrawal {
		return -a.Amount
	}
	return a.Amount
}
