package analytics

import (
	"time"

	"betjournal/internal/domain"
)

// CapitalBefore returns the total invested capital at a point in time: the
// initial bankroll plus every deposit/withdrawal dated strictly before the
// cutoff. A zero cutoff precedes everything, so no adjustment counts; an
// open-start window attributes the whole ledger to NetAdjustments instead,
// keeping each adjustment counted exactly once.
func CapitalBefore(initialBank float64, adjustments []*domain.BankrollAdjustment, cutoff time.Time) float64 {
	capital := initialBank
	if cutoff.IsZero() {
		return capital
	}
	for _, adj := range adjustments {
		if adj.Date.Before(cutoff) {
			capital += adj.Signed()
		}
	}
	return capital
}

// NetAdjustments sums the signed adjustments with from <= date < to. Zero
// bounds are open on that side.
func NetAdjustments(adjustments []*domain.BankrollAdjustment, from, to time.Time) float64 {
	var net float64
	for _, adj := range adjustments {
		if !from.IsZero() && adj.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !adj.Date.Before(to) {
			continue
		}
		net += adj.Signed()
	}
	return net
}
