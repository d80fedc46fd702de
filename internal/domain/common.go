package domain

// Result represents the settlement state of a trade.
type Result string

const (
	ResultOpen Result = "OPEN"
	ResultWin  Result = "WIN"
	ResultLose Result = "LOSE"
	ResultVoid Result = "VOID"
)

// IsClosed reports whether the result counts toward win-rate and streak
// calculations (WIN or LOSE only).
func (r Result) IsClosed() bool {
	return r == ResultWin || r == ResultLose
}

// IsSettled reports whether the result participates in bankroll-continuity
// summation (anything but OPEN; VOID contributes zero).
func (r Result) IsSettled() bool {
	return r != ResultOpen
}

// IsValid reports whether the value is one of the known result states.
func (r Result) IsValid() bool {
	switch r {
	case ResultOpen, ResultWin, ResultLose, ResultVoid:
		return true
	}
	return false
}

// TpSlLabel marks a trade that crossed a daily take-profit or stop-loss
// threshold during the chronological recalculation pass.
type TpSlLabel string

const (
	LabelNone         TpSlLabel = ""
	LabelTargetProfit TpSlLabel = "TARGET PROFIT"
	LabelStopLoss     TpSlLabel = "STOP LOSS"
)

// AlertTag is attached to a strategy or competition aggregate. At most one
// tag applies per group.
type AlertTag string

const (
	AlertNone              AlertTag = ""
	AlertLowSample         AlertTag = "LOW_SAMPLE"
	AlertConsecutiveLosses AlertTag = "CONSECUTIVE_LOSSES"
	AlertScaleUp           AlertTag = "SCALE_UP"
)

// AdjustmentKind indicates the direction of a bankroll adjustment.
type AdjustmentKind string

const (
	AdjustmentDeposit    AdjustmentKind = "DEPOSIT"
	AdjustmentWithdrawal AdjustmentKind = "WITHDRAWAL"
)

// StrategyNA is the grouping key used for trades without a strategy tag.
const StrategyNA = "N/A"
