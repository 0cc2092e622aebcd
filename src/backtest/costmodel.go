package backtest

import (
	"math"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

const daysPerYear = 365.0

// CostModel prices the frictions of a simulated round trip: per-share
// commission and overnight cost of carry. All methods are pure.
type CostModel struct {
	PerShareRate float64
	LongSpread   float64
	ShortSpread  float64
}

func NewCostModel(cfg PortfolioConfig) CostModel {
	return CostModel{
		PerShareRate: cfg.TransactionCostPerShare,
		LongSpread:   cfg.LongSpread,
		ShortSpread:  cfg.ShortSpread,
	}
}

// TransactionCost returns the commission for trading the given number of
// shares. Shares must be non-negative; cost is non-decreasing in shares.
func (m CostModel) TransactionCost(shares int64) float64 {
	return float64(shares) * m.PerShareRate
}

// FinancingCost returns the overnight carry charged on a position held for
// holdingDays calendar days at the given annual rate (in percent). A NaN
// rate means the rate provider had no observation and no fallback policy
// was supplied; that is a MissingRateError, never a guessed number.
func (m CostModel) FinancingCost(notional float64, annualRatePercent float64, holdingDays int, isLong bool) (float64, error) {
	if math.IsNaN(annualRatePercent) {
		return 0, &eventmodels.MissingRateError{}
	}

	if holdingDays < 0 {
		return 0, &eventmodels.InvalidConfigError{Field: "holding_days", Reason: "must be non-negative"}
	}

	spread := m.ShortSpread
	if isLong {
		spread = m.LongSpread
	}

	rate := annualRatePercent/100.0 + spread

	return notional * rate * float64(holdingDays) / daysPerYear, nil
}
