package backtest

import (
	"time"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

// HedgePnl computes the PnL of a benchmark position opened on the first
// observation at or after entryDate and closed on the last observation at
// or before exitDate. Windows with fewer than two observations return 0:
// short or data-sparse windows degrade to no hedge effect instead of
// failing the trade.
//
// The hedge leg is always long the benchmark, independent of the primary
// trade's direction.
func HedgePnl(entryDate, exitDate time.Time, benchmark *eventmodels.PriceSeries, notional float64) float64 {
	if benchmark == nil {
		return 0
	}

	window := benchmark.Window(entryDate, exitDate)
	if len(window) < 2 {
		return 0
	}

	entryOpen := window[0].Open
	exitClose := window[len(window)-1].Close

	hedgeSize := notional / entryOpen

	return hedgeSize * (exitClose - entryOpen)
}
