package eventmodels

import "time"

// SimulatedTrade is one round-trip produced by the simulator. It is never
// mutated after creation.
type SimulatedTrade struct {
	Ticker            StockSymbol
	EntryDate         time.Time
	ExitDate          time.Time
	HoldingPeriodDays int
	EntryPrice        float64
	ExitPrice         float64
	Shares            int64
	GrossPnl          float64
	TransactionCost   float64
	FinancingCost     float64

	// HedgePnl is nil when hedging was disabled for the run; a non-nil
	// zero means the hedge was computed and came out flat.
	HedgePnl *float64

	NetPnl float64
}
