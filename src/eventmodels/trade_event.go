package eventmodels

import "time"

type StockSymbol string

func (s StockSymbol) String() string {
	return string(s)
}

// IndexChange identifies the index-rebalance category an event belongs to.
type IndexChange string

const (
	IndexChangeSP400 IndexChange = "S&P 400"
	IndexChangeSP500 IndexChange = "S&P 500"
	IndexChangeSP600 IndexChange = "S&P 600"

	// IndexChangeAll is a filter value, never present on an event row.
	IndexChangeAll IndexChange = "All"
)

// TradeEvent marks a candidate trade trigger: a ticker and the date the
// index change takes effect. Events are not unique; the same ticker may
// appear on multiple dates.
type TradeEvent struct {
	Ticker      StockSymbol
	TradeDate   time.Time
	IndexChange IndexChange
}
