package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

func day(d int) time.Time {
	return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
}

func mustSeries(t *testing.T, symbol eventmodels.StockSymbol, candles []eventmodels.Candle) *eventmodels.PriceSeries {
	t.Helper()

	series, err := eventmodels.NewPriceSeries(symbol, candles)
	require.NoError(t, err)

	return series
}

func TestHedgePnl(t *testing.T) {
	benchmark := mustSeries(t, "SPY", []eventmodels.Candle{
		{Date: day(2), Open: 400, Close: 402, Volume: 1e6},
		{Date: day(3), Open: 403, Close: 404, Volume: 1e6},
		{Date: day(4), Open: 405, Close: 410, Volume: 1e6},
		{Date: day(9), Open: 411, Close: 412, Volume: 1e6},
	})

	t.Run("long benchmark leg over the window", func(t *testing.T) {
		// enters at the day-2 open, exits at the day-4 close
		pnl := HedgePnl(day(2), day(4), benchmark, 100000)
		assert.InDelta(t, 100000/400.0*(410-400), pnl, 1e-6)
	})

	t.Run("window endpoints snap to observations inside the range", func(t *testing.T) {
		// day 1 and day 5 are not observations; day 2 and day 4 are
		pnl := HedgePnl(day(1), day(5), benchmark, 100000)
		assert.InDelta(t, 100000/400.0*(410-400), pnl, 1e-6)
	})

	t.Run("single observation degrades to neutral", func(t *testing.T) {
		assert.Equal(t, 0.0, HedgePnl(day(9), day(10), benchmark, 100000))
	})

	t.Run("empty window degrades to neutral", func(t *testing.T) {
		assert.Equal(t, 0.0, HedgePnl(day(20), day(25), benchmark, 100000))
	})

	t.Run("nil benchmark degrades to neutral", func(t *testing.T) {
		assert.Equal(t, 0.0, HedgePnl(day(2), day(4), nil, 100000))
	})
}
