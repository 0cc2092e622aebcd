package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

func TestSummarize(t *testing.T) {
	t.Run("totals and counts", func(t *testing.T) {
		trades := []*eventmodels.SimulatedTrade{
			{Ticker: "A", NetPnl: 100},
			{Ticker: "B", NetPnl: -40},
			{Ticker: "C", NetPnl: 250},
			{Ticker: "D", NetPnl: -10},
		}

		summary := Summarize(trades)

		assert.InDelta(t, 350.0, summary.TotalProfit, 1e-9)
		assert.InDelta(t, -50.0, summary.TotalLoss, 1e-9)
		assert.InDelta(t, 300.0, summary.NetPnl, 1e-9)
		assert.Equal(t, 2, summary.WinningCount)
		assert.Equal(t, 2, summary.LosingCount)
		assert.InDelta(t, 75.0, summary.MeanNetPnl, 1e-9)
	})

	t.Run("empty input yields zero summary", func(t *testing.T) {
		summary := Summarize(nil)

		assert.Equal(t, Summary{}, summary)
	})

	t.Run("render includes every summary line", func(t *testing.T) {
		out := Summarize([]*eventmodels.SimulatedTrade{{Ticker: "A", NetPnl: 1234.5}}).Render()

		assert.Contains(t, out, "Total Profit")
		assert.Contains(t, out, "Net PnL")
		assert.Contains(t, out, "1,234.50")
	})
}

func TestSortByNetPnlDesc(t *testing.T) {
	t.Run("descending order", func(t *testing.T) {
		trades := []*eventmodels.SimulatedTrade{
			{Ticker: "A", NetPnl: 10},
			{Ticker: "B", NetPnl: 30},
			{Ticker: "C", NetPnl: 20},
		}

		sorted := SortByNetPnlDesc(trades)

		require.Len(t, sorted, 3)
		assert.Equal(t, eventmodels.StockSymbol("B"), sorted[0].Ticker)
		assert.Equal(t, eventmodels.StockSymbol("C"), sorted[1].Ticker)
		assert.Equal(t, eventmodels.StockSymbol("A"), sorted[2].Ticker)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		trades := []*eventmodels.SimulatedTrade{
			{Ticker: "FIRST", NetPnl: 10},
			{Ticker: "SECOND", NetPnl: 10},
			{Ticker: "THIRD", NetPnl: 10},
		}

		sorted := SortByNetPnlDesc(trades)

		assert.Equal(t, eventmodels.StockSymbol("FIRST"), sorted[0].Ticker)
		assert.Equal(t, eventmodels.StockSymbol("SECOND"), sorted[1].Ticker)
		assert.Equal(t, eventmodels.StockSymbol("THIRD"), sorted[2].Ticker)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		trades := []*eventmodels.SimulatedTrade{
			{Ticker: "A", NetPnl: 10},
			{Ticker: "B", NetPnl: 30},
		}

		SortByNetPnlDesc(trades)

		assert.Equal(t, eventmodels.StockSymbol("A"), trades[0].Ticker)
	})
}

func TestCumulativeSeries(t *testing.T) {
	trades := []*eventmodels.SimulatedTrade{
		{Ticker: "A", EntryDate: day(3), ExitDate: day(8), NetPnl: 100},
		{Ticker: "B", EntryDate: day(2), ExitDate: day(8), NetPnl: -40},
		{Ticker: "C", EntryDate: day(3), ExitDate: day(5), NetPnl: 50},
	}

	t.Run("grouped by entry date", func(t *testing.T) {
		points := CumulativeSeries(trades, GroupByEntryDate)

		require.Len(t, points, 2)
		assert.Equal(t, day(2), points[0].Date)
		assert.InDelta(t, -40.0, points[0].RunningTotal, 1e-9)
		assert.Equal(t, day(3), points[1].Date)
		assert.InDelta(t, 110.0, points[1].RunningTotal, 1e-9)
	})

	t.Run("grouped by exit date", func(t *testing.T) {
		points := CumulativeSeries(trades, GroupByExitDate)

		require.Len(t, points, 2)
		assert.Equal(t, day(5), points[0].Date)
		assert.InDelta(t, 50.0, points[0].RunningTotal, 1e-9)
		assert.Equal(t, day(8), points[1].Date)
		assert.InDelta(t, 110.0, points[1].RunningTotal, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, CumulativeSeries(nil, GroupByEntryDate))
	})
}
