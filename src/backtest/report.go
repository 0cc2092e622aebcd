package backtest

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

// Summary aggregates a collection of simulated trades. Breakeven trades
// are excluded upstream, so there is no zero bucket.
type Summary struct {
	TotalProfit  float64
	TotalLoss    float64
	NetPnl       float64
	WinningCount int
	LosingCount  int
	MeanNetPnl   float64
	StdDevNetPnl float64
}

func Summarize(trades []*eventmodels.SimulatedTrade) Summary {
	var summary Summary

	netPnls := make([]float64, 0, len(trades))
	for _, t := range trades {
		summary.NetPnl += t.NetPnl
		netPnls = append(netPnls, t.NetPnl)

		if t.NetPnl > 0 {
			summary.TotalProfit += t.NetPnl
			summary.WinningCount++
		} else if t.NetPnl < 0 {
			summary.TotalLoss += t.NetPnl
			summary.LosingCount++
		}
	}

	if len(netPnls) > 0 {
		// stats errors only on empty input, which is guarded above
		summary.MeanNetPnl, _ = stats.Mean(netPnls)
		summary.StdDevNetPnl, _ = stats.StandardDeviation(netPnls)
	}

	return summary
}

func (s Summary) Render() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")

	display.WriteString("PnL Summary:\n")

	table.Append([]string{"Total Profit", p.Sprintf("$%.2f", s.TotalProfit)})
	table.Append([]string{"Total Loss", p.Sprintf("$%.2f", s.TotalLoss)})
	table.Append([]string{"Net PnL", p.Sprintf("$%.2f", s.NetPnl)})
	table.Append([]string{"Winning Trades", p.Sprintf("%d", s.WinningCount)})
	table.Append([]string{"Losing Trades", p.Sprintf("%d", s.LosingCount)})
	table.Append([]string{"Mean Net PnL", p.Sprintf("$%.2f", s.MeanNetPnl)})
	table.Append([]string{"Std Dev Net PnL", p.Sprintf("$%.2f", s.StdDevNetPnl)})

	table.Render()

	return display.String()
}

// SortByNetPnlDesc returns a new slice ordered by net PnL, highest first.
// The sort is stable: ties keep their input order.
func SortByNetPnlDesc(trades []*eventmodels.SimulatedTrade) []*eventmodels.SimulatedTrade {
	sorted := make([]*eventmodels.SimulatedTrade, len(trades))
	copy(sorted, trades)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NetPnl > sorted[j].NetPnl
	})

	return sorted
}

type GroupBy int

const (
	GroupByEntryDate GroupBy = iota
	GroupByExitDate
)

type CumulativePoint struct {
	Date         time.Time
	RunningTotal float64
}

// CumulativeSeries returns the running sum of net PnL grouped and ordered
// by entry or exit date, suitable for equity-curve charting.
func CumulativeSeries(trades []*eventmodels.SimulatedTrade, groupBy GroupBy) []CumulativePoint {
	totals := make(map[string]float64)
	dates := make(map[string]time.Time)

	for _, t := range trades {
		date := t.EntryDate
		if groupBy == GroupByExitDate {
			date = t.ExitDate
		}

		key := eventmodels.DateKey(date)
		totals[key] += t.NetPnl
		dates[key] = date
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var running float64
	points := make([]CumulativePoint, 0, len(keys))
	for _, key := range keys {
		running += totals[key]
		points = append(points, CumulativePoint{Date: dates[key], RunningTotal: running})
	}

	return points
}
