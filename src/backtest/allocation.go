package backtest

import (
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

const (
	volumeLookbackDays    = 20
	maxShareOfDailyVolume = 0.01
)

// AllocatePositions derives an advisory per-ticker cap on position size
// from trailing average volume: at most 1% of the 20-day mean daily
// volume, and never more than an equal split of capital across events.
// The simulator core does not consult these caps; callers that want
// liquidity-aware sizing scale the portfolio capital with them.
func AllocatePositions(series map[eventmodels.StockSymbol]*eventmodels.PriceSeries, events []eventmodels.TradeEvent, capital float64) map[eventmodels.StockSymbol]float64 {
	allocations := make(map[eventmodels.StockSymbol]float64)
	if len(events) == 0 {
		return allocations
	}

	equalSplit := capital / float64(len(events))

	for _, event := range events {
		if _, ok := allocations[event.Ticker]; ok {
			continue
		}

		s, ok := series[event.Ticker]
		if !ok || s.Len() == 0 {
			log.Warnf("no volume data for %s, skipping allocation", event.Ticker)
			continue
		}

		volumes := s.Volumes()
		if len(volumes) > volumeLookbackDays {
			volumes = volumes[len(volumes)-volumeLookbackDays:]
		}

		avgVolume, err := stats.Mean(volumes)
		if err != nil {
			log.Warnf("failed to compute average volume for %s: %v", event.Ticker, err)
			continue
		}

		maxPosition := avgVolume * maxShareOfDailyVolume
		if maxPosition > equalSplit {
			maxPosition = equalSplit
		}

		allocations[event.Ticker] = maxPosition
	}

	return allocations
}
