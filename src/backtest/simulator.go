package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

// PriceProvider supplies per-ticker daily bars. An empty series is a valid
// response meaning no trades are possible for that ticker.
type PriceProvider interface {
	DailySeries(ctx context.Context, symbol eventmodels.StockSymbol) (*eventmodels.PriceSeries, error)
}

// RateProvider supplies the annual financing rate (in percent) in effect
// on a calendar date. "No data for this date" is an expected outcome,
// signalled with a MissingRateError.
type RateProvider interface {
	RateOn(ctx context.Context, date time.Time) (float64, error)
}

// SkippedEvent records an input event that produced no trade, with the
// reason it was dropped.
type SkippedEvent struct {
	Ticker    eventmodels.StockSymbol
	TradeDate time.Time
	Reason    string
}

type RunResult struct {
	RunID   uuid.UUID
	Trades  []*eventmodels.SimulatedTrade
	Skipped []SkippedEvent
}

// Simulator converts trade events into simulated round trips. It performs
// no I/O itself; all market data arrives through the injected providers.
type Simulator struct {
	cfg       PortfolioConfig
	costs     CostModel
	prices    PriceProvider
	rates     RateProvider
	policy    HoldingPeriodPolicy
	benchmark *eventmodels.PriceSeries
}

func NewSimulator(cfg PortfolioConfig, prices PriceProvider, rates RateProvider, policy HoldingPeriodPolicy) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Simulator{
		cfg:    cfg,
		costs:  NewCostModel(cfg),
		prices: prices,
		rates:  rates,
		policy: policy,
	}, nil
}

// EnableHedge turns on the benchmark hedge leg for every simulated trade.
func (s *Simulator) EnableHedge(benchmark *eventmodels.PriceSeries) {
	s.benchmark = benchmark
}

func (s *Simulator) skip(result *RunResult, event eventmodels.TradeEvent, reason string) {
	log.Warnf("skipping %s on %s: %s", event.Ticker, eventmodels.DateKey(event.TradeDate), reason)

	result.Skipped = append(result.Skipped, SkippedEvent{
		Ticker:    event.Ticker,
		TradeDate: event.TradeDate,
		Reason:    reason,
	})
}

// Run processes events in input order, producing at most one trade per
// event. Data gaps (missing price, missing rate, no future data) skip the
// event and continue; structurally invalid input (non-positive price)
// aborts the run with no partial output.
func (s *Simulator) Run(ctx context.Context, events []eventmodels.TradeEvent) (*RunResult, error) {
	result := &RunResult{RunID: uuid.New()}
	seriesCache := make(map[eventmodels.StockSymbol]*eventmodels.PriceSeries)

	log.Infof("run %s: simulating %d events", result.RunID, len(events))

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Simulator.Run: cancelled: %w", err)
		}

		series, ok := seriesCache[event.Ticker]
		if !ok {
			var err error
			series, err = s.prices.DailySeries(ctx, event.Ticker)
			if err != nil {
				s.skip(result, event, fmt.Sprintf("price data unavailable: %v", err))
				continue
			}

			seriesCache[event.Ticker] = series
		}

		if series.Len() == 0 {
			s.skip(result, event, "no price data for ticker")
			continue
		}

		entryPrice, err := series.OpenOn(event.TradeDate)
		if err != nil {
			s.skip(result, event, err.Error())
			continue
		}

		if entryPrice <= 0 {
			return nil, &eventmodels.InvalidPriceError{Ticker: event.Ticker, Date: event.TradeDate, Price: entryPrice}
		}

		holdingDays, feasible := s.policy.HoldingDays(event.TradeDate, series)
		if !feasible {
			s.skip(result, event, "insufficient future data to simulate an exit")
			continue
		}

		exitDate := event.TradeDate.AddDate(0, 0, holdingDays)

		exitPrice, err := series.CloseOn(exitDate)
		if err != nil {
			s.skip(result, event, err.Error())
			continue
		}

		shares := int64(math.Floor(s.cfg.Capital / entryPrice))
		if shares < 1 {
			shares = 1
		}

		grossPnl := (exitPrice - entryPrice) * float64(shares)
		txnCost := s.costs.TransactionCost(shares)

		rate, err := s.rates.RateOn(ctx, event.TradeDate)
		if err != nil {
			var missingRate *eventmodels.MissingRateError
			if errors.As(err, &missingRate) {
				s.skip(result, event, err.Error())
				continue
			}

			return nil, &eventmodels.DataProviderError{Provider: "rates", Err: err}
		}

		// The simulator always models long positions.
		financingCost, err := s.costs.FinancingCost(float64(shares)*entryPrice, rate, holdingDays, true)
		if err != nil {
			s.skip(result, event, err.Error())
			continue
		}

		var hedge *float64
		hedgeOffset := 0.0
		if s.benchmark != nil {
			h := HedgePnl(event.TradeDate, exitDate, s.benchmark, s.cfg.Capital)
			hedge = &h
			hedgeOffset = h
		}

		netPnl := grossPnl - txnCost - financingCost - hedgeOffset

		// Exactly-breakeven trades are excluded from the output.
		if netPnl == 0 {
			s.skip(result, event, "net pnl is zero")
			continue
		}

		result.Trades = append(result.Trades, &eventmodels.SimulatedTrade{
			Ticker:            event.Ticker,
			EntryDate:         event.TradeDate,
			ExitDate:          exitDate,
			HoldingPeriodDays: holdingDays,
			EntryPrice:        entryPrice,
			ExitPrice:         exitPrice,
			Shares:            shares,
			GrossPnl:          grossPnl,
			TransactionCost:   txnCost,
			FinancingCost:     financingCost,
			HedgePnl:          hedge,
			NetPnl:            netPnl,
		})
	}

	log.Infof("run %s: %d trades, %d skipped", result.RunID, len(result.Trades), len(result.Skipped))

	return result, nil
}
