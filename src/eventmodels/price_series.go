package eventmodels

import (
	"fmt"
	"math"
	"time"
)

// DateKey normalizes a timestamp to its calendar date for series lookups.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// PriceSeries is a per-ticker, ascending-by-date run of daily candles.
// Dates may have gaps (non-trading days); lookups are exact-date and fail
// explicitly rather than interpolate.
type PriceSeries struct {
	Symbol  StockSymbol
	candles []Candle
	byDate  map[string]int
}

func NewPriceSeries(symbol StockSymbol, candles []Candle) (*PriceSeries, error) {
	byDate := make(map[string]int, len(candles))

	for i, c := range candles {
		if i > 0 && !candles[i-1].Date.Before(c.Date) {
			return nil, &DataProviderError{
				Provider: "prices",
				Err:      fmt.Errorf("candles for %s are not strictly increasing at %s", symbol, DateKey(c.Date)),
			}
		}

		byDate[DateKey(c.Date)] = i
	}

	return &PriceSeries{
		Symbol:  symbol,
		candles: candles,
		byDate:  byDate,
	}, nil
}

func (s *PriceSeries) Len() int {
	return len(s.candles)
}

// OpenOn returns the opening price recorded for exactly the given date.
// A missing date or a NaN fill both yield a MissingPriceError.
func (s *PriceSeries) OpenOn(date time.Time) (float64, error) {
	i, ok := s.byDate[DateKey(date)]
	if !ok || math.IsNaN(s.candles[i].Open) {
		return 0, &MissingPriceError{Ticker: s.Symbol, Date: date, Field: "open"}
	}

	return s.candles[i].Open, nil
}

// CloseOn returns the closing price recorded for exactly the given date.
func (s *PriceSeries) CloseOn(date time.Time) (float64, error) {
	i, ok := s.byDate[DateKey(date)]
	if !ok || math.IsNaN(s.candles[i].Close) {
		return 0, &MissingPriceError{Ticker: s.Symbol, Date: date, Field: "close"}
	}

	return s.candles[i].Close, nil
}

// LastDate returns the final observation date, or false for an empty series.
func (s *PriceSeries) LastDate() (time.Time, bool) {
	if len(s.candles) == 0 {
		return time.Time{}, false
	}

	return s.candles[len(s.candles)-1].Date, true
}

// Window returns the candles with dates in [from, to], inclusive.
func (s *PriceSeries) Window(from, to time.Time) []Candle {
	var out []Candle
	for _, c := range s.candles {
		if c.Date.Before(from) || c.Date.After(to) {
			continue
		}

		out = append(out, c)
	}

	return out
}

// Volumes returns the volume column in date order.
func (s *PriceSeries) Volumes() []float64 {
	out := make([]float64, 0, len(s.candles))
	for _, c := range s.candles {
		out = append(out, c.Volume)
	}

	return out
}
