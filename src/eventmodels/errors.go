package eventmodels

import (
	"fmt"
	"time"
)

// MissingPriceError is recoverable: the event it concerns is skipped and
// the run continues.
type MissingPriceError struct {
	Ticker StockSymbol
	Date   time.Time
	Field  string
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("missing %s price for %s on %s", e.Field, e.Ticker, e.Date.Format("2006-01-02"))
}

// MissingRateError is recoverable: the rate provider has no observation
// for the requested date and no fallback policy was supplied.
type MissingRateError struct {
	Date time.Time
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no financing rate for %s", e.Date.Format("2006-01-02"))
}

// InvalidPriceError is fatal: a non-positive price indicates corrupt
// upstream data, not a market-data gap.
type InvalidPriceError struct {
	Ticker StockSymbol
	Date   time.Time
	Price  float64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price %v for %s on %s", e.Price, e.Ticker, e.Date.Format("2006-01-02"))
}

// InvalidConfigError is fatal: the simulation parameters themselves are
// unusable.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// DataProviderError wraps a failure from an external data collaborator.
// It is recoverable at the event level when scoped to a single ticker,
// fatal when it prevents loading the whole event set.
type DataProviderError struct {
	Provider string
	Err      error
}

func (e *DataProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *DataProviderError) Unwrap() error {
	return e.Err
}
