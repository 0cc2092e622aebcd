package backtest

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

// PortfolioConfig holds the simulation-wide parameters. It is read-only
// for the duration of a run.
type PortfolioConfig struct {
	// Capital is the notional allocated per trade, before share rounding.
	Capital float64 `yaml:"capital"`

	// TransactionCostPerShare is the per-share commission in dollars.
	TransactionCostPerShare float64 `yaml:"transaction_cost_per_share"`

	// LongSpread and ShortSpread are cost-of-carry spreads added to the
	// annual financing rate. The long spread exceeds the short-borrow
	// spread in this model.
	LongSpread  float64 `yaml:"long_spread"`
	ShortSpread float64 `yaml:"short_spread"`
}

func (c PortfolioConfig) Validate() error {
	if c.Capital <= 0 {
		return &eventmodels.InvalidConfigError{Field: "capital", Reason: fmt.Sprintf("must be positive, got %v", c.Capital)}
	}

	if c.TransactionCostPerShare < 0 {
		return &eventmodels.InvalidConfigError{Field: "transaction_cost_per_share", Reason: fmt.Sprintf("must be non-negative, got %v", c.TransactionCostPerShare)}
	}

	if c.LongSpread < 0 || c.ShortSpread < 0 {
		return &eventmodels.InvalidConfigError{Field: "spreads", Reason: "must be non-negative"}
	}

	return nil
}

// MarketDataConfig scopes the data providers: which date range to prefetch
// and which benchmark backs the hedge leg.
type MarketDataConfig struct {
	StartDate time.Time               `yaml:"start_date"`
	EndDate   time.Time               `yaml:"end_date"`
	Benchmark eventmodels.StockSymbol `yaml:"benchmark"`
}

func (c MarketDataConfig) Validate() error {
	if !c.StartDate.Before(c.EndDate) {
		return &eventmodels.InvalidConfigError{Field: "start_date", Reason: "must precede end_date"}
	}

	if c.Benchmark == "" {
		return &eventmodels.InvalidConfigError{Field: "benchmark", Reason: "must be set"}
	}

	return nil
}

type ConfigYAML struct {
	Portfolio  PortfolioConfig  `yaml:"portfolio"`
	MarketData MarketDataConfig `yaml:"market_data"`
}

func LoadConfig(path string) (*ConfigYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: failed to read %s: %w", path, err)
	}

	var cfg ConfigYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("LoadConfig: failed to unmarshal %s: %w", path, err)
	}

	if err := cfg.Portfolio.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.MarketData.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
