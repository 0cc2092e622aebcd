package backtest

import (
	"math/rand"
	"time"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

// HoldingPeriodPolicy decides how many calendar days a simulated position
// is held. A false second return means no feasible holding period exists
// for the event and it should be skipped.
type HoldingPeriodPolicy interface {
	HoldingDays(tradeDate time.Time, series *eventmodels.PriceSeries) (int, bool)
}

// FixedHolding holds every trade for the same number of calendar days.
type FixedHolding struct {
	Days int
}

func NewFixedHolding(days int) (FixedHolding, error) {
	if days < 1 {
		return FixedHolding{}, &eventmodels.InvalidConfigError{Field: "holding_days", Reason: "must be at least 1"}
	}

	return FixedHolding{Days: days}, nil
}

func (p FixedHolding) HoldingDays(tradeDate time.Time, series *eventmodels.PriceSeries) (int, bool) {
	return p.Days, true
}

// RandomizedHolding draws an integer holding period uniformly from
// [1, maxPossible], where maxPossible is the number of days between the
// trade date and the ticker's last available price date. Events with no
// future data (maxPossible < 1) are infeasible.
type RandomizedHolding struct {
	rng *rand.Rand
}

// NewRandomizedHolding takes its random source explicitly so runs can be
// made reproducible with a fixed seed.
func NewRandomizedHolding(rng *rand.Rand) RandomizedHolding {
	return RandomizedHolding{rng: rng}
}

func (p RandomizedHolding) HoldingDays(tradeDate time.Time, series *eventmodels.PriceSeries) (int, bool) {
	last, ok := series.LastDate()
	if !ok {
		return 0, false
	}

	maxPossible := int(last.Sub(tradeDate).Hours() / 24)
	if maxPossible < 1 {
		return 0, false
	}

	return 1 + p.rng.Intn(maxPossible), true
}
