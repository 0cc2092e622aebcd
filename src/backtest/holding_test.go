package backtest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

func TestFixedHolding(t *testing.T) {
	t.Run("always returns the configured days", func(t *testing.T) {
		policy, err := NewFixedHolding(5)
		require.NoError(t, err)

		days, feasible := policy.HoldingDays(day(2), nil)
		assert.True(t, feasible)
		assert.Equal(t, 5, days)
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		_, err := NewFixedHolding(0)
		assert.Error(t, err)
	})
}

func TestRandomizedHolding(t *testing.T) {
	series := mustSeries(t, "AAPL", []eventmodels.Candle{
		{Date: day(2), Open: 100, Close: 101, Volume: 1e6},
		{Date: day(12), Open: 102, Close: 103, Volume: 1e6},
	})

	t.Run("draws stay in range and spread out", func(t *testing.T) {
		policy := NewRandomizedHolding(rand.New(rand.NewSource(42)))

		// last date is day 12, so max possible from day 2 is 10
		counts := make(map[int]int)
		for i := 0; i < 10000; i++ {
			days, feasible := policy.HoldingDays(day(2), series)
			require.True(t, feasible)
			require.GreaterOrEqual(t, days, 1)
			require.LessOrEqual(t, days, 10)
			counts[days]++
		}

		// uniform draws should occupy every bucket at roughly 1000 each
		assert.Len(t, counts, 10)
		for days, count := range counts {
			assert.Greater(t, count, 700, "bucket %d collapsed", days)
			assert.Less(t, count, 1300, "bucket %d overloaded", days)
		}
	})

	t.Run("no future data is infeasible", func(t *testing.T) {
		policy := NewRandomizedHolding(rand.New(rand.NewSource(42)))

		_, feasible := policy.HoldingDays(day(12), series)
		assert.False(t, feasible)
	})

	t.Run("empty series is infeasible", func(t *testing.T) {
		policy := NewRandomizedHolding(rand.New(rand.NewSource(42)))
		empty := mustSeries(t, "EMPTY", nil)

		_, feasible := policy.HoldingDays(day(2), empty)
		assert.False(t, feasible)
	})
}
