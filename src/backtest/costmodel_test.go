package backtest

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

func TestTransactionCost(t *testing.T) {
	model := CostModel{PerShareRate: 0.01}

	t.Run("per share rate", func(t *testing.T) {
		assert.InDelta(t, 10.0, model.TransactionCost(1000), 1e-9)
	})

	t.Run("zero shares", func(t *testing.T) {
		assert.Equal(t, 0.0, model.TransactionCost(0))
	})

	t.Run("monotonically non-decreasing", func(t *testing.T) {
		prev := 0.0
		for shares := int64(0); shares <= 1000; shares += 100 {
			cost := model.TransactionCost(shares)
			assert.GreaterOrEqual(t, cost, prev)
			prev = cost
		}
	})
}

func TestFinancingCost(t *testing.T) {
	model := CostModel{PerShareRate: 0.01, LongSpread: 0.015, ShortSpread: 0.010}

	t.Run("long position carry", func(t *testing.T) {
		// 100000 * (0.05 + 0.015) * 5 / 365
		cost, err := model.FinancingCost(100000, 5.0, 5, true)
		require.NoError(t, err)
		assert.InDelta(t, 89.0410958904, cost, 1e-6)
	})

	t.Run("short borrow spread is lower than long carry spread", func(t *testing.T) {
		longCost, err := model.FinancingCost(100000, 5.0, 5, true)
		require.NoError(t, err)

		shortCost, err := model.FinancingCost(100000, 5.0, 5, false)
		require.NoError(t, err)

		assert.Greater(t, longCost, shortCost)
		assert.InDelta(t, 100000*(0.05+0.010)*5/365, shortCost, 1e-6)
	})

	t.Run("zero holding days", func(t *testing.T) {
		cost, err := model.FinancingCost(100000, 5.0, 0, true)
		require.NoError(t, err)
		assert.Equal(t, 0.0, cost)
	})

	t.Run("missing rate", func(t *testing.T) {
		_, err := model.FinancingCost(100000, math.NaN(), 5, true)

		var missingRate *eventmodels.MissingRateError
		assert.True(t, errors.As(err, &missingRate))
	})

	t.Run("negative holding days", func(t *testing.T) {
		_, err := model.FinancingCost(100000, 5.0, -1, true)

		var invalidConfig *eventmodels.InvalidConfigError
		assert.True(t, errors.As(err, &invalidConfig))
	})
}
