package order_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricing(t *testing.T) {
	t.Run("should create pricing and derive the total", func(t *testing.T) {
		pricing, err := order.NewPricing(
			8.4,
			"city",
			"4-8 hours",
			decimal.NewFromInt(40),
			decimal.NewFromFloat(336.0),
			decimal.NewFromInt(2000),
		)

		require.NoError(t, err)
		assert.InDelta(t, 8.4, pricing.DistanceKm(), 1e-9)
		assert.Equal(t, "city", pricing.Zone())
		assert.Equal(t, "4-8 hours", pricing.Eta())
		assert.True(t, pricing.RatePerKm().Equal(decimal.NewFromInt(40)))
		assert.True(t, pricing.TransportCost().Equal(decimal.NewFromFloat(336.0)))
		assert.True(t, pricing.ItemsTotal().Equal(decimal.NewFromInt(2000)))
		assert.True(t, pricing.Total().Equal(decimal.NewFromInt(2336)))
	})

	t.Run("should accept zero distance and zero amounts", func(t *testing.T) {
		pricing, err := order.NewPricing(0, "local", "2-4 hours",
			decimal.Zero, decimal.Zero, decimal.Zero)

		require.NoError(t, err)
		assert.True(t, pricing.Total().Equal(decimal.Zero))
	})

	t.Run("should reject negative distance", func(t *testing.T) {
		_, err := order.NewPricing(-1, "local", "2-4 hours",
			decimal.Zero, decimal.Zero, decimal.Zero)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "distanceKm")
	})

	t.Run("should reject non-finite distance", func(t *testing.T) {
		for _, distance := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := order.NewPricing(distance, "local", "2-4 hours",
				decimal.Zero, decimal.Zero, decimal.Zero)

			require.Error(t, err, "distance %v must be rejected", distance)
		}
	})

	t.Run("should require zone and eta labels", func(t *testing.T) {
		_, err := order.NewPricing(1, "", "2-4 hours", decimal.Zero, decimal.Zero, decimal.Zero)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewPricing(1, "local", "", decimal.Zero, decimal.Zero, decimal.Zero)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		minusOne := decimal.NewFromInt(-1)

		_, err := order.NewPricing(1, "local", "2-4 hours", minusOne, decimal.Zero, decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ratePerKm")

		_, err = order.NewPricing(1, "local", "2-4 hours", decimal.Zero, minusOne, decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transportCost")

		_, err = order.NewPricing(1, "local", "2-4 hours", decimal.Zero, decimal.Zero, minusOne)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "itemsTotal")
	})
}
