package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimelineEntry(t *testing.T) {
	t.Run("should create a valid entry", func(t *testing.T) {
		entry, err := order.NewTimelineEntry(order.Confirmed, testNow, "payment confirmed", "payment-provider")

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, entry.Status())
		assert.True(t, entry.At().Equal(testNow))
		assert.Equal(t, "payment confirmed", entry.Note())
		assert.Equal(t, "payment-provider", entry.Actor())
	})

	t.Run("should allow an empty note", func(t *testing.T) {
		entry, err := order.NewTimelineEntry(order.Placed, testNow, "", "customer")

		require.NoError(t, err)
		assert.Empty(t, entry.Note())
	})

	t.Run("should reject an invalid status", func(t *testing.T) {
		_, err := order.NewTimelineEntry(order.Unknown, testNow, "note", "actor")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a zero timestamp", func(t *testing.T) {
		_, err := order.NewTimelineEntry(order.Placed, time.Time{}, "note", "actor")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "at")
	})

	t.Run("should reject an empty actor", func(t *testing.T) {
		_, err := order.NewTimelineEntry(order.Placed, testNow, "note", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "actor")
	})
}
