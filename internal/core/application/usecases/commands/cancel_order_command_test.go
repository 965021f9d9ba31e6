package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("should create command with valid parameters", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewCancelOrderCommand(orderID, "payment reversed", "payment-provider")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, "payment reversed", cmd.Reason())
		assert.Equal(t, "payment-provider", cmd.Actor())
	})

	t.Run("should allow an empty reason", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "", "operator")

		require.NoError(t, err)
		assert.Empty(t, cmd.Reason())
	})

	t.Run("should reject a missing actor", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "payment reversed", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("should reject empty order id", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.UUID{}, "", "operator")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject command created without constructor", func(t *testing.T) {
		var cmd commands.CancelOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
