package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssueHandoffCodeCommand(t *testing.T) {
	t.Run("should create command with valid order id", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewIssueHandoffCodeCommand(orderID)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
	})

	t.Run("should reject empty order id", func(t *testing.T) {
		_, err := commands.NewIssueHandoffCodeCommand(kernel.UUID{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject command created without constructor", func(t *testing.T) {
		var cmd commands.IssueHandoffCodeCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrIssueHandoffCodeCommandIsNotConstructed)
	})
}
