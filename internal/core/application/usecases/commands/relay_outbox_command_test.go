package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelayOutboxCommand(t *testing.T) {
	t.Run("should create command with a positive batch size", func(t *testing.T) {
		cmd, err := commands.NewRelayOutboxCommand(50)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, 50, cmd.BatchSize())
	})

	t.Run("should reject a non-positive batch size", func(t *testing.T) {
		_, err := commands.NewRelayOutboxCommand(0)
		assert.ErrorIs(t, err, commands.ErrBatchSizeIsInvalid)

		_, err = commands.NewRelayOutboxCommand(-10)
		assert.ErrorIs(t, err, commands.ErrBatchSizeIsInvalid)
	})

	t.Run("should reject command created without constructor", func(t *testing.T) {
		var cmd commands.RelayOutboxCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrRelayOutboxCommandIsNotConstructed)
	})
}
