package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportLocationCommand(t *testing.T) {
	t.Run("should create command with valid parameters", func(t *testing.T) {
		pilotID := kernel.NewUUID()
		position := testCoordinates(t, 19.0760, 72.8777)

		cmd, err := commands.NewReportLocationCommand(pilotID, position)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, pilotID, cmd.PilotID())
		assert.Equal(t, position, cmd.Coordinates())
	})

	t.Run("should reject empty pilot id", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand(kernel.UUID{}, testCoordinates(t, 19.0760, 72.8777))

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject unconstructed coordinates", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand(kernel.NewUUID(), kernel.Coordinates{})

		require.Error(t, err)
	})

	t.Run("should reject command created without constructor", func(t *testing.T) {
		var cmd commands.ReportLocationCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrReportLocationCommandIsNotConstructed)
	})
}
