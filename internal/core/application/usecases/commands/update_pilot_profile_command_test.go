package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdatePilotProfileCommand(t *testing.T) {
	t.Run("should create command with valid parameters", func(t *testing.T) {
		pilotID := kernel.NewUUID()

		cmd, err := commands.NewUpdatePilotProfileCommand(pilotID, "Ravi Kumar", "+91-98-0000-1111", "MH-14-XY-9876", 750)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, pilotID, cmd.PilotID())
		assert.Equal(t, "MH-14-XY-9876", cmd.Profile().VehicleReg())
		assert.Equal(t, 750, cmd.Profile().Capacity())
	})

	t.Run("should apply the profile validation rules", func(t *testing.T) {
		_, err := commands.NewUpdatePilotProfileCommand(kernel.NewUUID(), "", "+91-98-0000-1111", "MH-14-XY-9876", 750)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = commands.NewUpdatePilotProfileCommand(kernel.NewUUID(), "Ravi Kumar", "+91-98-0000-1111", "MH-14-XY-9876", -1)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject empty pilot id", func(t *testing.T) {
		_, err := commands.NewUpdatePilotProfileCommand(kernel.UUID{}, "Ravi Kumar", "+91-98-0000-1111", "MH-14-XY-9876", 750)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject command created without constructor", func(t *testing.T) {
		var cmd commands.UpdatePilotProfileCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrUpdatePilotProfileCommandIsNotConstructed)
	})
}
