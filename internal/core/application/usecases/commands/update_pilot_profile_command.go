package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/pilot"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePilotProfileCommandIsNotConstructed = errors.New(
	"UpdatePilotProfileCommand must be created via NewUpdatePilotProfileCommand constructor",
)

// UpdatePilotProfileCommand represents a pilot's corrected resubmission of
// their own profile. The whole profile is replaced; partial edits are not a
// thing. Orders already claimed keep the driver snapshot taken at claim
// time.
type UpdatePilotProfileCommand struct { //nolint:recvcheck //using for validation
	pilotID kernel.UUID
	profile pilot.Profile

	guard guard.ConstructorGuard
}

// NewUpdatePilotProfileCommand creates a command to replace a pilot's
// profile.
func NewUpdatePilotProfileCommand(
	pilotID kernel.UUID,
	name string,
	phone string,
	vehicleReg string,
	capacity int,
) (UpdatePilotProfileCommand, error) {
	command := UpdatePilotProfileCommand{
		guard: guard.NewConstructorGuard(),
	}

	profile, err := pilot.NewProfile(name, phone, vehicleReg, capacity)
	if err != nil {
		return UpdatePilotProfileCommand{}, err
	}

	if err := command.setPilotID(pilotID); err != nil {
		return UpdatePilotProfileCommand{}, err
	}

	command.profile = profile
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdatePilotProfileCommandIsNotConstructed if validation fails.
func (c UpdatePilotProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePilotProfileCommandIsNotConstructed)
}

// PilotID returns the pilot whose profile is replaced.
func (c UpdatePilotProfileCommand) PilotID() kernel.UUID {
	return c.pilotID
}

// Profile returns the validated replacement profile.
func (c UpdatePilotProfileCommand) Profile() pilot.Profile {
	return c.profile
}

func (c *UpdatePilotProfileCommand) setPilotID(pilotID kernel.UUID) error {
	if err := pilotID.Validate(); err != nil {
		return err
	}

	c.pilotID = pilotID
	return nil
}
