package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/pilot"
	"dispatch/internal/pkg/guard"
)

var ErrCreatePilotCommandIsNotConstructed = errors.New(
	"CreatePilotCommand must be created via NewCreatePilotCommand constructor",
)

// CreatePilotCommand represents a request to register a new delivery pilot
// with their vehicle profile.
//
// Example:
//
//	pilotID := kernel.NewUUID()
//	cmd, err := NewCreatePilotCommand(pilotID, "Ravi Kumar", "+91-98-7654-3210", "MH-12-AB-1234", 500)
//	if err != nil {
//	    return fmt.Errorf("invalid pilot data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register pilot: %w", err)
//	}
type CreatePilotCommand struct { //nolint:recvcheck //using for validation
	pilotID kernel.UUID
	profile pilot.Profile

	guard guard.ConstructorGuard
}

// NewCreatePilotCommand creates a command to register a pilot.
// The profile fields follow the pilot package's validation rules.
func NewCreatePilotCommand(
	pilotID kernel.UUID,
	name string,
	phone string,
	vehicleReg string,
	capacity int,
) (CreatePilotCommand, error) {
	command := CreatePilotCommand{
		guard: guard.NewConstructorGuard(),
	}

	profile, err := pilot.NewProfile(name, phone, vehicleReg, capacity)
	if err != nil {
		return CreatePilotCommand{}, err
	}

	if err := command.setPilotID(pilotID); err != nil {
		return CreatePilotCommand{}, err
	}

	command.profile = profile
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePilotCommandIsNotConstructed if validation fails.
func (c CreatePilotCommand) Validate() error {
	return c.guard.Validate(ErrCreatePilotCommandIsNotConstructed)
}

// PilotID returns the identifier for the new pilot.
func (c CreatePilotCommand) PilotID() kernel.UUID {
	return c.pilotID
}

// Profile returns the validated vehicle profile.
func (c CreatePilotCommand) Profile() pilot.Profile {
	return c.profile
}

func (c *CreatePilotCommand) setPilotID(pilotID kernel.UUID) error {
	if err := pilotID.Validate(); err != nil {
		return err
	}

	c.pilotID = pilotID
	return nil
}
