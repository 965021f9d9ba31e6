package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand carries a pilot's position ping. Each report
// overwrites the previous one; there is no location history.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	pilotID     kernel.UUID
	coordinates kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command to record a pilot's position.
func NewReportLocationCommand(pilotID kernel.UUID, coordinates kernel.Coordinates) (ReportLocationCommand, error) {
	command := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPilotID(pilotID),
		command.setCoordinates(coordinates),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReportLocationCommandIsNotConstructed if validation fails.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// PilotID returns the reporting pilot.
func (c ReportLocationCommand) PilotID() kernel.UUID {
	return c.pilotID
}

// Coordinates returns the reported position.
func (c ReportLocationCommand) Coordinates() kernel.Coordinates {
	return c.coordinates
}

func (c *ReportLocationCommand) setPilotID(pilotID kernel.UUID) error {
	if err := pilotID.Validate(); err != nil {
		return err
	}

	c.pilotID = pilotID
	return nil
}

func (c *ReportLocationCommand) setCoordinates(coordinates kernel.Coordinates) error {
	if err := coordinates.Validate(); err != nil {
		return err
	}

	c.coordinates = coordinates
	return nil
}
