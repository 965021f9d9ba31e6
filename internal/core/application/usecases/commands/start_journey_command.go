package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartJourneyCommandIsNotConstructed = errors.New(
	"StartJourneyCommand must be created via NewStartJourneyCommand constructor",
)

// StartJourneyCommand represents the assigned pilot leaving for the
// customer with the load. Carries the pilot's current position so tracking
// starts from the departure point.
type StartJourneyCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	pilotID         kernel.UUID
	currentLocation kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewStartJourneyCommand creates a command to start the delivery journey.
func NewStartJourneyCommand(
	orderID kernel.UUID,
	pilotID kernel.UUID,
	currentLocation kernel.Coordinates,
) (StartJourneyCommand, error) {
	command := StartJourneyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPilotID(pilotID),
		command.setCurrentLocation(currentLocation),
	); err != nil {
		return StartJourneyCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartJourneyCommandIsNotConstructed if validation fails.
func (c StartJourneyCommand) Validate() error {
	return c.guard.Validate(ErrStartJourneyCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c StartJourneyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PilotID returns the departing pilot.
func (c StartJourneyCommand) PilotID() kernel.UUID {
	return c.pilotID
}

// CurrentLocation returns the pilot's position at departure.
func (c StartJourneyCommand) CurrentLocation() kernel.Coordinates {
	return c.currentLocation
}

func (c *StartJourneyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartJourneyCommand) setPilotID(pilotID kernel.UUID) error {
	if err := pilotID.Validate(); err != nil {
		return err
	}

	c.pilotID = pilotID
	return nil
}

func (c *StartJourneyCommand) setCurrentLocation(currentLocation kernel.Coordinates) error {
	if err := currentLocation.Validate(); err != nil {
		return err
	}

	c.currentLocation = currentLocation
	return nil
}
