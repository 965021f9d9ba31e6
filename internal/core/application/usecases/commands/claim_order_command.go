package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)

	// ErrOrderAlreadyClaimed means another pilot holds the order.
	ErrOrderAlreadyClaimed = errors.New("order is already claimed by another pilot")

	// ErrOrderAlreadyYours means the claiming pilot already holds the order,
	// a retried claim rather than a lost race.
	ErrOrderAlreadyYours = errors.New("order is already claimed by this pilot")

	// ErrPilotUnavailable means the pilot cannot take the order right now.
	ErrPilotUnavailable = errors.New("pilot is not available")

	// ErrOrderNotReady means the order's status does not admit a claim.
	ErrOrderNotReady = errors.New("order is not ready for dispatch")
)

// ClaimOrderCommand represents a pilot's request to take an unassigned order.
// First come, first served: when several pilots scan the same order, exactly
// one claim wins.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, pilotID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderAlreadyYours):
//	    // retried claim, idempotent success for the caller
//	case errors.Is(err, ErrOrderAlreadyClaimed):
//	    // lost the race
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	pilotID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a pilot to claim an order.
func NewClaimOrderCommand(orderID kernel.UUID, pilotID kernel.UUID) (ClaimOrderCommand, error) {
	command := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPilotID(pilotID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PilotID returns the claiming pilot.
func (c ClaimOrderCommand) PilotID() kernel.UUID {
	return c.pilotID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setPilotID(pilotID kernel.UUID) error {
	if err := pilotID.Validate(); err != nil {
		return err
	}

	c.pilotID = pilotID
	return nil
}
