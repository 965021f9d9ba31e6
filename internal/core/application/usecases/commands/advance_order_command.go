package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")

	// ErrTargetStatusIsNotAdvanceable rejects targets owned by dedicated
	// commands: dispatched is reached through a claim, cancelled through a
	// cancellation.
	ErrTargetStatusIsNotAdvanceable = errors.New(
		"dispatched and cancelled cannot be reached by a plain advance",
	)
)

// AdvanceOrderCommand represents a request to move an order one step along
// its fulfilment chain, recording who asked and why.
//
// Example:
//
//	cmd, err := NewAdvanceOrderCommand(orderID, order.Preparing, "stock reserved", "warehouse")
//	if err != nil {
//	    return err
//	}
//	handler := NewAdvanceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, order.ErrInvalidTransition) for illegal edges
//	}
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status
	note         string
	actor        string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order.
// The note may be empty; the actor is mandatory and lands in the timeline.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	targetStatus order.Status,
	note string,
	actor string,
) (AdvanceOrderCommand, error) {
	command := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTargetStatus(targetStatus),
		command.setActor(actor),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	command.note = note
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceOrderCommandIsNotConstructed if validation fails.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the status to advance to.
func (c AdvanceOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Note returns the optional free-form remark for the timeline.
func (c AdvanceOrderCommand) Note() string {
	return c.note
}

// Actor returns who requested the advance.
func (c AdvanceOrderCommand) Actor() string {
	return c.actor
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	if targetStatus == order.Dispatched || targetStatus == order.Cancelled {
		return ErrTargetStatusIsNotAdvanceable
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *AdvanceOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
