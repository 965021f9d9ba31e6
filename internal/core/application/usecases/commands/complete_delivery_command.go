package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/pilot"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrRatingIsOutOfRange = errors.New("rating must be between 1 and 5")
)

// CompleteDeliveryCommand represents the handoff at the door: the customer
// reads the code back to the pilot, optionally leaves delivery notes and a
// rating for the pilot.
//
// Example:
//
//	rating := 5
//	cmd, err := NewCompleteDeliveryCommand(orderID, "482913", "left at gate 2", &rating)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrInvalidCode) {
//	    // wrong or expired code, nothing changed
//	}
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    string
	notes   string
	rating  *int

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
// Notes and rating are optional; a present rating must be between 1 and 5.
func NewCompleteDeliveryCommand(
	orderID kernel.UUID,
	code string,
	notes string,
	rating *int,
) (CompleteDeliveryCommand, error) {
	command := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCode(code),
		command.setRating(rating),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being handed off.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the handoff code read back by the customer.
func (c CompleteDeliveryCommand) Code() string {
	return c.code
}

// Notes returns the optional delivery notes.
func (c CompleteDeliveryCommand) Notes() string {
	return c.notes
}

// Rating returns the optional customer rating, nil when the customer
// declined to rate.
func (c CompleteDeliveryCommand) Rating() *int {
	return c.rating
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setCode(code string) error {
	if err := order.ValidateHandoffCode(code); err != nil {
		return err
	}

	c.code = code
	return nil
}

func (c *CompleteDeliveryCommand) setRating(rating *int) error {
	if rating == nil {
		c.rating = nil
		return nil
	}

	if *rating < pilot.MinRating || *rating > pilot.MaxRating {
		return ErrRatingIsOutOfRange
	}

	value := *rating
	c.rating = &value
	return nil
}
