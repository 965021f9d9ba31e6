package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrIssueHandoffCodeCommandIsNotConstructed = errors.New(
	"IssueHandoffCodeCommand must be created via NewIssueHandoffCodeCommand constructor",
)

// IssueHandoffCodeCommand represents a scan of an order's shareable ID: the
// pilot checks the order before claiming it and the customer receives the
// handoff code to read back at the door. Scanning twice returns the same
// code while it is unexpired.
type IssueHandoffCodeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueHandoffCodeCommand creates a command to mint a handoff code.
func NewIssueHandoffCodeCommand(orderID kernel.UUID) (IssueHandoffCodeCommand, error) {
	command := IssueHandoffCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return IssueHandoffCodeCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIssueHandoffCodeCommandIsNotConstructed if validation fails.
func (c IssueHandoffCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueHandoffCodeCommandIsNotConstructed)
}

// OrderID returns the scanned order.
func (c IssueHandoffCodeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *IssueHandoffCodeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
