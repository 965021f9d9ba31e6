package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrRelayOutboxCommandIsNotConstructed = errors.New(
		"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
	)
	ErrBatchSizeIsInvalid = errors.New("batch size must be greater than 0")
)

// RelayOutboxCommand triggers one relay pass over the transactional outbox:
// pending messages are read, published to the broker and marked done.
// Runs on a schedule.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayOutboxCommand creates a relay command with the given batch size.
func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	command := RelayOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setBatchSize(batchSize); err != nil {
		return RelayOutboxCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRelayOutboxCommandIsNotConstructed if validation fails.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

// BatchSize returns how many messages one pass picks up at most.
func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c *RelayOutboxCommand) setBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return ErrBatchSizeIsInvalid
	}

	c.batchSize = batchSize
	return nil
}
