package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepExpiredCodesCommandIsNotConstructed = errors.New(
	"SweepExpiredCodesCommand must be created via NewSweepExpiredCodesCommand constructor",
)

// SweepExpiredCodesCommand triggers a cleanup of lapsed handoff codes.
// Verification already refuses expired codes on its own; the sweep keeps
// stale codes from lingering in storage. Runs on a schedule.
type SweepExpiredCodesCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepExpiredCodesCommand creates a new sweep command.
func NewSweepExpiredCodesCommand() SweepExpiredCodesCommand {
	return SweepExpiredCodesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepExpiredCodesCommandIsNotConstructed if validation fails.
func (c *SweepExpiredCodesCommand) Validate() error {
	return c.guard.Validate(
		ErrSweepExpiredCodesCommandIsNotConstructed,
	)
}
