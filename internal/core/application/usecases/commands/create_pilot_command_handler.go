package commands

import (
	"context"

	"dispatch/internal/core/domain/model/pilot"
)

// CreatePilotCommandHandler registers a new pilot. Pilots start available
// with no carried order and no deliveries behind them.
type CreatePilotCommandHandler struct {
	uowFactory PilotUoWFactory
}

// NewCreatePilotCommandHandler creates a handler for pilot registration.
func NewCreatePilotCommandHandler(uowFactory PilotUoWFactory) CreatePilotCommandHandler {
	return CreatePilotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pilot registration command.
func (h *CreatePilotCommandHandler) Handle(ctx context.Context, cmd CreatePilotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pilotRepo := uow.PilotRepository()

	aggregate, err := pilot.NewPilot(cmd.PilotID(), cmd.Profile())
	if err != nil {
		return err
	}

	if err = pilotRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
