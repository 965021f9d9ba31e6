package commands

import (
	"context"
)

// UpdatePilotProfileCommandHandler replaces a pilot's profile with their
// corrected resubmission.
type UpdatePilotProfileCommandHandler struct {
	uowFactory PilotUoWFactory
}

// NewUpdatePilotProfileCommandHandler creates a handler for profile updates.
func NewUpdatePilotProfileCommandHandler(uowFactory PilotUoWFactory) UpdatePilotProfileCommandHandler {
	return UpdatePilotProfileCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the profile update.
// Returns errs.ErrObjectNotFound when the pilot does not exist.
func (h UpdatePilotProfileCommandHandler) Handle(ctx context.Context, cmd UpdatePilotProfileCommand) error {
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

	aggregate, err := pilotRepo.Get(ctx, cmd.PilotID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateProfile(cmd.Profile()); err != nil {
		return err
	}

	if err = pilotRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
