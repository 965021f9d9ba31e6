package commands

import (
	"context"
	"time"
)

// ReportLocationCommandHandler records a pilot's position ping.
// Reports are accepted regardless of whether the pilot carries an order.
type ReportLocationCommandHandler struct {
	uowFactory PilotUoWFactory
}

// NewReportLocationCommandHandler creates a handler for location reports.
func NewReportLocationCommandHandler(uowFactory PilotUoWFactory) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location report.
// Returns errs.ErrObjectNotFound when the pilot does not exist.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
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

	if err = aggregate.ReportLocation(cmd.Coordinates(), time.Now().UTC()); err != nil {
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
