package commands

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/outbox"
	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// StartJourneyCommandHandler records the pilot's departure: timeline entry
// on the order, fresh location on the pilot, and a journey-started event
// through the outbox. The customer hears about it after the commit.
type StartJourneyCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *zap.Logger
}

// NewStartJourneyCommandHandler creates a handler for journey starts.
func NewStartJourneyCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) StartJourneyCommandHandler {
	return StartJourneyCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the journey start.
// Only the assigned pilot of a dispatched order may start the journey:
// anyone else gets order.ErrNotAssignedPilot, a second start fails with
// order.ErrInvalidTransition.
func (h StartJourneyCommandHandler) Handle(ctx context.Context, cmd StartJourneyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pilotRepo := uow.PilotRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.StartJourney(cmd.PilotID(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	carrier, err := pilotRepo.Get(ctx, cmd.PilotID())
	if err != nil {
		return err
	}

	if err = carrier.ReportLocation(cmd.CurrentLocation(), now); err != nil {
		return err
	}

	if err = pilotRepo.Update(ctx, carrier); err != nil {
		return err
	}

	payload, err := json.Marshal(events.JourneyStarted{
		OrderID:    aggregate.ID().String(),
		PilotID:    cmd.PilotID().String(),
		OccurredAt: now,
	})
	if err != nil {
		return err
	}

	message, err := outbox.NewMessage(events.TopicJourneyStarted, aggregate.ID().String(), payload, now)
	if err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notification := "Your order has left for your site. Keep your handoff code ready."
	if err = h.notifier.Notify(ctx, aggregate.CustomerContact(), notification); err != nil {
		h.logger.Warn("journey notification failed",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err))
	}

	return nil
}
