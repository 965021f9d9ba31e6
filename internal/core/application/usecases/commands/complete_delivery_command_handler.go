package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/outbox"
	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// ErrOrderAlreadyCompleted means the order was already delivered; a retried
// completion is reported as such instead of failing the code check.
var ErrOrderAlreadyCompleted = errors.New("order is already completed")

// CompleteDeliveryCommandHandler finishes the handoff: verifies the code,
// marks the order delivered, releases the pilot and folds the customer's
// rating into the pilot's running score. All of it happens in one
// transaction; a wrong code changes nothing.
//
// The delivered row is written conditionally on the order still being
// dispatched, so a cancellation racing the handoff wins cleanly on one side.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	codes      services.HandoffCodeService
	notifier   ports.Notifier
	logger     *zap.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	codes services.HandoffCodeService,
	notifier ports.Notifier,
	logger *zap.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the completion.
//
// Returns:
//   - ErrOrderAlreadyCompleted on a retried completion
//   - services.ErrInvalidCode when the code does not verify; the reason
//     (mismatch, expiry, status) is logged here and nowhere else
//   - order.ErrInvalidTransition when a cancellation won the race
//   - errs.ErrObjectNotFound when the order does not exist
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if aggregate.Status() == order.Delivered {
		return ErrOrderAlreadyCompleted
	}

	if err = h.codes.Verify(aggregate, cmd.Code(), now); err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			h.logger.Warn("handoff code rejected",
				zap.String("orderId", aggregate.ID().String()),
				zap.Error(err))
			return services.ErrInvalidCode
		}
		return err
	}

	// the code verified, so the order is dispatched and has a pilot
	carrierID := *aggregate.AssignedPilot()

	if err = aggregate.CompleteDelivery(cmd.Notes(), now); err != nil {
		return err
	}

	delivered, err := orderRepo.UpdateDelivered(ctx, aggregate)
	if err != nil {
		return err
	}
	if !delivered {
		return fmt.Errorf("%w: order is no longer dispatched", order.ErrInvalidTransition)
	}

	carrier, err := pilotRepo.Get(ctx, carrierID)
	if err != nil {
		return err
	}

	if err = carrier.ReleaseOrder(aggregate.ID()); err != nil {
		return err
	}

	if err = carrier.RecordDelivery(cmd.Rating()); err != nil {
		return err
	}

	if err = pilotRepo.Update(ctx, carrier); err != nil {
		return err
	}

	payload, err := json.Marshal(events.OrderDelivered{
		OrderID:    aggregate.ID().String(),
		PilotID:    carrierID.String(),
		Rated:      cmd.Rating() != nil,
		OccurredAt: now,
	})
	if err != nil {
		return err
	}

	message, err := outbox.NewMessage(events.TopicOrderDelivered, aggregate.ID().String(), payload, now)
	if err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notification := "Your order was delivered. Thank you for building with us."
	if err = h.notifier.Notify(ctx, aggregate.CustomerContact(), notification); err != nil {
		h.logger.Warn("delivery notification failed",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err))
	}

	return nil
}
