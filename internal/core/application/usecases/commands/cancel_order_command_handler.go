package commands

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/outbox"
)

// CancelOrderCommandHandler cancels an order and, when a pilot already
// carries it, releases the pilot in the same transaction. The cancellation
// event goes through the outbox so downstream systems learn about it even
// when the broker is down.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory)
//	cmd, _ := NewCancelOrderCommand(orderID, "payment reversed", "payment-provider")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // already delivered or cancelled
//	}
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// Requires a UoWFactory for coordinating order and pilot updates.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Cancelling a terminal order fails with order.ErrInvalidTransition; a
// missing order fails with errs.ErrObjectNotFound.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// the cancel clears the assignment, remember it for the pilot release
	assignedPilot := aggregate.AssignedPilot()

	if err = aggregate.Cancel(cmd.Reason(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if assignedPilot != nil {
		pilotRepo := uow.PilotRepository()

		carrier, err := pilotRepo.Get(ctx, *assignedPilot)
		if err != nil {
			return err
		}

		if err = carrier.ReleaseOrder(aggregate.ID()); err != nil {
			return err
		}

		if err = pilotRepo.Update(ctx, carrier); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(events.OrderCancelled{
		OrderID:    aggregate.ID().String(),
		Reason:     cmd.Reason(),
		OccurredAt: now,
	})
	if err != nil {
		return err
	}

	message, err := outbox.NewMessage(events.TopicOrderCancelled, aggregate.ID().String(), payload, now)
	if err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
