package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/pilot"
	"dispatch/internal/core/outbox"
	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// ClaimOrderCommandHandler assigns an order to the claiming pilot.
//
// The assignment itself is a single conditional write: the order row is
// updated only while it still has no assigned pilot, so of N concurrent
// claims exactly one succeeds and the rest come back as already claimed.
// The pilot's availability changes in the same transaction.
//
// The customer notification fires after the commit, at most once per
// successful claim; a notification failure is logged and never undoes the
// claim.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *zap.Logger
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
func NewClaimOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the claim.
//
// Returns:
//   - ErrOrderAlreadyYours when the pilot retries a claim it already won
//   - ErrOrderAlreadyClaimed when another pilot holds the order
//   - ErrOrderNotReady when the order's status does not admit a claim
//   - ErrPilotUnavailable when the pilot is busy or the load does not fit
//   - errs.ErrObjectNotFound when the order or pilot does not exist
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	if assigned := aggregate.AssignedPilot(); assigned != nil {
		if assigned.IsEqual(cmd.PilotID()) {
			return ErrOrderAlreadyYours
		}
		return ErrOrderAlreadyClaimed
	}

	if !aggregate.Status().CanTransitionTo(order.Dispatched) {
		return fmt.Errorf("%w: order is %s", ErrOrderNotReady, aggregate.Status())
	}

	claimant, err := pilotRepo.Get(ctx, cmd.PilotID())
	if err != nil {
		return err
	}

	if !claimant.IsAvailable() || claimant.CurrentOrder() != nil {
		return ErrPilotUnavailable
	}

	driver, err := claimant.DriverSnapshot()
	if err != nil {
		return err
	}

	if err = aggregate.AssignPilot(driver, now); err != nil {
		return err
	}

	if err = claimant.TakeOrder(aggregate.ID(), aggregate.Volume()); err != nil {
		switch {
		case errors.Is(err, pilot.ErrPilotNotAvailable):
			return ErrPilotUnavailable
		case errors.Is(err, pilot.ErrPilotOverCapacity):
			return fmt.Errorf("%w: order volume exceeds vehicle capacity", ErrPilotUnavailable)
		default:
			return err
		}
	}

	// conditional write: only the first claim lands
	claimed, err := orderRepo.UpdateClaimed(ctx, aggregate)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrOrderAlreadyClaimed
	}

	if err = pilotRepo.Update(ctx, claimant); err != nil {
		return err
	}

	payload, err := json.Marshal(events.OrderClaimed{
		OrderID:    aggregate.ID().String(),
		PilotID:    claimant.ID().String(),
		DriverName: driver.Name(),
		VehicleReg: driver.VehicleReg(),
		OccurredAt: now,
	})
	if err != nil {
		return err
	}

	message, err := outbox.NewMessage(events.TopicOrderClaimed, aggregate.ID().String(), payload, now)
	if err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notification := fmt.Sprintf(
		"Your order is on its way. %s is driving %s, reachable at %s.",
		driver.Name(), driver.VehicleReg(), driver.Phone(),
	)
	if err = h.notifier.Notify(ctx, aggregate.CustomerContact(), notification); err != nil {
		h.logger.Warn("claim notification failed",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err))
	}

	return nil
}
