package commands

import (
	"context"
	"time"
)

// SweepExpiredCodesCommandHandler clears handoff codes whose expiry has
// passed. Orders whose codes were cleared can be scanned again for a fresh
// code.
type SweepExpiredCodesCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSweepExpiredCodesCommandHandler creates a handler for the code sweep.
func NewSweepExpiredCodesCommandHandler(uowFactory OrderUoWFactory) SweepExpiredCodesCommandHandler {
	return SweepExpiredCodesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep and reports how many codes were cleared.
func (h SweepExpiredCodesCommandHandler) Handle(ctx context.Context, cmd SweepExpiredCodesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	lapsed, err := orderRepo.GetAllWithExpiredCode(ctx, now)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for _, aggregate := range lapsed {
		if !aggregate.ExpireHandoffCode(now) {
			continue
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}

		cleared++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return cleared, nil
}
