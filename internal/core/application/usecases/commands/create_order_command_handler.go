package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Prices the transport leg from the order's coordinates and stores the order
// in "placed" status with its first timeline entry.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing)
//	cmd, _ := NewCreateOrderCommand(orderID, contact, items, 15, origin, destination, total)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    services.DistancePricingEngine
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and the pricing
// engine for the transport quote.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.DistancePricingEngine,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the order creation command.
// Quotes the transport cost, creates the order in "placed" status and
// persists it. Uses a transaction to ensure the order is properly persisted
// or rolled back on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pricing, err := h.pricing.Quote(cmd.Origin(), cmd.Destination(), cmd.ItemsTotal())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerContact(),
		cmd.Items(),
		cmd.Volume(),
		cmd.Origin(),
		cmd.Destination(),
		pricing,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
