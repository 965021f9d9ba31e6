package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// IssueHandoffCodeCommandHandler mints the handoff code during a scan.
// Only orders already paid for and not yet delivered can be scanned; a
// placed order fails with ErrOrderNotReady.
type IssueHandoffCodeCommandHandler struct {
	uowFactory OrderUoWFactory
	codes      services.HandoffCodeService
}

// NewIssueHandoffCodeCommandHandler creates a handler for scan operations.
func NewIssueHandoffCodeCommandHandler(
	uowFactory OrderUoWFactory,
	codes services.HandoffCodeService,
) IssueHandoffCodeCommandHandler {
	return IssueHandoffCodeCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
	}
}

// Handle processes the scan and returns the active handoff code.
// A second scan while the code is unexpired returns the same code.
func (h IssueHandoffCodeCommandHandler) Handle(ctx context.Context, cmd IssueHandoffCodeCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	switch aggregate.Status() {
	case order.Confirmed, order.Preparing, order.Processing, order.Dispatched:
		// scannable
	default:
		return "", fmt.Errorf("%w: order is %s", ErrOrderNotReady, aggregate.Status())
	}

	code, err := h.codes.Issue(aggregate, now)
	if err != nil {
		return "", err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return code, nil
}
