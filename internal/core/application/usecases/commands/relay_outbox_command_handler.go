package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// relayMaxAttempts bounds how often a message is retried before it parks
// as failed.
const relayMaxAttempts = 10

// RelayOutboxCommandHandler publishes pending outbox messages to the broker.
// Messages are locked while a pass holds them, so overlapping passes skip
// each other's rows. A message that keeps failing parks after
// relayMaxAttempts and needs an operator.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
	logger     *zap.Logger
}

// NewRelayOutboxCommandHandler creates a handler for outbox relay passes.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.MessagePublisher,
	logger *zap.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes one relay pass and reports how many messages reached
// the broker.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	messages, err := outboxRepo.GetMessagesForPublish(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, message := range messages {
		now := time.Now().UTC()
		message.MarkProcessing(now)

		if err = h.publisher.Publish(ctx, message.Topic(), message.Key(), message.Payload()); err != nil {
			h.logger.Warn("outbox publish failed",
				zap.String("messageId", message.ID().String()),
				zap.String("topic", message.Topic()),
				zap.Int("attempts", message.Attempts()),
				zap.Error(err))
			message.MarkFailed(now, err, relayMaxAttempts)
		} else {
			message.MarkDone(now)
			published++
		}

		if err = outboxRepo.Update(ctx, message); err != nil {
			return published, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, nil
}
