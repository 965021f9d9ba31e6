package ports

import (
	"context"

	"dispatch/internal/core/outbox"
)

// OutboxRepository defines the persistence contract for the transactional
// outbox. Messages are added inside the same transaction as the state change
// they announce and relayed to the broker by a background job.
type OutboxRepository interface {
	// Add persists a new outbox message.
	Add(ctx context.Context, message *outbox.Message) error

	// Update persists a relay state change.
	Update(ctx context.Context, message *outbox.Message) error

	// GetMessagesForPublish retrieves up to limit messages in the created
	// state, oldest first, locking them against concurrent relays.
	GetMessagesForPublish(ctx context.Context, limit int) ([]*outbox.Message, error)
}
