package ports

import "context"

// MessagePublisher hands an integration event to the message broker.
// Implemented by the Kafka adapter; used by the outbox relay.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}
