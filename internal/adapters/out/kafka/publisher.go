// Package kafka adapts the outbound message publisher port to a Kafka
// cluster using segmentio/kafka-go.
package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
)

// Publisher pushes integration events onto Kafka topics. A single writer
// serves every topic; the outbox relay sets the topic per message.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher creates a publisher connected to the given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
		},
	}
}

// Publish writes one message and waits for broker acknowledgement, so the
// outbox relay only marks a message done once the broker stored it.
func (p *Publisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

// Close flushes pending writes and releases the writer's connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
