// Package kafka adapts inbound payment events to order lifecycle commands.
// The payment side owns order intake: a paid basket becomes a confirmed
// order here, and a reversed payment cancels one.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	eventBasketConfirmed = "basket-confirmed"
	eventCancelRequested = "cancel-requested"

	readRetryDelay = 5 * time.Second
)

// paymentEvent is the wire envelope shared by both event kinds. Cancel
// requests only fill the order ID and reason.
type paymentEvent struct {
	Type            string          `json:"type"`
	OrderID         string          `json:"orderId"`
	CustomerContact string          `json:"customerContact"`
	Items           []string        `json:"items"`
	Volume          int             `json:"volume"`
	Origin          coordinates     `json:"origin"`
	Destination     coordinates     `json:"destination"`
	ItemsTotal      decimal.Decimal `json:"itemsTotal"`
	Reason          string          `json:"reason"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PaymentConsumer reads the payment event stream and drives order intake.
// Events are processed at least once: a redelivered basket fails on the
// duplicate order and is logged, never reapplied.
type PaymentConsumer struct {
	reader       *kafka.Reader
	createOrder  commands.CreateOrderCommandHandler
	advanceOrder commands.AdvanceOrderCommandHandler
	cancelOrder  commands.CancelOrderCommandHandler
	logger       *zap.Logger
}

// NewPaymentConsumer creates a consumer bound to the payment topic.
func NewPaymentConsumer(
	brokers []string,
	topic string,
	groupID string,
	createOrder commands.CreateOrderCommandHandler,
	advanceOrder commands.AdvanceOrderCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	logger *zap.Logger,
) *PaymentConsumer {
	return &PaymentConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       10e3,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
			MaxWait:        3 * time.Second,
		}),
		createOrder:  createOrder,
		advanceOrder: advanceOrder,
		cancelOrder:  cancelOrder,
		logger:       logger,
	}
}

// Run consumes payment events until the context is cancelled.
func (c *PaymentConsumer) Run(ctx context.Context) {
	c.logger.Info("payment consumer started")

	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("payment consumer stopped")
				return
			}

			c.logger.Error("payment stream read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				c.logger.Info("payment consumer stopped")
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		c.dispatch(ctx, message)
	}
}

// Close releases the underlying reader and commits its final offsets.
func (c *PaymentConsumer) Close() error {
	return c.reader.Close()
}

func (c *PaymentConsumer) dispatch(ctx context.Context, message kafka.Message) {
	var event paymentEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.logger.Warn("skipping malformed payment event",
			zap.Int64("offset", message.Offset),
			zap.Error(err))
		return
	}

	switch event.Type {
	case eventBasketConfirmed:
		c.handleBasketConfirmed(ctx, event)
	case eventCancelRequested:
		c.handleCancelRequested(ctx, event)
	default:
		c.logger.Warn("skipping unknown payment event",
			zap.String("type", event.Type),
			zap.Int64("offset", message.Offset))
	}
}

// handleBasketConfirmed registers the paid basket as an order and confirms
// it. The two steps are separate commands, so a crash between them leaves a
// placed order that the next redelivery confirms.
func (c *PaymentConsumer) handleBasketConfirmed(ctx context.Context, event paymentEvent) {
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		c.logger.Warn("skipping basket with invalid order id",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		return
	}

	origin, err := kernel.NewCoordinates(event.Origin.Latitude, event.Origin.Longitude)
	if err != nil {
		c.logger.Warn("skipping basket with invalid origin",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		return
	}

	destination, err := kernel.NewCoordinates(event.Destination.Latitude, event.Destination.Longitude)
	if err != nil {
		c.logger.Warn("skipping basket with invalid destination",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		return
	}

	createCmd, err := commands.NewCreateOrderCommand(
		orderID,
		event.CustomerContact,
		event.Items,
		event.Volume,
		origin,
		destination,
		event.ItemsTotal,
	)
	if err != nil {
		c.logger.Warn("skipping invalid basket",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		return
	}

	if err = c.createOrder.Handle(ctx, createCmd); err != nil {
		c.logger.Error("order creation failed",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
	} else {
		metrics.OrdersCreatedTotal.Inc()
	}

	advanceCmd, err := commands.NewAdvanceOrderCommand(orderID, order.Confirmed, "payment captured", "payments")
	if err != nil {
		c.logger.Error("order confirmation failed",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		return
	}

	if err = c.advanceOrder.Handle(ctx, advanceCmd); err != nil {
		c.logger.Error("order confirmation failed",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
	}
}

func (c *PaymentConsumer) handleCancelRequested(ctx context.Context, event paymentEvent) {
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		c.logger.Warn("skipping cancel request with invalid order id",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		return
	}

	cancelCmd, err := commands.NewCancelOrderCommand(orderID, event.Reason, "payments")
	if err != nil {
		c.logger.Error("order cancellation failed",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		return
	}

	if err = c.cancelOrder.Handle(ctx, cancelCmd); err != nil {
		c.logger.Error("order cancellation failed",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
	}
}
