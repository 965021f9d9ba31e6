// Package events defines the integration events published through the
// transactional outbox. Payloads are versioned implicitly by topic name and
// serialized as JSON.
package events

import "time"

// Topic names, one per event type.
const (
	TopicOrderClaimed   = "dispatch.order.claimed"
	TopicJourneyStarted = "dispatch.order.journey-started"
	TopicOrderDelivered = "dispatch.order.delivered"
	TopicOrderCancelled = "dispatch.order.cancelled"
)

// OrderClaimed announces that a pilot took an order.
type OrderClaimed struct {
	OrderID    string    `json:"orderId"`
	PilotID    string    `json:"pilotId"`
	DriverName string    `json:"driverName"`
	VehicleReg string    `json:"vehicleReg"`
	OccurredAt time.Time `json:"occurredAt"`
}

// JourneyStarted announces that the assigned pilot left for the customer.
type JourneyStarted struct {
	OrderID    string    `json:"orderId"`
	PilotID    string    `json:"pilotId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderDelivered announces a completed handoff.
type OrderDelivered struct {
	OrderID    string    `json:"orderId"`
	PilotID    string    `json:"pilotId"`
	Rated      bool      `json:"rated"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderCancelled announces a cancellation.
type OrderCancelled struct {
	OrderID    string    `json:"orderId"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}
