// Package metrics exposes the process-wide Prometheus collectors.
// Collectors register themselves on import, the composition root only
// has to mount the scrape endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_orders_created_total",
		Help: "Total number of orders accepted from the payment stream",
	})

	OrdersClaimedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_orders_claimed_total",
		Help: "Total number of successful order claims",
	})

	HandoffCodesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_handoff_codes_issued_total",
		Help: "Total number of warehouse scans that returned a handoff code",
	})

	DeliveriesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_deliveries_completed_total",
		Help: "Total number of deliveries settled with a valid handoff code",
	})

	OutboxMessagesPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_outbox_messages_published_total",
		Help: "Total number of outbox messages relayed to the broker",
	})

	ExpiredCodesSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_expired_codes_swept_total",
		Help: "Total number of expired handoff codes cleared by the sweeper",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_operation_errors_total",
		Help: "Total number of failed background operations",
	}, []string{"operation"})
)
