package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
		"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
	)
)

// GetOrderSummaryQuery retrieves the full read model of a single order:
// lifecycle status, pricing breakdown, delivery record and the complete
// timeline. Backs the order view in the customer and warehouse UIs.
//
// Example:
//
//	query, err := NewGetOrderSummaryQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	summary, err := NewGetOrderSummaryQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order summary: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", summary.ID, summary.Status)
type GetOrderSummaryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderSummaryQuery creates a query for one order's read model.
// Returns a validation error when the order ID is missing.
func NewGetOrderSummaryQuery(orderID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSummaryQuery{}, err
	}

	return GetOrderSummaryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to summarize.
func (q GetOrderSummaryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderSummaryQueryIsNotConstructed if validation fails.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// GetOrderSummaryQueryResponse represents one order's complete read model.
// The handoff code itself is never exposed here; only its expiry is, so a
// customer screen can show how long the code stays valid.
type GetOrderSummaryQueryResponse struct {
	ID                   kernel.UUID
	Status               string
	CustomerContact      string
	Items                []string
	Volume               int
	Destination          kernel.Coordinates
	DistanceKm           float64
	Zone                 string
	Eta                  string
	TransportCost        decimal.Decimal
	ItemsTotal           decimal.Decimal
	Total                decimal.Decimal
	AssignedPilotID      *kernel.UUID
	DriverName           *string
	DriverPhone          *string
	DriverVehicleReg     *string
	HandoffCodeExpiresAt *time.Time
	JourneyStartedAt     *time.Time
	DeliveredAt          *time.Time
	DeliveryNotes        string
	Timeline             []TimelineEntryView
}

// TimelineEntryView represents one row of an order's append-only history.
type TimelineEntryView struct {
	Status string
	At     time.Time
	Note   string
	Actor  string
}
