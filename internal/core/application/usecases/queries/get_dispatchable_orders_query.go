// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetDispatchableOrdersQueryIsNotConstructed = errors.New(
		"GetDispatchableOrdersQuery must be created via NewGetDispatchableOrdersQuery constructor",
	)
)

// GetDispatchableOrdersQuery retrieves orders a pilot could claim right now:
// paid orders in a ready status that no pilot holds yet.
//
// Example:
//
//	query := NewGetDispatchableOrdersQuery()
//	handler := NewGetDispatchableOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get dispatchable orders: %w", err)
//	}
//
//	fmt.Printf("%d orders waiting for a pilot\n", len(orders))
type GetDispatchableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDispatchableOrdersQuery creates a query to retrieve claimable orders.
// This is a parameterless query that fetches all ready, unassigned orders.
func NewGetDispatchableOrdersQuery() GetDispatchableOrdersQuery {
	return GetDispatchableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDispatchableOrdersQueryIsNotConstructed if validation fails.
func (q GetDispatchableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchableOrdersQueryIsNotConstructed)
}

// GetDispatchableOrdersQueryResponse represents one claimable order with the
// details a pilot weighs before claiming: load size, destination and what the
// transport leg pays.
type GetDispatchableOrdersQueryResponse struct {
	ID            kernel.UUID
	Status        string
	Volume        int
	Destination   kernel.Coordinates
	DistanceKm    float64
	Zone          string
	Eta           string
	TransportCost decimal.Decimal
}
