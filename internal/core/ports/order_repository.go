// Package ports defines repository and outbound interfaces for the dispatch
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and conditionally updating order
// entities together with their append-only timeline.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its timeline and delivery record.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateClaimed persists the aggregate's pilot assignment with a single
	// conditional write: the row is updated only while the stored order still
	// has no assigned pilot. Returns false when another claim already won the
	// race; the aggregate state is then stale and must be re-read.
	//
	// Example:
	//   claimed, err := repo.UpdateClaimed(ctx, aggregate)
	//   if err != nil {
	//       return err
	//   }
	//   if !claimed {
	//       // somebody else holds the order
	//   }
	UpdateClaimed(ctx context.Context, aggregate *order.Order) (bool, error)

	// UpdateDelivered persists the aggregate's delivery completion with a
	// single conditional write: the row is updated only while the stored
	// order is still dispatched. Returns false when a concurrent
	// cancellation got there first.
	UpdateDelivered(ctx context.Context, aggregate *order.Order) (bool, error)

	// GetAllWithExpiredCode retrieves orders still carrying a handoff code
	// whose expiry lies at or before the given instant. Used by the sweep
	// job to clear lapsed codes.
	GetAllWithExpiredCode(ctx context.Context, asOf time.Time) ([]*order.Order, error)
}
