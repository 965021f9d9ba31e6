package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/pilot"
)

// PilotRepository defines the persistence contract for pilot aggregates.
// Provides methods for storing and retrieving pilot entities with their
// availability, carried order and last reported location.
type PilotRepository interface {
	// Add persists a new pilot aggregate to storage.
	// The pilot must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *pilot.Pilot) error

	// Update persists changes to an existing pilot aggregate.
	// The pilot must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *pilot.Pilot) error

	// Get retrieves a pilot aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pilot.Pilot, error)
}
