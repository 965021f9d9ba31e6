package pilot

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// TrackedLocation is the pilot's last reported position with its report
// timestamp. Each report overwrites the previous one; the system keeps no
// location history.
type TrackedLocation struct {
	// coordinates is the reported position
	coordinates kernel.Coordinates

	// reportedAt is the server timestamp of the report
	reportedAt time.Time
}

// NewTrackedLocation creates a validated location report.
//
// Parameters:
//   - coordinates: the reported position (validated)
//   - reportedAt: server timestamp of the report (must not be zero)
//
// Returns:
//   - TrackedLocation: the created report if validation passes
//   - error: validation error otherwise
func NewTrackedLocation(coordinates kernel.Coordinates, reportedAt time.Time) (TrackedLocation, error) {
	if err := coordinates.Validate(); err != nil {
		return TrackedLocation{}, err
	}

	if reportedAt.IsZero() {
		return TrackedLocation{}, errs.NewValueIsRequiredError("reportedAt")
	}

	return TrackedLocation{
		coordinates: coordinates,
		reportedAt:  reportedAt,
	}, nil
}

// Coordinates returns the reported position.
func (l TrackedLocation) Coordinates() kernel.Coordinates {
	return l.coordinates
}

// ReportedAt returns the server timestamp of the report.
func (l TrackedLocation) ReportedAt() time.Time {
	return l.reportedAt
}
