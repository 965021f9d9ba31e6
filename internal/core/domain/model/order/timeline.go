package order

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// TimelineEntry is a single record in an order's append-only history.
// Each status change (and journey milestone) produces one entry carrying the
// status the order held after the change, the server timestamp, a free-form
// note and the actor that caused the change.
//
// Entries are immutable. The Order aggregate only ever appends; existing
// entries are never rewritten or removed.
type TimelineEntry struct {
	// status is the order status after the change was applied
	status Status

	// at is the server timestamp of the change
	at time.Time

	// note is a short free-form description of the change
	note string

	// actor identifies who caused the change (customer, pilot ID, payment provider, operator)
	actor string
}

// NewTimelineEntry creates a validated timeline entry.
//
// Parameters:
//   - status: the order status after the change (must be a valid status)
//   - at: the server timestamp (must not be the zero time)
//   - note: free-form description, may be empty
//   - actor: who caused the change (must not be empty)
//
// Returns:
//   - TimelineEntry: the created entry if validation passes
//   - error: validation error otherwise
func NewTimelineEntry(status Status, at time.Time, note string, actor string) (TimelineEntry, error) {
	if err := status.Validate(); err != nil {
		return TimelineEntry{}, err
	}

	if at.IsZero() {
		return TimelineEntry{}, errs.NewValueIsRequiredError("at")
	}

	if actor == "" {
		return TimelineEntry{}, errs.NewValueIsRequiredError("actor")
	}

	return TimelineEntry{
		status: status,
		at:     at,
		note:   note,
		actor:  actor,
	}, nil
}

// Status returns the order status the entry records.
func (e TimelineEntry) Status() Status {
	return e.status
}

// At returns the server timestamp of the entry.
func (e TimelineEntry) At() time.Time {
	return e.at
}

// Note returns the free-form description of the change.
func (e TimelineEntry) Note() string {
	return e.note
}

// Actor returns who caused the change.
func (e TimelineEntry) Actor() string {
	return e.actor
}
