package pilot

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinRating is the lowest customer rating a delivery can receive.
	MinRating = 1
	// MaxRating is the highest customer rating a delivery can receive.
	MaxRating = 5
)

// Domain errors for pilot operations.
var (
	// ErrPilotIsNotConstructed is returned when using an improperly initialized Pilot.
	ErrPilotIsNotConstructed = errors.New("Pilot must be created via NewPilot constructor")
	// ErrPilotNotAvailable is returned when a pilot that is off shift or already
	// carrying an order is asked to take another one.
	ErrPilotNotAvailable = errors.New("pilot is not available")
	// ErrPilotOverCapacity is returned when an order's volume exceeds the
	// pilot's vehicle capacity.
	ErrPilotOverCapacity = errors.New("order volume exceeds pilot capacity")
	// ErrNotCarryingOrder is returned when a pilot is released from an order
	// they are not carrying.
	ErrNotCarryingOrder = errors.New("pilot is not carrying this order")
)

// Pilot represents a delivery agent in the system.
// It is an aggregate root that manages the agent's profile, availability,
// the single order they may carry, their last reported location and their
// delivery statistics.
//
// Key responsibilities:
//   - Managing pilot identity and the self-reported profile
//   - Tracking availability and the current order (at most one at a time)
//   - Overwriting the last reported location on each report
//   - Accumulating total deliveries and the running mean rating
//
// Business rules:
//   - A pilot carries at most one order; carrying an order implies being
//     unavailable, and both facts change together
//   - The profile changes only through the pilot's own resubmission
//   - Location reports overwrite; no history is kept
//   - totalDeliveries counts every completed delivery; the rating folds in
//     only when the customer actually rated
type Pilot struct {
	// id uniquely identifies the pilot
	id kernel.UUID
	// profile is the pilot's self-reported details
	profile Profile
	// isAvailable reports whether the pilot can take an order
	isAvailable bool
	// currentOrderID is the order being carried, nil when idle
	currentOrderID *kernel.UUID
	// lastLocation is the last reported position, nil until the first report
	lastLocation *TrackedLocation
	// totalDeliveries counts completed deliveries
	totalDeliveries int
	// rating is the running mean of customer ratings
	rating float64
	// ratingsCount is how many ratings the mean is built from
	ratingsCount int
	// guard ensures the pilot was properly constructed
	guard guard.ConstructorGuard
}

// NewPilot creates a new Pilot with the given identity and profile.
// Fresh pilots start available, carrying nothing, with no location report and
// zeroed statistics.
//
// Parameters:
//   - id: Unique identifier for the pilot (must be valid UUID)
//   - profile: the pilot's self-reported details (validated)
//
// Returns:
//   - *Pilot: A fully initialized pilot ready for dispatch
//   - error: Validation error if any parameter is invalid
func NewPilot(id kernel.UUID, profile Profile) (*Pilot, error) {
	pilot := &Pilot{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pilot.setID(id),
		pilot.setProfile(profile),
	); err != nil {
		return nil, err
	}

	return pilot, nil
}

// RestorePilot reconstructs a Pilot aggregate from persistent storage.
// Unlike NewPilot it accepts the full operational state, but it still
// validates every field and the consistency between availability and the
// carried order.
//
// Parameters:
//   - id: Unique identifier for the pilot
//   - profile: the persisted profile
//   - isAvailable: persisted availability flag
//   - currentOrderID: the carried order, nil when idle
//   - lastLocation: the last location report, nil when never reported
//   - totalDeliveries: completed delivery count (non-negative)
//   - rating: running mean rating (zero when ratingsCount is zero)
//   - ratingsCount: how many ratings the mean is built from (non-negative)
//
// Returns:
//   - *Pilot: Restored pilot aggregate
//   - error: Validation error if the persisted state is inconsistent
func RestorePilot(
	id kernel.UUID,
	profile Profile,
	isAvailable bool,
	currentOrderID *kernel.UUID,
	lastLocation *TrackedLocation,
	totalDeliveries int,
	rating float64,
	ratingsCount int,
) (*Pilot, error) {
	pilot := &Pilot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pilot.setID(id),
		pilot.setProfile(profile),
	); err != nil {
		return nil, err
	}

	if currentOrderID != nil {
		if err := currentOrderID.Validate(); err != nil {
			return nil, err
		}

		if isAvailable {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"isAvailable",
				fmt.Errorf("pilot carrying order %s cannot be available", currentOrderID),
			)
		}

		orderID := *currentOrderID
		pilot.currentOrderID = &orderID
	}

	if totalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"totalDeliveries",
			fmt.Errorf("%d is negative", totalDeliveries),
		)
	}

	if ratingsCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"ratingsCount",
			fmt.Errorf("%d is negative", ratingsCount),
		)
	}

	if ratingsCount > 0 && (rating < MinRating || rating > MaxRating) {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	pilot.isAvailable = isAvailable
	pilot.lastLocation = lastLocation
	pilot.totalDeliveries = totalDeliveries
	pilot.rating = rating
	pilot.ratingsCount = ratingsCount

	return pilot, nil
}

// IsEqual compares two pilots for equality based on their unique identifiers.
func (p *Pilot) IsEqual(other *Pilot) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

// Validate checks if the Pilot was properly constructed via a constructor.
// The zero value fails.
func (p *Pilot) Validate() error {
	if p == nil {
		return ErrPilotIsNotConstructed
	}
	return p.guard.Validate(ErrPilotIsNotConstructed)
}

// ID returns the unique identifier of the pilot.
func (p *Pilot) ID() kernel.UUID {
	return p.id
}

// Profile returns the pilot's self-reported details.
func (p *Pilot) Profile() Profile {
	return p.profile
}

// IsAvailable reports whether the pilot can take an order.
func (p *Pilot) IsAvailable() bool {
	return p.isAvailable
}

// CurrentOrder returns the order the pilot is carrying.
// Returns nil when the pilot is idle.
func (p *Pilot) CurrentOrder() *kernel.UUID {
	return p.currentOrderID
}

// LastLocation returns the last reported position.
// Returns nil until the pilot reports for the first time.
func (p *Pilot) LastLocation() *TrackedLocation {
	return p.lastLocation
}

// TotalDeliveries returns how many deliveries the pilot completed.
func (p *Pilot) TotalDeliveries() int {
	return p.totalDeliveries
}

// Rating returns the running mean of customer ratings.
// Zero until the first rating arrives.
func (p *Pilot) Rating() float64 {
	return p.rating
}

// RatingsCount returns how many ratings the mean is built from.
func (p *Pilot) RatingsCount() int {
	return p.ratingsCount
}

// UpdateProfile replaces the pilot's profile with a corrected resubmission.
// Only the pilot themselves does this; driver snapshots already copied onto
// orders are not touched.
func (p *Pilot) UpdateProfile(profile Profile) error {
	return p.setProfile(profile)
}

// DriverSnapshot produces the customer-facing driver details to copy onto an
// order at claim time.
func (p *Pilot) DriverSnapshot() (order.DriverDetails, error) {
	return order.NewDriverDetails(p.id, p.profile.Name(), p.profile.Phone(), p.profile.VehicleReg())
}

// CanCarry reports whether an order of the given volume fits the vehicle.
func (p *Pilot) CanCarry(volume int) bool {
	return volume > 0 && volume <= p.profile.Capacity()
}

// TakeOrder marks the pilot as carrying the given order and unavailable.
// Both facts change together so the pairing with the order's assignment
// stays consistent.
//
// Returns:
//   - ErrPilotNotAvailable when off shift or already carrying an order
//   - ErrPilotOverCapacity when the volume exceeds the vehicle capacity
func (p *Pilot) TakeOrder(orderID kernel.UUID, volume int) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if !p.isAvailable || p.currentOrderID != nil {
		return ErrPilotNotAvailable
	}

	if !p.CanCarry(volume) {
		return ErrPilotOverCapacity
	}

	p.currentOrderID = &orderID
	p.isAvailable = false
	return nil
}

// ReleaseOrder frees the pilot from the order they are carrying, making them
// available again. The order must match the one actually carried.
func (p *Pilot) ReleaseOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if p.currentOrderID == nil || !p.currentOrderID.IsEqual(orderID) {
		return ErrNotCarryingOrder
	}

	p.currentOrderID = nil
	p.isAvailable = true
	return nil
}

// RecordDelivery counts a completed delivery and, when the customer rated,
// folds the rating into the running mean weighted by the prior count.
//
// The delivery counts even without a rating; whether an unrated delivery
// should instead dilute the mean is a product decision, and today it simply
// leaves the mean untouched.
func (p *Pilot) RecordDelivery(rating *int) error {
	if rating != nil && (*rating < MinRating || *rating > MaxRating) {
		return errs.NewValueIsOutOfRangeError("rating", *rating, MinRating, MaxRating)
	}

	p.totalDeliveries++

	if rating != nil {
		sum := p.rating*float64(p.ratingsCount) + float64(*rating)
		p.ratingsCount++
		p.rating = sum / float64(p.ratingsCount)
	}

	return nil
}

// ReportLocation overwrites the last reported position. Reports are accepted
// unconditionally; an idle pilot driving home still updates their position.
func (p *Pilot) ReportLocation(coordinates kernel.Coordinates, reportedAt time.Time) error {
	location, err := NewTrackedLocation(coordinates, reportedAt)
	if err != nil {
		return err
	}

	p.lastLocation = &location
	return nil
}

// setID sets the pilot's unique identifier with validation.
// This is an internal setter used during pilot construction.
func (p *Pilot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

// setProfile sets the pilot's profile with validation.
// This is an internal setter used during construction and profile resubmission.
func (p *Pilot) setProfile(profile Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	p.profile = profile
	return nil
}
