package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPilotAlreadyAssigned is returned when a claim hits an order that
	// already carries an active pilot assignment.
	ErrPilotAlreadyAssigned = errors.New("order already has an assigned pilot")

	// ErrNotAssignedPilot is returned when a pilot acts on an order that is
	// assigned to somebody else (or to nobody).
	ErrNotAssignedPilot = errors.New("pilot is not assigned to this order")
)

// Order is the aggregate root of the fulfillment domain. It manages the order
// lifecycle from placement through dispatch to delivery, the append-only
// timeline, the delivery sub-record and the priced quote.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer contact
//   - Must carry at least one item and a positive volume
//   - Origin and destination coordinates are validated
//   - Status transitions follow the single transition table in Status
//   - An active pilot assignment exists only while dispatched, and at most
//     one claim ever succeeds per order
//   - The timeline only ever grows; entries are never rewritten
//   - Orders are never deleted; terminal orders stay queryable
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order, safe to share with customers
	id kernel.UUID

	// customerContact is where delivery notifications are sent
	customerContact string

	// items are the ordered construction materials
	items []string

	// volume represents the order size (must be positive)
	volume int

	// origin is the pickup point of the shipment
	origin kernel.Coordinates

	// destination is the delivery point of the shipment
	destination kernel.Coordinates

	// pricing is the quote attached at placement
	pricing Pricing

	// status represents the current state in the order lifecycle
	status Status

	// timeline is the append-only history of status changes
	timeline []TimelineEntry

	// delivery tracks the pilot assignment, handoff code and journey milestones
	delivery Delivery

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in the placed status with the first timeline
// entry already recorded. This is the only way to create a fresh order,
// ensuring all business invariants hold from the start.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerContact: where to send delivery notifications (required)
//   - items: ordered materials (at least one, none blank)
//   - volume: order size (must be positive)
//   - origin: pickup coordinates (validated)
//   - destination: delivery coordinates (validated)
//   - pricing: the quote computed for the origin/destination pair
//   - now: server timestamp for the placement timeline entry
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation error if any parameter is invalid
//
// Example:
//
//	orderID := kernel.NewUUID()
//	origin, _ := kernel.NewCoordinates(19.0760, 72.8777)
//	destination, _ := kernel.NewCoordinates(18.5204, 73.8567)
//	order, err := NewOrder(orderID, "site@builder.example", []string{"cement 50kg"},
//	    10, origin, destination, pricing, time.Now().UTC())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerContact string,
	items []string,
	volume int,
	origin kernel.Coordinates,
	destination kernel.Coordinates,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:        Placed,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerContact(customerContact),
		order.setItems(items),
		order.setVolume(volume),
		order.setOrigin(origin),
		order.setDestination(destination),
		order.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	entry, err := NewTimelineEntry(Placed, now, "order placed", "customer")
	if err != nil {
		return nil, err
	}
	order.timeline = append(order.timeline, entry)

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any lifecycle status and an existing timeline and delivery record,
// but it still validates every field and the consistency between status and
// pilot assignment.
//
// Parameters:
//   - id, customerContact, items, volume, origin, destination, pricing: as NewOrder
//   - status: the persisted lifecycle status (must be valid)
//   - timeline: the persisted history (entries already validated on read)
//   - delivery: the persisted delivery record (validated via RestoreDelivery)
//
// Returns:
//   - *Order: the restored order if all validations pass
//   - error: validation error if the persisted state is inconsistent
func RestoreOrder(
	id kernel.UUID,
	customerContact string,
	items []string,
	volume int,
	origin kernel.Coordinates,
	destination kernel.Coordinates,
	pricing Pricing,
	status Status,
	timeline []TimelineEntry,
	delivery Delivery,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerContact(customerContact),
		order.setItems(items),
		order.setVolume(volume),
		order.setOrigin(origin),
		order.setDestination(destination),
		order.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHavePilot(delivery.AssignedPilot() != nil); err != nil {
		return nil, err
	}

	order.status = status
	order.timeline = append(order.timeline, timeline...)
	order.delivery = delivery

	return order, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerContact returns where delivery notifications are sent.
func (o *Order) CustomerContact() string {
	return o.customerContact
}

// Items returns a copy of the ordered materials.
func (o *Order) Items() []string {
	items := make([]string, len(o.items))
	copy(items, o.items)
	return items
}

// Volume returns the order's size.
func (o *Order) Volume() int {
	return o.volume
}

// Origin returns the pickup coordinates of the shipment.
func (o *Order) Origin() kernel.Coordinates {
	return o.origin
}

// Destination returns the delivery coordinates of the shipment.
func (o *Order) Destination() kernel.Coordinates {
	return o.destination
}

// Pricing returns the quote attached at placement.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Timeline returns a copy of the append-only status history, oldest first.
func (o *Order) Timeline() []TimelineEntry {
	timeline := make([]TimelineEntry, len(o.timeline))
	copy(timeline, o.timeline)
	return timeline
}

// Delivery returns the delivery sub-record.
func (o *Order) Delivery() Delivery {
	return o.delivery
}

// AssignedPilot returns the actively assigned pilot's ID.
// Returns nil unless the order is dispatched.
func (o *Order) AssignedPilot() *kernel.UUID {
	return o.delivery.assignedPilotID
}

// Advance moves the order to target after consulting the transition table,
// appending a timeline entry with the given note, actor and server timestamp.
//
// Extra rules beyond the table:
//   - Dispatched can only be reached with an active pilot assignment, so a
//     plain advance request cannot fake a claim
//   - reaching Delivered records deliveredAt, clears the handoff code and
//     releases the assignment (the driver snapshot stays for history)
//   - reaching Cancelled clears the handoff code and releases the assignment
//
// Returns:
//   - nil on success
//   - an error wrapping ErrInvalidTransition when the edge is not allowed,
//     including every request against a terminal order
//
// No notifications are sent from here; event publication rides on the
// caller's transaction.
func (o *Order) Advance(target Status, note string, actor string, now time.Time) error {
	if target == Dispatched && o.delivery.assignedPilotID == nil {
		return fmt.Errorf("%w: dispatched requires an assigned pilot", ErrInvalidTransition)
	}

	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	entry, err := NewTimelineEntry(newStatus, now, note, actor)
	if err != nil {
		return err
	}

	switch newStatus {
	case Delivered:
		o.delivery.deliveredAt = &now
		o.clearHandoffCode()
		o.delivery.assignedPilotID = nil
	case Cancelled:
		o.clearHandoffCode()
		o.delivery.assignedPilotID = nil
	}

	o.status = newStatus
	o.timeline = append(o.timeline, entry)
	return nil
}

// Cancel moves the order to the cancelled terminal state. Allowed from every
// non-terminal status; an active assignment is released and the handoff code
// cleared. The caller is responsible for releasing the pilot aggregate after
// reading AssignedPilot before the call.
func (o *Order) Cancel(note string, actor string, now time.Time) error {
	return o.Advance(Cancelled, note, actor, now)
}

// AssignPilot claims the order for the pilot described by the driver
// snapshot. Exactly one claim ever succeeds per order.
//
// This method enforces the following business rules:
//   - The order must not already carry an active assignment
//   - The order must be ready for dispatch (confirmed, preparing or processing)
//   - The snapshot is copied onto the order so customer-facing details stay
//     stable even if the pilot later corrects their profile
//
// Parameters:
//   - driver: validated snapshot of the claiming pilot
//   - now: server timestamp for the dispatch timeline entry
//
// Returns:
//   - nil on successful claim
//   - ErrPilotAlreadyAssigned when another claim won first
//   - an error wrapping ErrInvalidTransition when the order is not ready
//
// The persistence layer must re-check the assignment with a conditional
// write; this method only guards the in-memory aggregate.
func (o *Order) AssignPilot(driver DriverDetails, now time.Time) error {
	if o.delivery.assignedPilotID != nil {
		return ErrPilotAlreadyAssigned
	}

	pilotID := driver.PilotID()
	if err := pilotID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Advance(Dispatched)
	if err != nil {
		return err
	}

	entry, err := NewTimelineEntry(newStatus, now, fmt.Sprintf("claimed by %s", driver.Name()), pilotID.String())
	if err != nil {
		return err
	}

	o.delivery.assignedPilotID = &pilotID
	o.delivery.driver = &driver
	o.status = newStatus
	o.timeline = append(o.timeline, entry)
	return nil
}

// StartJourney records that the assigned pilot started driving. The order
// must be dispatched and the caller must be the assigned pilot. Starting an
// already started journey fails.
//
// A timeline entry is appended; the status does not change.
func (o *Order) StartJourney(pilotID kernel.UUID, now time.Time) error {
	if o.status != Dispatched {
		return fmt.Errorf("%w: journey requires a dispatched order, not %s", ErrInvalidTransition, o.status)
	}

	if o.delivery.assignedPilotID == nil || !o.delivery.assignedPilotID.IsEqual(pilotID) {
		return ErrNotAssignedPilot
	}

	if o.delivery.journeyStartedAt != nil {
		return fmt.Errorf("%w: journey already started", ErrInvalidTransition)
	}

	entry, err := NewTimelineEntry(o.status, now, "journey started", pilotID.String())
	if err != nil {
		return err
	}

	o.delivery.journeyStartedAt = &now
	o.timeline = append(o.timeline, entry)
	return nil
}

// SetHandoffCode attaches a proof-of-delivery code with its expiry.
// Overwrites any previous code; idempotent reissue of an unexpired code is
// the code service's concern.
func (o *Order) SetHandoffCode(code string, expiresAt time.Time) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot issue a handoff code for a %s order", ErrInvalidTransition, o.status)
	}

	if err := ValidateHandoffCode(code); err != nil {
		return err
	}

	if expiresAt.IsZero() {
		return errs.NewValueIsRequiredError("expiresAt")
	}

	o.delivery.handoffCode = &code
	o.delivery.handoffCodeExpiresAt = &expiresAt
	return nil
}

// CompleteDelivery finishes the handoff: records deliveredAt and the delivery
// notes, clears the handoff code, releases the assignment and moves the order
// to delivered. The caller verifies the handoff code first; nothing here is
// mutated when the transition is rejected.
func (o *Order) CompleteDelivery(notes string, now time.Time) error {
	actor := "system"
	if o.delivery.assignedPilotID != nil {
		actor = o.delivery.assignedPilotID.String()
	}

	if err := o.Advance(Delivered, "delivery completed", actor, now); err != nil {
		return err
	}

	o.delivery.notes = notes
	return nil
}

// ExpireHandoffCode drops the handoff code once its expiry lies at or before
// asOf. Returns true when a code was cleared.
func (o *Order) ExpireHandoffCode(asOf time.Time) bool {
	if o.delivery.handoffCode == nil || o.delivery.handoffCodeExpiresAt == nil {
		return false
	}

	if o.delivery.handoffCodeExpiresAt.After(asOf) {
		return false
	}

	o.clearHandoffCode()
	return true
}

// clearHandoffCode drops the active code and its expiry.
func (o *Order) clearHandoffCode() {
	o.delivery.handoffCode = nil
	o.delivery.handoffCodeExpiresAt = nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerContact validates and sets the notification contact.
// This is a private method used only during construction.
func (o *Order) setCustomerContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("customerContact")
	}
	o.customerContact = contact
	return nil
}

// setItems validates and sets the ordered materials.
// At least one item is required and blank names are rejected.
// This is a private method used only during construction.
func (o *Order) setItems(items []string) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, item := range items {
		if item == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d is blank", i))
		}
	}

	o.items = make([]string, len(items))
	copy(o.items, items)
	return nil
}

// setVolume validates and sets the order's volume.
// Volume must be positive (greater than 0).
// This is a private method used only during construction.
func (o *Order) setVolume(volume int) error {
	if volume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("volume is invalid", fmt.Errorf("%d is not greater than 0", volume))
	}
	o.volume = volume
	return nil
}

// setOrigin validates and sets the pickup coordinates.
// This is a private method used only during construction.
func (o *Order) setOrigin(origin kernel.Coordinates) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	o.origin = origin
	return nil
}

// setDestination validates and sets the delivery coordinates.
// This is a private method used only during construction.
func (o *Order) setDestination(destination kernel.Coordinates) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

// setPricing validates and sets the quote.
// This is a private method used only during construction.
func (o *Order) setPricing(pricing Pricing) error {
	if pricing.Zone() == "" {
		return errs.NewValueIsRequiredError("pricing")
	}
	o.pricing = pricing
	return nil
}
