package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a status change request is not in the
// allowed transition table. Callers classify it with errors.Is.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a single transition table so that
// illegal transitions are rejected in one place instead of ad hoc checks
// scattered across callers.
//
// State transitions:
//
//	placed ──> confirmed ──> preparing ──> processing ──> dispatched ──> delivered
//	               │              │             │              │
//	               └──────────────┴──────┬──────┴──────────────┘
//	                                     v
//	                                dispatched (claim may collect a ready order directly)
//
//	cancelled is reachable from every non-terminal state; delivered and
//	cancelled are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when a checkout produces an order.
	Placed

	// Confirmed indicates payment succeeded; the order is ready for fulfillment.
	Confirmed

	// Preparing indicates the supplier is picking and packing the materials.
	Preparing

	// Processing indicates the parcel is packed and staged for dispatch.
	Processing

	// Dispatched indicates exactly one pilot has claimed the order and is
	// carrying it. Only in this status may an active pilot assignment exist.
	Dispatched

	// Delivered indicates the handoff code was verified and the parcel handed
	// over. This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Placed:     "placed",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Processing: "processing",
		Dispatched: "dispatched",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:     "placed",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Processing: "processing",
		Dispatched: "dispatched",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getAllowedTransitions is the single transition table of the lifecycle.
// The forward chain has no back-edges; a ready order (confirmed, preparing or
// processing) may additionally move straight to dispatched when a pilot
// claims it; cancelled is reachable from every non-terminal state.
func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Placed:     {Confirmed, Cancelled},
		Confirmed:  {Preparing, Dispatched, Cancelled},
		Preparing:  {Processing, Dispatched, Cancelled},
		Processing: {Dispatched, Cancelled},
		Dispatched: {Delivered, Cancelled},
	}
}

// StatusFromString parses a status name as used on the wire ("placed",
// "confirmed", ...). Returns an error for unknown names.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status name", name),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Placed, Confirmed, Preparing, Processing, Dispatched,
// Delivered, Cancelled. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("placed", "confirmed", ...).
// Invalid values return "unknown". Implements fmt.Stringer and is safe to
// call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo consults the transition table without performing the
// transition. Useful for pre-validation in handlers.
//
// Example:
//
//	if !order.Status().CanTransitionTo(order.Cancelled) {
//	    // order already terminal
//	}
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Advance transitions the status to next after consulting the transition
// table.
//
// Returns:
//   - (next, nil) when the edge exists in the table
//   - (0, error) wrapping ErrInvalidTransition otherwise, including every
//     request against a terminal status
//
// This method is used by Order.Advance() to enforce state transitions.
//
// Example:
//
//	newStatus, err := currentStatus.Advance(order.Confirmed)
//	if err != nil {
//	    // transition not allowed
//	}
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, fmt.Errorf("%w: %s cannot transition to %s", ErrInvalidTransition, s, next)
	}

	return next, nil
}

// ValidateCanHavePilot validates the consistency between order status and an
// active pilot assignment. An active assignment may exist only while the
// order is dispatched; every other status requires the assignment to be
// empty.
//
// Parameters:
//   - assigned: whether the order has an active pilot assignment
//
// Returns:
//   - error: validation error if status and assignment are inconsistent
func (s Status) ValidateCanHavePilot(assigned bool) error {
	if assigned && s != Dispatched {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an assigned pilot", s.String()),
		)
	}

	if !assigned && s == Dispatched {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no assigned pilot", s.String()),
		)
	}

	return nil
}
