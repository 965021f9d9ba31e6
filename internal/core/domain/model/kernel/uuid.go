package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one
// of the constructor functions. Validating a zero-value UUID returns it.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object used by every entity and aggregate in the
// dispatch domain. It wraps github.com/google/uuid so the rest of the domain
// never touches the library type directly.
//
// The zero value is invalid. Construct through NewUUID, UUIDFromString, or
// UUIDFromBytes; anything else fails Validate.
//
// UUID is immutable and safe for concurrent use.
//
// Example usage:
//
//	// Fresh identifier for a new aggregate
//	orderID := kernel.NewUUID()
//
//	// Restore from the wire or the database
//	pilotID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). This is the primary way to
// mint identifiers for orders and pilots.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation. It accepts the
// standard formats, including:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Used when rehydrating entities from persistence and when binding identifiers
// arriving over HTTP or Kafka.
//
// Example:
//
//	id, err := kernel.UUIDFromString(request.OrderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a byte slice, which must be exactly 16
// bytes long. Useful when identifiers are stored or transported in binary
// form.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(raw)
//	if err != nil {
//	    return fmt.Errorf("invalid UUID bytes: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// A zero value renders as "00000000-0000-0000-0000-000000000000".
//
// This is the form used in logs, JSON payloads, and database columns.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying UUID value.
// Note: This returns the wrapped uuid.UUID, not a byte slice. For a byte
// slice, index the result: id.Bytes()[:].
//
// Reach for this only at integration boundaries that need the library type;
// domain code should stay on the wrapper.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality by value.
//
// Example:
//
//	if current := pilot.CurrentOrder(); current != nil && current.IsEqual(orderID) {
//	    // this pilot is carrying the order
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks if the UUID was properly constructed. It returns
// ErrUUIDIsNotConstructed for the zero value.
//
// Commands and aggregates call this on identifiers received from outside
// before doing anything with them.
//
// Example:
//
//	func NewClaimOrderCommand(orderID kernel.UUID) (ClaimOrderCommand, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return ClaimOrderCommand{}, err
//	    }
//	    // ...
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
