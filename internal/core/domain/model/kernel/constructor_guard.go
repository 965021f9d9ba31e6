package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate() when the
// caller passes a nil validation error. Validation of an unconstructed object
// therefore always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. A zero-value struct skips the
// constructor's validation, so every guarded type can detect and reject it.
//
// The guard holds a private flag that only the constructor can set. Embed it in
// a struct, initialize it with NewConstructorGuard() inside the constructor, and
// have the type's Validate method delegate to the guard. Any instance produced
// by plain struct literal or by var declaration then fails validation.
//
// Example usage:
//
//	var ErrVolumeIsNotConstructed = errors.New("Volume must be created via NewVolume")
//
//	type Volume struct {
//	    cubicMeters int
//	    guard       ConstructorGuard
//	}
//
//	func NewVolume(cubicMeters int) (Volume, error) {
//	    if cubicMeters <= 0 {
//	        return Volume{}, errors.New("volume must be positive")
//	    }
//	    return Volume{
//	        cubicMeters: cubicMeters,
//	        guard:       NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (v Volume) Validate() error {
//	    return v.guard.Validate(ErrVolumeIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it in the
// constructor of a domain object so later validation can tell the instance
// apart from a zero value.
//
// Example:
//
//	func NewPilot(id UUID, profile Profile) Pilot {
//	    return Pilot{
//	        id:      id,
//	        profile: profile,
//	        guard:   NewConstructorGuard(),
//	    }
//	}
//
// Returns:
//   - A ConstructorGuard with isConstructed set to true
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor.
//
// If the object is a zero value, the provided validationError is returned so
// each type can report its own sentinel. Passing a nil validationError falls
// back to ErrDefaultConstructorGuard.
//
// Parameters:
//   - validationError: The error to return if the object was not properly constructed
//
// Example:
//
//	var ErrTimelineEntryIsNotConstructed = errors.New("TimelineEntry must be created via NewTimelineEntry")
//
//	func (e TimelineEntry) Validate() error {
//	    if err := e.guard.Validate(ErrTimelineEntryIsNotConstructed); err != nil {
//	        return err
//	    }
//	    // Additional validation logic...
//	    return nil
//	}
//
// Returns:
//   - nil if the object was properly constructed
//   - validationError if the object was not constructed through its constructor
//   - ErrDefaultConstructorGuard if validationError is nil and object not constructed
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
