package pilot

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Profile holds the pilot's self-reported details: display name, contact
// phone, vehicle registration and carrying capacity. The profile is immutable
// except through the pilot's own corrected resubmission via
// Pilot.UpdateProfile; nobody else edits it.
//
// Orders copy the customer-facing parts of the profile into a DriverDetails
// snapshot at claim time, so later corrections never rewrite history.
type Profile struct {
	// name is the pilot's display name
	name string

	// phone is the pilot's contact phone
	phone string

	// vehicleReg is the vehicle registration plate
	vehicleReg string

	// capacity is the maximum order volume the vehicle carries
	capacity int
}

// NewProfile creates a validated pilot profile.
//
// Parameters:
//   - name: display name (required)
//   - phone: contact phone (required)
//   - vehicleReg: vehicle registration (required)
//   - capacity: maximum order volume (must be positive)
//
// Returns:
//   - Profile: the created profile if validation passes
//   - error: validation error otherwise
func NewProfile(name, phone, vehicleReg string, capacity int) (Profile, error) {
	if name == "" {
		return Profile{}, errs.NewValueIsRequiredError("name")
	}

	if phone == "" {
		return Profile{}, errs.NewValueIsRequiredError("phone")
	}

	if vehicleReg == "" {
		return Profile{}, errs.NewValueIsRequiredError("vehicleReg")
	}

	if capacity <= 0 {
		return Profile{}, errs.NewValueIsInvalidErrorWithCause(
			"capacity",
			fmt.Errorf("%d is not greater than 0", capacity),
		)
	}

	return Profile{
		name:       name,
		phone:      phone,
		vehicleReg: vehicleReg,
		capacity:   capacity,
	}, nil
}

// Name returns the pilot's display name.
func (p Profile) Name() string {
	return p.name
}

// Phone returns the pilot's contact phone.
func (p Profile) Phone() string {
	return p.phone
}

// VehicleReg returns the vehicle registration plate.
func (p Profile) VehicleReg() string {
	return p.vehicleReg
}

// Capacity returns the maximum order volume the vehicle carries.
func (p Profile) Capacity() int {
	return p.capacity
}

// Validate reports whether the profile carries all required fields.
// The zero value fails.
func (p Profile) Validate() error {
	if p.name == "" || p.phone == "" || p.vehicleReg == "" || p.capacity <= 0 {
		return errs.NewValueIsRequiredError("profile")
	}

	return nil
}
