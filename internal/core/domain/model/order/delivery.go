package order

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// handoffCodeLength is the exact number of digits in a delivery handoff code.
const handoffCodeLength = 6

// ValidateHandoffCode checks the wire format of a handoff code: exactly six
// ASCII digits. It says nothing about whether the code matches an order.
func ValidateHandoffCode(code string) error {
	if len(code) != handoffCodeLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"handoff code",
			fmt.Errorf("code must be exactly %d digits", handoffCodeLength),
		)
	}

	for _, c := range code {
		if c < '0' || c > '9' {
			return errs.NewValueIsInvalidErrorWithCause(
				"handoff code",
				fmt.Errorf("code must contain only digits"),
			)
		}
	}

	return nil
}

// DriverDetails is the driver snapshot copied onto an order at claim time.
// The snapshot keeps the customer-facing contact details stable for the rest
// of the delivery even if the pilot later corrects their profile, and it
// remains on the order after terminal states as the permanent record of who
// carried it.
type DriverDetails struct {
	// pilotID is the pilot the snapshot was taken from
	pilotID kernel.UUID

	// name is the pilot's display name at claim time
	name string

	// phone is the pilot's contact phone at claim time
	phone string

	// vehicleReg is the vehicle registration at claim time
	vehicleReg string
}

// NewDriverDetails creates a validated driver snapshot.
//
// Parameters:
//   - pilotID: the pilot the details belong to (must be a valid UUID)
//   - name: pilot display name (required)
//   - phone: contact phone (required)
//   - vehicleReg: vehicle registration (required)
//
// Returns:
//   - DriverDetails: the created snapshot if validation passes
//   - error: validation error otherwise
func NewDriverDetails(pilotID kernel.UUID, name, phone, vehicleReg string) (DriverDetails, error) {
	if err := pilotID.Validate(); err != nil {
		return DriverDetails{}, err
	}

	if name == "" {
		return DriverDetails{}, errs.NewValueIsRequiredError("name")
	}

	if phone == "" {
		return DriverDetails{}, errs.NewValueIsRequiredError("phone")
	}

	if vehicleReg == "" {
		return DriverDetails{}, errs.NewValueIsRequiredError("vehicleReg")
	}

	return DriverDetails{
		pilotID:    pilotID,
		name:       name,
		phone:      phone,
		vehicleReg: vehicleReg,
	}, nil
}

// PilotID returns the pilot the snapshot was taken from.
func (d DriverDetails) PilotID() kernel.UUID {
	return d.pilotID
}

// Name returns the pilot's display name at claim time.
func (d DriverDetails) Name() string {
	return d.name
}

// Phone returns the pilot's contact phone at claim time.
func (d DriverDetails) Phone() string {
	return d.phone
}

// VehicleReg returns the vehicle registration at claim time.
func (d DriverDetails) VehicleReg() string {
	return d.vehicleReg
}

// Delivery is the delivery sub-record of an order. It tracks the active pilot
// assignment, the driver snapshot, the handoff code and the journey
// milestones. The zero value is a valid empty record for a fresh order.
type Delivery struct {
	// assignedPilotID is the active assignment, nil outside dispatched
	assignedPilotID *kernel.UUID

	// driver is the snapshot taken at claim time, kept after terminal states
	driver *DriverDetails

	// handoffCode is the proof-of-delivery code, nil when none is active
	handoffCode *string

	// handoffCodeExpiresAt pairs with handoffCode
	handoffCodeExpiresAt *time.Time

	// journeyStartedAt is set when the pilot starts driving
	journeyStartedAt *time.Time

	// deliveredAt is set when the handoff completes
	deliveredAt *time.Time

	// notes are free-form delivery notes recorded at completion
	notes string
}

// RestoreDelivery reconstructs a delivery record from persistence and checks
// its internal consistency.
//
// Consistency rules:
//   - a handoff code requires an expiry and a valid 6-digit format
//   - an active assignment requires a driver snapshot for the same pilot
//
// Returns:
//   - Delivery: the restored record if consistent
//   - error: validation error otherwise
func RestoreDelivery(
	assignedPilotID *kernel.UUID,
	driver *DriverDetails,
	handoffCode *string,
	handoffCodeExpiresAt *time.Time,
	journeyStartedAt *time.Time,
	deliveredAt *time.Time,
	notes string,
) (Delivery, error) {
	if handoffCode != nil {
		if err := ValidateHandoffCode(*handoffCode); err != nil {
			return Delivery{}, err
		}

		if handoffCodeExpiresAt == nil || handoffCodeExpiresAt.IsZero() {
			return Delivery{}, errs.NewValueIsRequiredError("handoffCodeExpiresAt")
		}
	}

	if assignedPilotID != nil {
		if err := assignedPilotID.Validate(); err != nil {
			return Delivery{}, err
		}

		if driver == nil {
			return Delivery{}, errs.NewValueIsRequiredError("driver")
		}

		if !driver.PilotID().IsEqual(*assignedPilotID) {
			return Delivery{}, errs.NewValueIsInvalidErrorWithCause(
				"driver",
				fmt.Errorf("driver snapshot belongs to pilot %s, not assigned pilot %s",
					driver.PilotID(), *assignedPilotID),
			)
		}
	}

	return Delivery{
		assignedPilotID:      assignedPilotID,
		driver:               driver,
		handoffCode:          handoffCode,
		handoffCodeExpiresAt: handoffCodeExpiresAt,
		journeyStartedAt:     journeyStartedAt,
		deliveredAt:          deliveredAt,
		notes:                notes,
	}, nil
}

// AssignedPilot returns the actively assigned pilot's ID.
// Returns nil when the order is not dispatched.
func (d Delivery) AssignedPilot() *kernel.UUID {
	return d.assignedPilotID
}

// Driver returns the driver snapshot taken at claim time.
// Returns nil when the order was never claimed.
func (d Delivery) Driver() *DriverDetails {
	return d.driver
}

// HandoffCode returns the active handoff code, or nil.
func (d Delivery) HandoffCode() *string {
	return d.handoffCode
}

// HandoffCodeExpiresAt returns the expiry of the active handoff code, or nil.
func (d Delivery) HandoffCodeExpiresAt() *time.Time {
	return d.handoffCodeExpiresAt
}

// JourneyStartedAt returns when the pilot started driving, or nil.
func (d Delivery) JourneyStartedAt() *time.Time {
	return d.journeyStartedAt
}

// DeliveredAt returns when the handoff completed, or nil.
func (d Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// Notes returns the delivery notes recorded at completion.
func (d Delivery) Notes() string {
	return d.notes
}
