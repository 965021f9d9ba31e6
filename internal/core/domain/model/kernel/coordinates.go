package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude in degrees.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude in degrees.
	MaxLongitude = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0

	degToRad = math.Pi / 180
)

// ErrCoordinatesAreNotConstructed is returned when attempting to use an improperly
// initialized Coordinates value. Coordinates must be created via NewCoordinates.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// ErrInvalidCoordinates indicates a latitude or longitude outside the valid
// geographic range. Construction failures wrap this sentinel, so callers can
// classify them with errors.Is.
var ErrInvalidCoordinates = errs.NewValueIsInvalidError("coordinates")

// Coordinates represents a geographic point as a latitude/longitude pair in
// decimal degrees. It is an immutable value object: the zero value is invalid
// and construction validates both components against the geographic range.
//
// Coordinates are used for supplier and customer addresses on orders and for
// pilot location reports, and carry the great-circle distance math the pricing
// engine is built on.
//
// Example:
//
//	mumbai, err := kernel.NewCoordinates(19.0760, 72.8777)
//	if err != nil {
//	    // handle validation error
//	}
//	pune, _ := kernel.NewCoordinates(18.5204, 73.8567)
//	km, _ := mumbai.DistanceKmTo(pune) // ≈ 118 km
type Coordinates struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinates creates a Coordinates value from decimal degrees.
// Latitude must lie in [MinLatitude, MaxLatitude] and longitude in
// [MinLongitude, MaxLongitude]; NaN is rejected for both.
//
// Parameters:
//   - latitude: north-south position in decimal degrees
//   - longitude: east-west position in decimal degrees
//
// Returns:
//   - Coordinates: a valid geographic point
//   - error: wraps ErrInvalidCoordinates when either component is out of range
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	coords := Coordinates{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(coords.setLatitude(latitude), coords.setLongitude(longitude)); err != nil {
		return Coordinates{}, err
	}

	return coords, nil
}

// Validate checks that the Coordinates value was created via NewCoordinates.
// The zero value fails with ErrCoordinatesAreNotConstructed.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

// Latitude returns the north-south component in decimal degrees.
func (c Coordinates) Latitude() float64 {
	return c.latitude
}

// Longitude returns the east-west component in decimal degrees.
func (c Coordinates) Longitude() float64 {
	return c.longitude
}

// String returns a human-readable representation in the form "(lat,lon)"
// with six decimal places, enough for street-level precision in logs.
func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f,%.6f)", c.latitude, c.longitude)
}

// IsEqual compares two coordinate pairs for exact equality of both components.
// Both values must be properly constructed for the comparison to succeed.
//
// Returns:
//   - bool: true if latitude and longitude match exactly
//   - error: validation error if either value is improperly constructed
func (c Coordinates) IsEqual(other Coordinates) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.latitude == other.latitude && c.longitude == other.longitude, nil
}

// DistanceKmTo calculates the great-circle distance to another point in
// kilometers using the haversine formula over a spherical Earth of mean
// radius 6371 km.
//
// The result is symmetric (a.DistanceKmTo(b) == b.DistanceKmTo(a)) and zero
// for identical points. Both values must be properly constructed.
//
// Parameters:
//   - other: the destination point
//
// Returns:
//   - float64: distance in kilometers
//   - error: validation error if either value is improperly constructed
//
// Example:
//
//	mumbai, _ := kernel.NewCoordinates(19.0760, 72.8777)
//	pune, _ := kernel.NewCoordinates(18.5204, 73.8567)
//	km, _ := mumbai.DistanceKmTo(pune) // ≈ 118 km
func (c Coordinates) DistanceKmTo(other Coordinates) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := (other.latitude - c.latitude) * degToRad
	dLon := (other.longitude - c.longitude) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(c.latitude*degToRad)*math.Cos(other.latitude*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	arc := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * arc, nil
}

// setLatitude sets the latitude with range validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (c *Coordinates) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errors.Join(
			ErrInvalidCoordinates,
			errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude),
		)
	}

	c.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (c *Coordinates) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errors.Join(
			ErrInvalidCoordinates,
			errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude),
		)
	}

	c.longitude = longitude
	return nil
}
