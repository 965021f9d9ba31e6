// Package pilotrepo provides data transfer objects and mapping functions for pilot persistence.
// This package implements the repository pattern for the pilot domain aggregate, handling
// the conversion between domain entities and database representations.
package pilotrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/pilot"

	"github.com/google/uuid"
)

// PilotDTO represents the database structure for persisting pilot aggregates.
// Availability and the carried order get their own indexed columns because
// the claim path and operational dashboards filter on them.
type PilotDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name               string     `gorm:"type:varchar(255);not null"`
	Phone              string     `gorm:"type:varchar(32);not null"`
	VehicleReg         string     `gorm:"type:varchar(32);not null"`
	Capacity           int        `gorm:"type:int;not null"`
	IsAvailable        bool       `gorm:"not null;index"`
	CurrentOrderID     *uuid.UUID `gorm:"type:uuid;index"`
	LocationLatitude   *float64   `gorm:"type:double precision"`
	LocationLongitude  *float64   `gorm:"type:double precision"`
	LocationReportedAt *time.Time
	TotalDeliveries    int       `gorm:"type:int;not null"`
	Rating             float64   `gorm:"type:double precision;not null"`
	RatingsCount       int       `gorm:"type:int;not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName specifies the database table name for pilot entities.
// Overrides GORM's default naming convention to use "pilots".
func (PilotDTO) TableName() string {
	return "pilots"
}

// fromDomain converts a pilot domain aggregate to its database representation.
// The last reported location is optional; a pilot that never reported stays NULL.
func fromDomain(aggregate *pilot.Pilot) PilotDTO {
	var currentOrderID *uuid.UUID
	if id := aggregate.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	var latitude, longitude *float64
	var reportedAt *time.Time
	if location := aggregate.LastLocation(); location != nil {
		lat := location.Coordinates().Latitude()
		lon := location.Coordinates().Longitude()
		at := location.ReportedAt()

		latitude = &lat
		longitude = &lon
		reportedAt = &at
	}

	profile := aggregate.Profile()

	return PilotDTO{
		ID:                 aggregate.ID().Bytes(),
		Name:               profile.Name(),
		Phone:              profile.Phone(),
		VehicleReg:         profile.VehicleReg(),
		Capacity:           profile.Capacity(),
		IsAvailable:        aggregate.IsAvailable(),
		CurrentOrderID:     currentOrderID,
		LocationLatitude:   latitude,
		LocationLongitude:  longitude,
		LocationReportedAt: reportedAt,
		TotalDeliveries:    aggregate.TotalDeliveries(),
		Rating:             aggregate.Rating(),
		RatingsCount:       aggregate.RatingsCount(),
	}
}

// toDomain converts a database DTO to a pilot domain aggregate.
// Reconstructs the aggregate including availability, carried order and the
// delivery statistics using RestorePilot.
func toDomain(dto PilotDTO) (*pilot.Pilot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	profile, err := pilot.NewProfile(dto.Name, dto.Phone, dto.VehicleReg, dto.Capacity)
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &orderID
	}

	var lastLocation *pilot.TrackedLocation
	if dto.LocationLatitude != nil && dto.LocationLongitude != nil && dto.LocationReportedAt != nil {
		coordinates, coordErr := kernel.NewCoordinates(*dto.LocationLatitude, *dto.LocationLongitude)
		if coordErr != nil {
			return nil, coordErr
		}

		location, locErr := pilot.NewTrackedLocation(coordinates, *dto.LocationReportedAt)
		if locErr != nil {
			return nil, locErr
		}
		lastLocation = &location
	}

	return pilot.RestorePilot(
		id,
		profile,
		dto.IsAvailable,
		currentOrderID,
		lastLocation,
		dto.TotalDeliveries,
		dto.Rating,
		dto.RatingsCount,
	)
}
