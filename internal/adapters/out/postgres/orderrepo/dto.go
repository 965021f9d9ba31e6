// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and pilot assignment.
//
// The assigned pilot lives in its own column so the claim path can run a
// conditional UPDATE against it; the rest of the delivery record is embedded
// under the delivery_ prefix.
type OrderDTO struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CustomerContact string             `gorm:"type:varchar(255);not null"`
	Items           pq.StringArray     `gorm:"type:text[];not null"`
	Volume          int                `gorm:"type:int;not null"`
	Status          string             `gorm:"type:varchar(16);not null;index"`
	AssignedPilotID *uuid.UUID         `gorm:"type:uuid;index"`
	Origin          CoordinatesDTO     `gorm:"embedded;embeddedPrefix:origin_"`
	Destination     CoordinatesDTO     `gorm:"embedded;embeddedPrefix:destination_"`
	Pricing         PricingDTO         `gorm:"embedded;embeddedPrefix:pricing_"`
	Delivery        DeliveryDTO        `gorm:"embedded;embeddedPrefix:delivery_"`
	TimelineEntries []TimelineEntryDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `gorm:"not null;index"`
	UpdatedAt       time.Time          `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CoordinatesDTO represents embedded geographic coordinates within the order table.
// Used for both the pickup origin and the delivery destination.
type CoordinatesDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

// PricingDTO represents the embedded pricing breakdown within the order table.
// The grand total is stored redundantly so read models can report it without
// recomputing money amounts in SQL.
type PricingDTO struct {
	DistanceKm    float64         `gorm:"type:double precision;not null"`
	Zone          string          `gorm:"type:varchar(32);not null"`
	Eta           string          `gorm:"type:varchar(32);not null"`
	RatePerKm     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TransportCost decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ItemsTotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// DeliveryDTO represents the embedded delivery record within the order table.
// The driver columns hold the snapshot copied at claim time; they survive
// terminal transitions so delivery history can be queried per pilot.
type DeliveryDTO struct {
	DriverPilotID        *uuid.UUID `gorm:"type:uuid;index"`
	DriverName           *string    `gorm:"type:varchar(255)"`
	DriverPhone          *string    `gorm:"type:varchar(32)"`
	DriverVehicleReg     *string    `gorm:"type:varchar(32)"`
	HandoffCode          *string    `gorm:"type:varchar(6)"`
	HandoffCodeExpiresAt *time.Time `gorm:"index"`
	JourneyStartedAt     *time.Time
	DeliveredAt          *time.Time
	Notes                string `gorm:"type:text"`
}

// TimelineEntryDTO represents one row of an order's append-only history.
// The (order_id, seq) composite key mirrors the position of the entry in the
// aggregate's timeline, so re-inserting already persisted entries is a no-op
// under ON CONFLICT DO NOTHING.
type TimelineEntryDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey;autoIncrement:false"`
	Status  string    `gorm:"type:varchar(16);not null"`
	At      time.Time `gorm:"not null"`
	Note    string    `gorm:"type:text"`
	Actor   string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for timeline entries.
// Overrides GORM's default naming convention to use "order_timeline_entries".
func (TimelineEntryDTO) TableName() string {
	return "order_timeline_entries"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional pilot assignment, the
// driver snapshot and the full timeline.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var assignedPilotID *uuid.UUID
	if id := aggregate.AssignedPilot(); id != nil {
		raw := id.Bytes()
		assignedPilotID = &raw
	}

	delivery := aggregate.Delivery()

	var driverPilotID *uuid.UUID
	var driverName, driverPhone, driverVehicleReg *string
	if driver := delivery.Driver(); driver != nil {
		raw := driver.PilotID().Bytes()
		name := driver.Name()
		phone := driver.Phone()
		vehicleReg := driver.VehicleReg()

		driverPilotID = &raw
		driverName = &name
		driverPhone = &phone
		driverVehicleReg = &vehicleReg
	}

	timeline := aggregate.Timeline()
	entries := make([]TimelineEntryDTO, 0, len(timeline))
	for seq, entry := range timeline {
		entries = append(entries, TimelineEntryDTO{
			OrderID: orderID,
			Seq:     seq,
			Status:  entry.Status().String(),
			At:      entry.At(),
			Note:    entry.Note(),
			Actor:   entry.Actor(),
		})
	}

	pricing := aggregate.Pricing()

	return OrderDTO{
		ID:              orderID,
		CustomerContact: aggregate.CustomerContact(),
		Items:           pq.StringArray(aggregate.Items()),
		Volume:          aggregate.Volume(),
		Status:          aggregate.Status().String(),
		AssignedPilotID: assignedPilotID,
		Origin: CoordinatesDTO{
			Latitude:  aggregate.Origin().Latitude(),
			Longitude: aggregate.Origin().Longitude(),
		},
		Destination: CoordinatesDTO{
			Latitude:  aggregate.Destination().Latitude(),
			Longitude: aggregate.Destination().Longitude(),
		},
		Pricing: PricingDTO{
			DistanceKm:    pricing.DistanceKm(),
			Zone:          pricing.Zone(),
			Eta:           pricing.Eta(),
			RatePerKm:     pricing.RatePerKm(),
			TransportCost: pricing.TransportCost(),
			ItemsTotal:    pricing.ItemsTotal(),
			Total:         pricing.Total(),
		},
		Delivery: DeliveryDTO{
			DriverPilotID:        driverPilotID,
			DriverName:           driverName,
			DriverPhone:          driverPhone,
			DriverVehicleReg:     driverVehicleReg,
			HandoffCode:          delivery.HandoffCode(),
			HandoffCodeExpiresAt: delivery.HandoffCodeExpiresAt(),
			JourneyStartedAt:     delivery.JourneyStartedAt(),
			DeliveredAt:          delivery.DeliveredAt(),
			Notes:                delivery.Notes(),
		},
		TimelineEntries: entries,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including timeline and delivery record
// using RestoreOrder, so every consistency rule is re-checked on read.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewCoordinates(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewCoordinates(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(
		dto.Pricing.DistanceKm,
		dto.Pricing.Zone,
		dto.Pricing.Eta,
		dto.Pricing.RatePerKm,
		dto.Pricing.TransportCost,
		dto.Pricing.ItemsTotal,
	)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	timeline := make([]order.TimelineEntry, 0, len(dto.TimelineEntries))
	for _, entryDto := range dto.TimelineEntries {
		entry, entryErr := timelineEntryToDomain(entryDto)
		if entryErr != nil {
			return nil, entryErr
		}
		timeline = append(timeline, entry)
	}

	delivery, err := deliveryToDomain(dto.AssignedPilotID, dto.Delivery)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerContact,
		[]string(dto.Items),
		dto.Volume,
		origin,
		destination,
		pricing,
		status,
		timeline,
		delivery,
	)
}

// timelineEntryToDomain converts a timeline row to its domain value object.
func timelineEntryToDomain(dto TimelineEntryDTO) (order.TimelineEntry, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return order.TimelineEntry{}, err
	}

	return order.NewTimelineEntry(status, dto.At, dto.Note, dto.Actor)
}

// deliveryToDomain converts the assignment column and the embedded delivery
// columns back to the domain delivery record.
func deliveryToDomain(assignedPilotID *uuid.UUID, dto DeliveryDTO) (order.Delivery, error) {
	var pilotID *kernel.UUID
	if assignedPilotID != nil {
		id, err := kernel.UUIDFromBytes((*assignedPilotID)[:])
		if err != nil {
			return order.Delivery{}, err
		}
		pilotID = &id
	}

	var driver *order.DriverDetails
	if dto.DriverPilotID != nil {
		driverPilotID, err := kernel.UUIDFromBytes((*dto.DriverPilotID)[:])
		if err != nil {
			return order.Delivery{}, err
		}

		details, err := order.NewDriverDetails(
			driverPilotID,
			stringValue(dto.DriverName),
			stringValue(dto.DriverPhone),
			stringValue(dto.DriverVehicleReg),
		)
		if err != nil {
			return order.Delivery{}, err
		}
		driver = &details
	}

	return order.RestoreDelivery(
		pilotID,
		driver,
		dto.HandoffCode,
		dto.HandoffCodeExpiresAt,
		dto.JourneyStartedAt,
		dto.DeliveredAt,
		dto.Notes,
	)
}

// stringValue dereferences an optional text column, treating NULL as empty.
func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
