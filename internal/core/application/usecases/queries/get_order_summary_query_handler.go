package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler retrieves one order's read model from the database.
// Loads the order row first and the timeline rows second; both reads hit the
// same tables the write side maintains, there is no separate projection.
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSummaryQueryHandler creates a handler for order summary queries.
// Requires a GORM database connection for query execution.
func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle executes the query to retrieve a single order summary.
// Returns an ObjectNotFoundError when no order has the requested ID.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	summary, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	timeline, err := h.loadTimeline(ctx, query.OrderID())
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	summary.Timeline = timeline

	return summary, nil
}

func (h GetOrderSummaryQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderSummaryQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_contact,
			items,
			volume,
			destination_latitude,
			destination_longitude,
			pricing_distance_km,
			pricing_zone,
			pricing_eta,
			pricing_transport_cost,
			pricing_items_total,
			pricing_total,
			assigned_pilot_id,
			delivery_driver_name,
			delivery_driver_phone,
			delivery_driver_vehicle_reg,
			delivery_handoff_code_expires_at,
			delivery_journey_started_at,
			delivery_delivered_at,
			delivery_notes
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var summary GetOrderSummaryQueryResponse
	var id uuid.UUID
	var items pq.StringArray
	var latitude, longitude float64
	var assignedPilotID uuid.NullUUID
	var driverName, driverPhone, driverVehicleReg sql.NullString
	var codeExpiresAt, journeyStartedAt, deliveredAt sql.NullTime

	err := row.Scan(
		&id,
		&summary.Status,
		&summary.CustomerContact,
		&items,
		&summary.Volume,
		&latitude,
		&longitude,
		&summary.DistanceKm,
		&summary.Zone,
		&summary.Eta,
		&summary.TransportCost,
		&summary.ItemsTotal,
		&summary.Total,
		&assignedPilotID,
		&driverName,
		&driverPhone,
		&driverVehicleReg,
		&codeExpiresAt,
		&journeyStartedAt,
		&deliveredAt,
		&summary.DeliveryNotes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderSummaryQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderSummaryQueryResponse{}, err
	}

	summaryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	summary.ID = summaryID

	destination, err := kernel.NewCoordinates(latitude, longitude)
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	summary.Destination = destination
	summary.Items = []string(items)

	if assignedPilotID.Valid {
		pilotID, pilotErr := kernel.UUIDFromBytes(assignedPilotID.UUID[:])
		if pilotErr != nil {
			return GetOrderSummaryQueryResponse{}, pilotErr
		}
		summary.AssignedPilotID = &pilotID
	}

	summary.DriverName = nullableString(driverName)
	summary.DriverPhone = nullableString(driverPhone)
	summary.DriverVehicleReg = nullableString(driverVehicleReg)
	summary.HandoffCodeExpiresAt = nullableTime(codeExpiresAt)
	summary.JourneyStartedAt = nullableTime(journeyStartedAt)
	summary.DeliveredAt = nullableTime(deliveredAt)

	return summary, nil
}

func (h GetOrderSummaryQueryHandler) loadTimeline(
	ctx context.Context,
	orderID kernel.UUID,
) ([]TimelineEntryView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			at,
			note,
			actor
		FROM order_timeline_entries
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timeline := make([]TimelineEntryView, 0)
	for rows.Next() {
		var entry TimelineEntryView

		if err = rows.Scan(&entry.Status, &entry.At, &entry.Note, &entry.Actor); err != nil {
			return nil, err
		}

		timeline = append(timeline, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return timeline, nil
}

// nullableString converts a NULL-able text column to an optional value.
func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

// nullableTime converts a NULL-able timestamp column to an optional value.
func nullableTime(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	return &value.Time
}
