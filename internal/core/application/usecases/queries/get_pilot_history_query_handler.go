package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPilotHistoryQueryHandler retrieves a pilot's terminal orders from the database.
// Matches on the persisted driver snapshot rather than the live assignment,
// because delivery and cancellation both release the assignment column.
type GetPilotHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetPilotHistoryQueryHandler creates a handler for pilot history queries.
// Requires a GORM database connection for query execution.
func NewGetPilotHistoryQueryHandler(db *gorm.DB) GetPilotHistoryQueryHandler {
	return GetPilotHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve one page of a pilot's history.
// Rows are sorted most recently settled first; the ID tiebreak keeps
// pagination stable when settlements share a timestamp.
func (h GetPilotHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetPilotHistoryQuery,
) (GetPilotHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPilotHistoryQueryResponse{}, err
	}

	response := GetPilotHistoryQueryResponse{
		Items:    make([]PilotHistoryItem, 0, query.PageSize()),
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}

	pilotID := query.PilotID().Bytes()

	countRow := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE delivery_driver_pilot_id = ? AND status IN (?, ?)
	`, pilotID, order.Delivered.String(), order.Cancelled.String()).Row()

	if err := countRow.Scan(&response.TotalCount); err != nil {
		return GetPilotHistoryQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			destination_latitude,
			destination_longitude,
			pricing_total,
			delivery_delivered_at,
			delivery_notes
		FROM orders
		WHERE delivery_driver_pilot_id = ? AND status IN (?, ?)
		ORDER BY updated_at DESC, id
		LIMIT ? OFFSET ?
	`, pilotID, order.Delivered.String(), order.Cancelled.String(), query.PageSize(), offset).Rows()
	if err != nil {
		return GetPilotHistoryQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item PilotHistoryItem
		var id uuid.UUID
		var latitude, longitude float64
		var deliveredAt sql.NullTime

		err = rows.Scan(
			&id,
			&item.Status,
			&latitude,
			&longitude,
			&item.Total,
			&deliveredAt,
			&item.Notes,
		)
		if err != nil {
			return GetPilotHistoryQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetPilotHistoryQueryResponse{}, idErr
		}
		item.OrderID = orderID

		destination, destErr := kernel.NewCoordinates(latitude, longitude)
		if destErr != nil {
			return GetPilotHistoryQueryResponse{}, destErr
		}
		item.Destination = destination
		item.DeliveredAt = nullableTime(deliveredAt)

		response.Items = append(response.Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetPilotHistoryQueryResponse{}, err
	}

	return response, nil
}
