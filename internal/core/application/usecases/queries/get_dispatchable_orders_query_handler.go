package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDispatchableOrdersQueryHandler retrieves claimable orders from the database.
// An order is claimable while it sits in a ready status with no assigned pilot;
// the claim itself re-checks both conditions with a conditional write, so this
// read model may be optimistically stale.
type GetDispatchableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetDispatchableOrdersQueryHandler creates a handler for dispatchable order queries.
// Requires a GORM database connection for query execution.
func NewGetDispatchableOrdersQueryHandler(db *gorm.DB) GetDispatchableOrdersQueryHandler {
	return GetDispatchableOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all ready, unassigned orders.
// Results are sorted oldest first so long-waiting orders surface at the top.
func (h GetDispatchableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchableOrdersQuery,
) ([]GetDispatchableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetDispatchableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			volume,
			destination_latitude,
			destination_longitude,
			pricing_distance_km,
			pricing_zone,
			pricing_eta,
			pricing_transport_cost
		FROM orders
		WHERE status IN (?, ?, ?) AND assigned_pilot_id IS NULL
		ORDER BY created_at, id
	`, order.Confirmed.String(), order.Preparing.String(), order.Processing.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetDispatchableOrdersQueryResponse
		var id uuid.UUID
		var latitude, longitude float64

		err = rows.Scan(
			&id,
			&orderResp.Status,
			&orderResp.Volume,
			&latitude,
			&longitude,
			&orderResp.DistanceKm,
			&orderResp.Zone,
			&orderResp.Eta,
			&orderResp.TransportCost,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		destination, destErr := kernel.NewCoordinates(latitude, longitude)
		if destErr != nil {
			return nil, destErr
		}
		orderResp.Destination = destination

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
