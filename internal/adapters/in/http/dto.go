package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the uniform error body. Code is machine readable,
// Message is for humans.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CoordinatesRequest is a geographic point inside a request body.
// Pointers keep 0.0 alive through the required check.
type CoordinatesRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// CreateOrderRequest is the payment provider's intake webhook body. The
// provider supplies the order identifier it already shared with the customer.
type CreateOrderRequest struct {
	OrderID         string             `json:"orderId" validate:"required,uuid"`
	CustomerContact string             `json:"customerContact" validate:"required,email"`
	Items           []string           `json:"items" validate:"required,min=1,dive,required"`
	Volume          int                `json:"volume" validate:"required,gt=0"`
	Origin          CoordinatesRequest `json:"origin"`
	Destination     CoordinatesRequest `json:"destination"`
	ItemsTotal      decimal.Decimal    `json:"itemsTotal" validate:"required"`
}

// AdvanceOrderRequest moves an order one step along its lifecycle.
type AdvanceOrderRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// CancelOrderRequest withdraws an order before it reaches a terminal state.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// ScanOrderRequest identifies the order whose label was scanned at the warehouse.
type ScanOrderRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
}

// ClaimOrderRequest asks to assign the order to the calling agent.
type ClaimOrderRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
	AgentID string `json:"agentId" validate:"required,uuid"`
}

// StartJourneyRequest marks the moment the agent leaves the warehouse.
// Coordinates are pointers so that 0.0 survives the required check.
type StartJourneyRequest struct {
	OrderID   string   `json:"orderId" validate:"required,uuid"`
	AgentID   string   `json:"agentId" validate:"required,uuid"`
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// CompleteDeliveryRequest carries the handoff code collected from the customer.
// Rating bounds are enforced by the command, not here.
type CompleteDeliveryRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
	Code    string `json:"code" validate:"required"`
	Notes   string `json:"notes"`
	Rating  *int   `json:"rating"`
}

// ReportLocationRequest is a position ping from an agent's device.
type ReportLocationRequest struct {
	AgentID   string   `json:"agentId" validate:"required,uuid"`
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// RegisterAgentRequest is also used for profile resubmission, which
// replaces the whole profile.
type RegisterAgentRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	VehicleReg string `json:"vehicleReg" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
}

// RegisterAgentResponse returns the server-issued agent identifier.
type RegisterAgentResponse struct {
	AgentID string `json:"agentId"`
}

// CoordinatesResponse is a geographic point in decimal degrees.
type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TimelineEntryResponse is one row of an order's status history.
type TimelineEntryResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
	Actor  string    `json:"actor,omitempty"`
}

// OrderSummaryResponse is the full order read model. Driver fields stay
// populated after delivery even though the assignment itself is released.
type OrderSummaryResponse struct {
	OrderID              string                  `json:"orderId"`
	Status               string                  `json:"status"`
	CustomerContact      string                  `json:"customerContact"`
	Items                []string                `json:"items"`
	Volume               int                     `json:"volume"`
	Destination          CoordinatesResponse     `json:"destination"`
	DistanceKm           float64                 `json:"distanceKm"`
	Zone                 string                  `json:"zone"`
	Eta                  string                  `json:"eta"`
	TransportCost        decimal.Decimal         `json:"transportCost"`
	ItemsTotal           decimal.Decimal         `json:"itemsTotal"`
	Total                decimal.Decimal         `json:"total"`
	AssignedAgentID      *string                 `json:"assignedAgentId,omitempty"`
	DriverName           *string                 `json:"driverName,omitempty"`
	DriverPhone          *string                 `json:"driverPhone,omitempty"`
	DriverVehicleReg     *string                 `json:"driverVehicleReg,omitempty"`
	HandoffCodeExpiresAt *time.Time              `json:"handoffCodeExpiresAt,omitempty"`
	JourneyStartedAt     *time.Time              `json:"journeyStartedAt,omitempty"`
	DeliveredAt          *time.Time              `json:"deliveredAt,omitempty"`
	DeliveryNotes        string                  `json:"deliveryNotes,omitempty"`
	Timeline             []TimelineEntryResponse `json:"timeline"`
}

// ScanOrderResponse pairs the order summary with the handoff code the
// warehouse prints on the dispatch slip.
type ScanOrderResponse struct {
	Order       OrderSummaryResponse `json:"order"`
	HandoffCode string               `json:"handoffCode"`
}

// DispatchableOrderResponse is one order waiting for an agent to claim it.
type DispatchableOrderResponse struct {
	OrderID       string              `json:"orderId"`
	Status        string              `json:"status"`
	Volume        int                 `json:"volume"`
	Destination   CoordinatesResponse `json:"destination"`
	DistanceKm    float64             `json:"distanceKm"`
	Zone          string              `json:"zone"`
	Eta           string              `json:"eta"`
	TransportCost decimal.Decimal     `json:"transportCost"`
}

// AgentHistoryItemResponse is one settled order from an agent's past.
type AgentHistoryItemResponse struct {
	OrderID     string              `json:"orderId"`
	Status      string              `json:"status"`
	Destination CoordinatesResponse `json:"destination"`
	Total       decimal.Decimal     `json:"total"`
	DeliveredAt *time.Time          `json:"deliveredAt,omitempty"`
	Notes       string              `json:"notes,omitempty"`
}

// AgentHistoryResponse is a page of an agent's settled orders, newest first.
type AgentHistoryResponse struct {
	Items      []AgentHistoryItemResponse `json:"items"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"pageSize"`
	TotalCount int                        `json:"totalCount"`
}

func toCoordinatesResponse(coordinates kernel.Coordinates) CoordinatesResponse {
	return CoordinatesResponse{
		Latitude:  coordinates.Latitude(),
		Longitude: coordinates.Longitude(),
	}
}

func toOrderSummaryResponse(summary queries.GetOrderSummaryQueryResponse) OrderSummaryResponse {
	timeline := make([]TimelineEntryResponse, len(summary.Timeline))
	for i, entry := range summary.Timeline {
		timeline[i] = TimelineEntryResponse{
			Status: entry.Status,
			At:     entry.At,
			Note:   entry.Note,
			Actor:  entry.Actor,
		}
	}

	return OrderSummaryResponse{
		OrderID:              summary.ID.String(),
		Status:               summary.Status,
		CustomerContact:      summary.CustomerContact,
		Items:                summary.Items,
		Volume:               summary.Volume,
		Destination:          toCoordinatesResponse(summary.Destination),
		DistanceKm:           summary.DistanceKm,
		Zone:                 summary.Zone,
		Eta:                  summary.Eta,
		TransportCost:        summary.TransportCost,
		ItemsTotal:           summary.ItemsTotal,
		Total:                summary.Total,
		AssignedAgentID:      uuidToString(summary.AssignedPilotID),
		DriverName:           summary.DriverName,
		DriverPhone:          summary.DriverPhone,
		DriverVehicleReg:     summary.DriverVehicleReg,
		HandoffCodeExpiresAt: summary.HandoffCodeExpiresAt,
		JourneyStartedAt:     summary.JourneyStartedAt,
		DeliveredAt:          summary.DeliveredAt,
		DeliveryNotes:        summary.DeliveryNotes,
		Timeline:             timeline,
	}
}

func toDispatchableOrderResponses(
	orders []queries.GetDispatchableOrdersQueryResponse,
) []DispatchableOrderResponse {
	response := make([]DispatchableOrderResponse, len(orders))
	for i, item := range orders {
		response[i] = DispatchableOrderResponse{
			OrderID:       item.ID.String(),
			Status:        item.Status,
			Volume:        item.Volume,
			Destination:   toCoordinatesResponse(item.Destination),
			DistanceKm:    item.DistanceKm,
			Zone:          item.Zone,
			Eta:           item.Eta,
			TransportCost: item.TransportCost,
		}
	}
	return response
}

func toAgentHistoryResponse(history queries.GetPilotHistoryQueryResponse) AgentHistoryResponse {
	items := make([]AgentHistoryItemResponse, len(history.Items))
	for i, item := range history.Items {
		items[i] = AgentHistoryItemResponse{
			OrderID:     item.OrderID.String(),
			Status:      item.Status,
			Destination: toCoordinatesResponse(item.Destination),
			Total:       item.Total,
			DeliveredAt: item.DeliveredAt,
			Notes:       item.Notes,
		}
	}

	return AgentHistoryResponse{
		Items:      items,
		Page:       history.Page,
		PageSize:   history.PageSize,
		TotalCount: history.TotalCount,
	}
}

func uuidToString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}
