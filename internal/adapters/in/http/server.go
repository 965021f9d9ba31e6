package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const (
	defaultHistoryPage     = 1
	defaultHistoryPageSize = 20
)

// Server exposes the dispatch workflow over REST.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	advanceOrderHandler       commands.AdvanceOrderCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	registerAgentHandler      commands.CreatePilotCommandHandler
	updateAgentProfileHandler commands.UpdatePilotProfileCommandHandler
	issueHandoffCodeHandler   commands.IssueHandoffCodeCommandHandler
	claimOrderHandler         commands.ClaimOrderCommandHandler
	startJourneyHandler       commands.StartJourneyCommandHandler
	completeDeliveryHandler   commands.CompleteDeliveryCommandHandler
	reportLocationHandler     commands.ReportLocationCommandHandler

	// Query handlers
	getOrderSummaryHandler       queries.GetOrderSummaryQueryHandler
	getDispatchableOrdersHandler queries.GetDispatchableOrdersQueryHandler
	getAgentHistoryHandler       queries.GetPilotHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	registerAgentHandler commands.CreatePilotCommandHandler,
	updateAgentProfileHandler commands.UpdatePilotProfileCommandHandler,
	issueHandoffCodeHandler commands.IssueHandoffCodeCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	startJourneyHandler commands.StartJourneyCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler,
	getDispatchableOrdersHandler queries.GetDispatchableOrdersQueryHandler,
	getAgentHistoryHandler queries.GetPilotHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		advanceOrderHandler:          advanceOrderHandler,
		cancelOrderHandler:           cancelOrderHandler,
		registerAgentHandler:         registerAgentHandler,
		updateAgentProfileHandler:    updateAgentProfileHandler,
		issueHandoffCodeHandler:      issueHandoffCodeHandler,
		claimOrderHandler:            claimOrderHandler,
		startJourneyHandler:          startJourneyHandler,
		completeDeliveryHandler:      completeDeliveryHandler,
		reportLocationHandler:        reportLocationHandler,
		getOrderSummaryHandler:       getOrderSummaryHandler,
		getDispatchableOrdersHandler: getDispatchableOrdersHandler,
		getAgentHistoryHandler:       getAgentHistoryHandler,
	}
}

// RegisterRoutes mounts all dispatch endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrderSummary)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/agents", s.RegisterAgent)
	api.PUT("/agents/:id", s.UpdateAgentProfile)
	api.GET("/dispatch/orders", s.GetDispatchableOrders)
	api.POST("/dispatch/scan", s.ScanOrder)
	api.POST("/dispatch/claim", s.ClaimOrder)
	api.POST("/dispatch/journey/start", s.StartJourney)
	api.POST("/dispatch/complete", s.CompleteDelivery)
	api.POST("/dispatch/location", s.ReportLocation)
	api.GET("/dispatch/agent/:id/history", s.GetAgentHistory)
}

// CreateOrder godoc
// @ID           createOrder
//
//	@Summary		Register a paid order
//	@Description	Intake webhook for the payment provider: records the paid basket as an order and confirms it
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Paid basket"
//	@Success		201		{object}	OrderSummaryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err := ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return writeValidationError(ctx, err)
	}
	origin, err := kernel.NewCoordinates(*request.Origin.Latitude, *request.Origin.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}
	destination, err := kernel.NewCoordinates(*request.Destination.Latitude, *request.Destination.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		request.CustomerContact,
		request.Items,
		request.Volume,
		origin,
		destination,
		request.ItemsTotal,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	metrics.OrdersCreatedTotal.Inc()

	confirmCmd, err := commands.NewAdvanceOrderCommand(orderID, order.Confirmed, "payment captured", "payments")
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), confirmCmd); err != nil {
		return writeError(ctx, err)
	}

	return s.respondWithSummary(ctx, orderID, http.StatusCreated)
}

// AdvanceOrder godoc
// @ID           advanceOrder
//
//	@Summary		Advance an order's lifecycle
//	@Description	Moves the order to the requested status when the transition is allowed, appending a timeline entry
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Order ID"
//	@Param			request	body		AdvanceOrderRequest	true	"Target status"
//	@Success		200		{object}	OrderSummaryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/orders/{id}/advance [post]
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeValidationError(ctx, err)
	}

	var request AdvanceOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err = ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeValidationError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, request.Note, "supplier")
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.respondWithSummary(ctx, orderID, http.StatusOK)
}

// CancelOrder godoc
// @ID           cancelOrder
//
//	@Summary		Cancel an order
//	@Description	Cancels a non-terminal order, releasing its agent if one is assigned
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Order ID"
//	@Param			request	body		CancelOrderRequest	false	"Cancellation reason"
//	@Success		200		{object}	OrderSummaryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/orders/{id}/cancel [post]
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeValidationError(ctx, err)
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason, "operator")
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.respondWithSummary(ctx, orderID, http.StatusOK)
}

// RegisterAgent godoc
// @ID           registerAgent
//
//	@Summary		Register a delivery agent
//	@Description	Creates an agent profile and returns the server-issued agent identifier
//	@Tags			agents
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterAgentRequest	true	"Agent profile"
//	@Success		201		{object}	RegisterAgentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/agents [post]
func (s *Server) RegisterAgent(ctx echo.Context) error {
	var request RegisterAgentRequest
	if err := ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err := ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	agentID := kernel.NewUUID()
	cmd, err := commands.NewCreatePilotCommand(
		agentID, request.Name, request.Phone, request.VehicleReg, request.Capacity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.registerAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterAgentResponse{AgentID: agentID.String()})
}

// UpdateAgentProfile godoc
// @ID           updateAgentProfile
//
//	@Summary		Resubmit an agent profile
//	@Description	Replaces the agent's own profile fields in full
//	@Tags			agents
//	@Accept			json
//	@Param			id		path	string					true	"Agent ID"
//	@Param			request	body	RegisterAgentRequest	true	"Replacement profile"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/agents/{id} [put]
func (s *Server) UpdateAgentProfile(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeValidationError(ctx, err)
	}

	var request RegisterAgentRequest
	if err = ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err = ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	cmd, err := commands.NewUpdatePilotProfileCommand(
		agentID, request.Name, request.Phone, request.VehicleReg, request.Capacity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateAgentProfileHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderSummary godoc
// @ID           getOrderSummary
//
//	@Summary		Fetch an order summary
//	@Description	Returns the order read model including pricing, delivery details and the full status timeline
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	OrderSummaryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders/{id} [get]
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeValidationError(ctx, err)
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	summary, err := s.getOrderSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderSummaryResponse(summary))
}

// GetDispatchableOrders godoc
// @ID           getDispatchableOrders
//
//	@Summary		List orders waiting for an agent
//	@Description	Returns unassigned orders that are ready to leave the warehouse, oldest first
//	@Tags			dispatch
//	@Produce		json
//	@Success		200	{array}	DispatchableOrderResponse
//	@Router			/dispatch/orders [get]
func (s *Server) GetDispatchableOrders(ctx echo.Context) error {
	query := queries.NewGetDispatchableOrdersQuery()

	orders, err := s.getDispatchableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDispatchableOrderResponses(orders))
}

// ScanOrder godoc
// @ID           scanOrder
//
//	@Summary		Scan an order at the warehouse
//	@Description	Returns the order summary together with its handoff code, issuing a fresh code if none is active
//	@Tags			dispatch
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ScanOrderRequest	true	"Scanned order"
//	@Success		200		{object}	ScanOrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/dispatch/scan [post]
func (s *Server) ScanOrder(ctx echo.Context) error {
	var request ScanOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err := ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return writeValidationError(ctx, err)
	}

	summaryQuery, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	summary, err := s.getOrderSummaryHandler.Handle(ctx.Request().Context(), summaryQuery)
	if err != nil {
		return writeError(ctx, err)
	}
	if summary.AssignedPilotID != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    codeAlreadyAssigned,
			Message: "order is already assigned to an agent",
		})
	}

	cmd, err := commands.NewIssueHandoffCodeCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	code, err := s.issueHandoffCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		// A scan of an order that is not ready to leave reads the same as a
		// scan of an unknown label.
		if errors.Is(err, commands.ErrOrderNotReady) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    codeOrderNotReady,
				Message: err.Error(),
			})
		}
		return writeError(ctx, err)
	}
	metrics.HandoffCodesIssuedTotal.Inc()

	// Reload so the response carries the code expiry written by the command.
	summary, err = s.getOrderSummaryHandler.Handle(ctx.Request().Context(), summaryQuery)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ScanOrderResponse{
		Order:       toOrderSummaryResponse(summary),
		HandoffCode: code,
	})
}

// ClaimOrder godoc
// @ID           claimOrder
//
//	@Summary		Claim an order for delivery
//	@Description	Atomically assigns the order to the agent and marks it dispatched
//	@Tags			dispatch
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ClaimOrderRequest	true	"Claim"
//	@Success		200		{object}	OrderSummaryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/dispatch/claim [post]
func (s *Server) ClaimOrder(ctx echo.Context) error {
	var request ClaimOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err := ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return writeValidationError(ctx, err)
	}
	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return writeValidationError(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	metrics.OrdersClaimedTotal.Inc()

	return s.respondWithSummary(ctx, orderID, http.StatusOK)
}

// StartJourney godoc
// @ID           startJourney
//
//	@Summary		Start the delivery journey
//	@Description	Marks the moment the assigned agent leaves the warehouse and records the starting position
//	@Tags			dispatch
//	@Accept			json
//	@Param			request	body	StartJourneyRequest	true	"Journey start"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/dispatch/journey/start [post]
func (s *Server) StartJourney(ctx echo.Context) error {
	var request StartJourneyRequest
	if err := ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err := ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return writeValidationError(ctx, err)
	}
	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return writeValidationError(ctx, err)
	}

	location, err := kernel.NewCoordinates(*request.Latitude, *request.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewStartJourneyCommand(orderID, agentID, location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.startJourneyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery godoc
// @ID           completeDelivery
//
//	@Summary		Complete a delivery
//	@Description	Verifies the handoff code, settles the order and releases the agent
//	@Tags			dispatch
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CompleteDeliveryRequest	true	"Completion"
//	@Success		200		{object}	OrderSummaryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/dispatch/complete [post]
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	var request CompleteDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err := ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return writeValidationError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, request.Code, request.Notes, request.Rating)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	metrics.DeliveriesCompletedTotal.Inc()

	return s.respondWithSummary(ctx, orderID, http.StatusOK)
}

// ReportLocation godoc
// @ID           reportLocation
//
//	@Summary		Report an agent position
//	@Description	Overwrites the agent's current location with the reported coordinates
//	@Tags			dispatch
//	@Accept			json
//	@Param			request	body	ReportLocationRequest	true	"Position ping"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/dispatch/location [post]
func (s *Server) ReportLocation(ctx echo.Context) error {
	var request ReportLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return writeValidationError(ctx, err)
	}
	if err := ctx.Validate(&request); err != nil {
		return writeValidationError(ctx, err)
	}

	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return writeValidationError(ctx, err)
	}

	location, err := kernel.NewCoordinates(*request.Latitude, *request.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReportLocationCommand(agentID, location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reportLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAgentHistory godoc
// @ID           getAgentHistory
//
//	@Summary		List an agent's settled orders
//	@Description	Returns the agent's delivered and cancelled orders as a page, most recent first
//	@Tags			dispatch
//	@Produce		json
//	@Param			id			path		string	true	"Agent ID"
//	@Param			page		query		int		false	"Page number, starting at 1"
//	@Param			pageSize	query		int		false	"Items per page"
//	@Success		200			{object}	AgentHistoryResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/dispatch/agent/{id}/history [get]
func (s *Server) GetAgentHistory(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeValidationError(ctx, err)
	}

	page := defaultHistoryPage
	pageSize := defaultHistoryPageSize
	queryParams := ctx.QueryParams()
	if err = runtime.BindQueryParameter("form", true, false, "page", queryParams, &page); err != nil {
		return writeValidationError(ctx, err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "pageSize", queryParams, &pageSize); err != nil {
		return writeValidationError(ctx, err)
	}

	query, err := queries.NewGetPilotHistoryQuery(agentID, page, pageSize)
	if err != nil {
		return writeError(ctx, err)
	}

	history, err := s.getAgentHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAgentHistoryResponse(history))
}

func (s *Server) respondWithSummary(ctx echo.Context, orderID kernel.UUID, status int) error {
	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	summary, err := s.getOrderSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(status, toOrderSummaryResponse(summary))
}
