// Package http is the inbound HTTP adapter. It translates JSON requests into
// commands and queries, dispatches them, and maps domain errors to stable
// machine-readable error codes.
package http

import (
	"net/http"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	assignRiderHandler     commands.AssignRiderCommandHandler
	updateDeliveryHandler  commands.UpdateDeliveryStatusCommandHandler
	reassignRiderHandler   commands.ReassignRiderCommandHandler
	ingestPaymentHandler   commands.IngestPaymentWebhookCommandHandler
	ingestDeliveryHandler  commands.IngestDeliveryWebhookCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	trackDeliveryHandler      queries.TrackDeliveryQueryHandler
	getAvailableRidersHandler queries.GetAvailableRidersQueryHandler

	stream ports.OrderStream
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	updateDeliveryHandler commands.UpdateDeliveryStatusCommandHandler,
	reassignRiderHandler commands.ReassignRiderCommandHandler,
	ingestPaymentHandler commands.IngestPaymentWebhookCommandHandler,
	ingestDeliveryHandler commands.IngestDeliveryWebhookCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	trackDeliveryHandler queries.TrackDeliveryQueryHandler,
	getAvailableRidersHandler queries.GetAvailableRidersQueryHandler,
	stream ports.OrderStream,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		assignRiderHandler:        assignRiderHandler,
		updateDeliveryHandler:     updateDeliveryHandler,
		reassignRiderHandler:      reassignRiderHandler,
		ingestPaymentHandler:      ingestPaymentHandler,
		ingestDeliveryHandler:     ingestDeliveryHandler,
		getOrderHandler:           getOrderHandler,
		trackDeliveryHandler:      trackDeliveryHandler,
		getAvailableRidersHandler: getAvailableRidersHandler,
		stream:                    stream,
	}
}

// RegisterRoutes attaches every endpoint to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.GET("/orders/:id/stream", s.StreamOrder)

	api.POST("/deliveries/:id/assign", s.AssignRider)
	api.POST("/deliveries/:id/status", s.UpdateDeliveryStatus)
	api.POST("/deliveries/:id/reassign", s.ReassignRider)
	api.GET("/deliveries/track/:number", s.TrackDelivery)

	api.GET("/riders/available", s.GetAvailableRiders)

	api.POST("/webhooks/payment", s.IngestPaymentWebhook)
	api.POST("/webhooks/delivery", s.IngestDeliveryWebhook)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order with its
// delivery record.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	businessID, err := kernel.UUIDFromString(req.BusinessID)
	if err != nil {
		return badRequest(ctx, "businessId must be a valid UUID")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "customerId must be a valid UUID")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		productID, parseErr := kernel.UUIDFromString(line.ProductID)
		if parseErr != nil {
			return badRequest(ctx, "items[].productId must be a valid UUID")
		}

		unitPrice, parseErr := kernel.NewMoney(line.UnitPriceKobo)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}

		item, parseErr := order.NewItem(productID, unitPrice, line.Quantity)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}

		items = append(items, item)
	}

	discount, err := kernel.NewMoney(req.DiscountKobo)
	if err != nil {
		return writeError(ctx, err)
	}

	pickup, err := parseWaypoint(req.Pickup)
	if err != nil {
		return writeError(ctx, err)
	}

	dropoff, err := parseWaypoint(req.Dropoff)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		businessID,
		req.BusinessName,
		customerID,
		req.CustomerPhone,
		items,
		discount,
		pickup,
		dropoff,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{
		ID:     orderID.String(),
		Number: order.NumberFor(orderID),
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id must be a valid UUID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an order
// through its lifecycle.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id must be a valid UUID")
	}

	var req transitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "unknown order status: "+req.Status)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignRider handles POST /api/v1/deliveries/:id/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "delivery id must be a valid UUID")
	}

	var req assignRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "riderId must be a valid UUID")
	}

	cmd, err := commands.NewAssignRiderCommand(deliveryID, riderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatus handles POST /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "delivery id must be a valid UUID")
	}

	var req deliveryStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "unknown delivery status: "+req.Status)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, target)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.updateDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignRider handles POST /api/v1/deliveries/:id/reassign - hands a
// delivery over to a different rider after a failed attempt.
func (s *Server) ReassignRider(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "delivery id must be a valid UUID")
	}

	var req assignRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "riderId must be a valid UUID")
	}

	cmd, err := commands.NewReassignRiderCommand(deliveryID, riderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.reassignRiderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackDelivery handles GET /api/v1/deliveries/track/:number - the public
// tracking view, no authentication required.
func (s *Server) TrackDelivery(ctx echo.Context) error {
	query, err := queries.NewTrackDeliveryQuery(ctx.Param("number"))
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.trackDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingResponse{
		TrackingNumber: resp.TrackingNumber,
		OrderNumber:    resp.OrderNumber,
		BusinessName:   resp.BusinessName,
		OrderStatus:    resp.OrderStatus,
		DeliveryStatus: resp.DeliveryStatus,
		RiderName:      resp.RiderName,
		RiderPhone:     resp.RiderPhone,
		DropoffAddress: resp.DropoffAddress,
		FeeKobo:        resp.Fee.Kobo(),
		UpdatedAt:      resp.UpdatedAt,
	})
}

// GetAvailableRiders handles GET /api/v1/riders/available.
func (s *Server) GetAvailableRiders(ctx echo.Context) error {
	query := queries.NewGetAvailableRidersQuery()

	riders, err := s.getAvailableRidersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]riderResponse, len(riders))
	for i, r := range riders {
		response[i] = riderResponse{
			ID:        r.ID.String(),
			Name:      r.Name,
			Phone:     r.Phone,
			Lat:       r.Lat,
			Lng:       r.Lng,
			UpdatedAt: r.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// IngestPaymentWebhook handles POST /api/v1/webhooks/payment. Replayed tokens
// return 200 without re-applying the outcome.
func (s *Server) IngestPaymentWebhook(ctx echo.Context) error {
	var req paymentWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "orderId must be a valid UUID")
	}

	cmd, err := commands.NewIngestPaymentWebhookCommand(
		req.Provider,
		req.Token,
		orderID,
		commands.PaymentOutcome(req.Outcome),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.ingestPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "accepted"})
}

// IngestDeliveryWebhook handles POST /api/v1/webhooks/delivery. Replayed
// tokens return 200 without re-applying the status.
func (s *Server) IngestDeliveryWebhook(ctx echo.Context) error {
	var req deliveryWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "unknown delivery status: "+req.Status)
	}

	cmd, err := commands.NewIngestDeliveryWebhookCommand(
		req.Provider,
		req.Token,
		req.TrackingNumber,
		target,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.ingestDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "accepted"})
}

func parseWaypoint(req waypointRequest) (delivery.Waypoint, error) {
	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return delivery.Waypoint{}, err
	}

	return delivery.NewWaypoint(point, req.Address)
}
