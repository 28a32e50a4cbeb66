package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/realtime"

	"github.com/labstack/echo/v4"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Server handles HTTP requests for the capacity API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createSlotHandler      commands.CreateSlotCommandHandler
	reserveCapacityHandler commands.ReserveCapacityCommandHandler
	registerWebhookHandler commands.RegisterWebhookCommandHandler

	// Query handlers
	getSlotHandler   queries.GetSlotQueryHandler
	listSlotsHandler queries.ListSlotsQueryHandler

	bus *realtime.Bus
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createSlotHandler commands.CreateSlotCommandHandler,
	reserveCapacityHandler commands.ReserveCapacityCommandHandler,
	registerWebhookHandler commands.RegisterWebhookCommandHandler,
	getSlotHandler queries.GetSlotQueryHandler,
	listSlotsHandler queries.ListSlotsQueryHandler,
	bus *realtime.Bus,
) *Server {
	return &Server{
		createSlotHandler:      createSlotHandler,
		reserveCapacityHandler: reserveCapacityHandler,
		registerWebhookHandler: registerWebhookHandler,
		getSlotHandler:         getSlotHandler,
		listSlotsHandler:       listSlotsHandler,
		bus:                    bus,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/slots", s.CreateSlot)
	api.GET("/slots", s.ListSlots)
	api.GET("/slots/:slotId", s.GetSlot)
	api.POST("/slots/:slotId/reservations", s.ReserveCapacity)
	api.POST("/webhooks", s.RegisterWebhook)

	e.GET("/realtime", s.Realtime)
}

// CreateSlot handles POST /api/v1/slots - opens a new fulfillment slot.
func (s *Server) CreateSlot(ctx echo.Context) error {
	var request CreateSlotRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	tenantID, err := kernel.UUIDFromString(request.TenantID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tenant id: " + err.Error(),
		})
	}

	window, err := kernel.NewTimeWindow(request.StartTime, request.EndTime)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid slot window: " + err.Error(),
		})
	}

	ceilings, err := slot.NewCeilings(request.MaxOrders, request.MaxKitchenLoad, request.MaxStorageLoad)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid slot ceilings: " + err.Error(),
		})
	}

	cmd, err := commands.NewCreateSlotCommand(kernel.NewUUID(), tenantID, window, ceilings, request.Notes)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid slot data: " + err.Error(),
		})
	}

	view, err := s.createSlotHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to create slot")
	}

	return ctx.JSON(http.StatusCreated, toEnrichedSlotResponse(view))
}

// GetSlot handles GET /api/v1/slots/:slotId - retrieves one enriched slot.
func (s *Server) GetSlot(ctx echo.Context) error {
	slotID, err := kernel.UUIDFromString(ctx.Param("slotId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid slot id: " + err.Error(),
		})
	}

	query, err := queries.NewGetSlotQuery(slotID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	view, err := s.getSlotHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve slot")
	}

	return ctx.JSON(http.StatusOK, toEnrichedSlotResponse(view))
}

// ListSlots handles GET /api/v1/slots - lists a tenant's upcoming slots.
// Accepts tenantId (required), from and to (optional RFC 3339 timestamps).
func (s *Server) ListSlots(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.QueryParam("tenantId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tenant id: " + err.Error(),
		})
	}

	var from time.Time
	if raw := ctx.QueryParam("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid from timestamp: " + err.Error(),
			})
		}
	}

	var to *time.Time
	if raw := ctx.QueryParam("to"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid to timestamp: " + parseErr.Error(),
			})
		}
		to = &parsed
	}

	query, err := queries.NewListSlotsQuery(tenantID, from, to)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	views, err := s.listSlotsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to list slots")
	}

	response := make([]EnrichedSlotResponse, len(views))
	for i, view := range views {
		response[i] = toEnrichedSlotResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReserveCapacity handles POST /api/v1/slots/:slotId/reservations - the
// admission check. A refusal is a normal business outcome reported as 409;
// the caller must not retry the same request unchanged.
func (s *Server) ReserveCapacity(ctx echo.Context) error {
	slotID, err := kernel.UUIDFromString(ctx.Param("slotId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid slot id: " + err.Error(),
		})
	}

	var request ReserveCapacityRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewReserveCapacityCommand(slotID, request.KitchenLoad, request.StorageLoad)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid reservation data: " + err.Error(),
		})
	}

	admitted, err := s.reserveCapacityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to reserve capacity")
	}

	return ctx.JSON(http.StatusOK, ReservationResponse{
		SlotID:   admitted.ID().String(),
		Admitted: true,
	})
}

// RegisterWebhook handles POST /api/v1/webhooks - registers a broadcast sink.
func (s *Server) RegisterWebhook(ctx echo.Context) error {
	var request RegisterWebhookRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	tenantID, err := kernel.UUIDFromString(request.TenantID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tenant id: " + err.Error(),
		})
	}

	cmd, err := commands.NewRegisterWebhookCommand(tenantID, request.URL, request.Secret)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid webhook data: " + err.Error(),
		})
	}

	id, err := s.registerWebhookHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to register webhook")
	}

	return ctx.JSON(http.StatusCreated, RegisterWebhookResponse{ID: id.String()})
}

// Realtime handles GET /realtime - upgrades to a websocket and streams slot
// capacity events as {event, payload} JSON envelopes until the peer leaves.
func (s *Server) Realtime(ctx echo.Context) error {
	conn, err := websocket.Accept(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusInternalError, "server closing")

	sub := s.bus.Subscribe(realtime.EventSlotCapacity)
	defer s.bus.Unsubscribe(realtime.EventSlotCapacity, sub)

	// Write-only endpoint: CloseRead surfaces the peer leaving as context
	// cancellation.
	streamCtx := conn.CloseRead(ctx.Request().Context())

	for {
		select {
		case payload := <-sub:
			envelope := realtime.Envelope{Event: string(realtime.EventSlotCapacity), Payload: payload}
			if err := wsjson.Write(streamCtx, conn, envelope); err != nil {
				return nil
			}
		case <-streamCtx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return nil
		}
	}
}

// errorResponse maps application errors onto HTTP statuses. Admission
// refusals map to 409, missing objects to 404, validation failures to 400.
func (s *Server) errorResponse(ctx echo.Context, err error, fallback string) error {
	var capacityErr *slot.CapacityExceededError
	switch {
	case errors.As(err, &capacityErr):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: capacityErr.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
