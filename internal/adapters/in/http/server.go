package http

import (
	"context"
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type createCourierHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
}

type dispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchCommand) (commands.DispatchResult, error)
}

type getAllCouriersHandler interface {
	Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]queries.GetAllCouriersQueryResponse, error)
}

type getPendingOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
}

type getCourierBatchesHandler interface {
	Handle(
		ctx context.Context,
		query queries.GetCourierBatchesQuery,
	) ([]queries.GetCourierBatchesQueryResponse, error)
}

// Server implements servers.ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   createOrderHandler
	createCourierHandler createCourierHandler
	dispatchHandler      dispatchHandler

	// Query handlers
	getAllCouriersHandler    getAllCouriersHandler
	getPendingOrdersHandler  getPendingOrdersHandler
	getCourierBatchesHandler getCourierBatchesHandler
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler createOrderHandler,
	createCourierHandler createCourierHandler,
	dispatchHandler dispatchHandler,
	getAllCouriersHandler getAllCouriersHandler,
	getPendingOrdersHandler getPendingOrdersHandler,
	getCourierBatchesHandler getCourierBatchesHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		createCourierHandler:     createCourierHandler,
		dispatchHandler:          dispatchHandler,
		getAllCouriersHandler:    getAllCouriersHandler,
		getPendingOrdersHandler:  getPendingOrdersHandler,
		getCourierBatchesHandler: getCourierBatchesHandler,
	}
}

// CreateOrder handles POST /api/v1/orders - registers a pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		body.KitchenId,
		body.CustomerId,
		body.PickupTime,
		body.Location.X,
		body.Location.Y,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.OrderID().Bytes()})
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	orders, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return problem(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = servers.Order{
			Id:         o.ID.Bytes(),
			KitchenId:  o.KitchenID,
			CustomerId: o.CustomerID,
			PickupTime: o.PickupTime.String(),
			Location:   toLocation(o.Location),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers - registers a courier at the given location.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body servers.CreateCourierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, body.Location.X, body.Location.Y)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err, "Failed to create courier")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.CourierID().Bytes()})
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return problem(ctx, err, "Failed to retrieve couriers")
	}

	response := make([]servers.Courier, len(couriers))
	for i, c := range couriers {
		response[i] = servers.Courier{
			Id:       c.ID.Bytes(),
			Name:     c.Name,
			Location: toLocation(c.Location),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourierBatches handles GET /api/v1/couriers/{courierId}/batches.
func (s *Server) GetCourierBatches(ctx echo.Context, courierID openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(courierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	query, err := queries.NewGetCourierBatchesQuery(id)
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	batches, err := s.getCourierBatchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err, "Failed to retrieve batches")
	}

	response := make([]servers.Batch, len(batches))
	for i, b := range batches {
		dispatchID := openapi_types.UUID(b.DispatchID.Bytes())
		sequence := b.Sequence
		response[i] = servers.Batch{
			Id:         b.ID.Bytes(),
			DispatchId: &dispatchID,
			Sequence:   &sequence,
			Rule:       servers.BatchRule(b.Rule.String()),
			OrderIds:   toUUIDs(b.OrderIDs),
		}
		if b.HasDestination {
			dest := toLocation(b.Destination)
			response[i].Destination = &dest
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Dispatch handles POST /api/v1/dispatch - runs one dispatch over the pending orders.
func (s *Server) Dispatch(ctx echo.Context) error {
	cmd, err := commands.NewDispatchCommand(commands.TriggerHTTP)
	if err != nil {
		return problem(ctx, err, "Failed to start dispatch")
	}

	result, err := s.dispatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err, "Dispatch failed")
	}

	return ctx.JSON(http.StatusOK, toDispatchResult(result))
}
