// Package servers provides primitives to interact with the openapi HTTP API.
//
// The types mirror the schemas of openapi.yaml; the wrapper binds path parameters
// and forwards each operation to a ServerInterface implementation.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for BatchRule.
const (
	BatchRuleKitchenCustomer   BatchRule = "kitchen_customer"
	BatchRuleCustomer          BatchRule = "customer"
	BatchRuleKitchen           BatchRule = "kitchen"
	BatchRuleExactWindowPair   BatchRule = "exact_window_pair"
	BatchRuleCrossCustomerPair BatchRule = "cross_customer_pair"
)

// Batch defines model for Batch.
type Batch struct {
	Destination *Location            `json:"destination,omitempty"`
	DispatchId  *openapi_types.UUID  `json:"dispatchId,omitempty"`
	Id          openapi_types.UUID   `json:"id"`
	OrderIds    []openapi_types.UUID `json:"orderIds"`
	Rule        BatchRule            `json:"rule"`
	Sequence    *int                 `json:"sequence,omitempty"`
}

// BatchRule defines model for Batch.Rule.
type BatchRule string

// Courier defines model for Courier.
type Courier struct {
	Id       openapi_types.UUID `json:"id"`
	Location Location           `json:"location"`
	Name     string             `json:"name"`
}

// CourierBatches defines model for CourierBatches.
type CourierBatches struct {
	Batches   []Batch            `json:"batches"`
	CourierId openapi_types.UUID `json:"courierId"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// DispatchResult defines model for DispatchResult.
type DispatchResult struct {
	Assigned   int                `json:"assigned"`
	Candidates int                `json:"candidates"`
	Couriers   []CourierBatches   `json:"couriers"`
	DispatchId openapi_types.UUID `json:"dispatchId"`
	Unassigned int                `json:"unassigned"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location defines model for Location.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewCourier defines model for NewCourier.
type NewCourier struct {
	Location Location `json:"location"`
	Name     string   `json:"name"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerId string   `json:"customerId"`
	KitchenId  string   `json:"kitchenId"`
	Location   Location `json:"location"`

	// PickupTime Time of day, "03:04 PM" or "15:04"
	PickupTime string `json:"pickupTime"`
}

// Order defines model for Order.
type Order struct {
	CustomerId string             `json:"customerId"`
	Id         openapi_types.UUID `json:"id"`
	KitchenId  string             `json:"kitchenId"`
	Location   Location           `json:"location"`
	PickupTime string             `json:"pickupTime"`
}

// CreateCourierJSONRequestBody defines body for CreateCourier for application/json ContentType.
type CreateCourierJSONRequestBody = NewCourier

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List couriers
	// (GET /api/v1/couriers)
	GetCouriers(ctx echo.Context) error
	// Register a courier
	// (POST /api/v1/couriers)
	CreateCourier(ctx echo.Context) error
	// List batches assigned to a courier
	// (GET /api/v1/couriers/{courierId}/batches)
	GetCourierBatches(ctx echo.Context, courierId openapi_types.UUID) error
	// Group pending orders into batches and assign them to couriers
	// (POST /api/v1/dispatch)
	Dispatch(ctx echo.Context) error
	// Register an order for the next dispatch run
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// List orders waiting for dispatch
	// (GET /api/v1/orders/pending)
	GetPendingOrders(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetCouriers converts echo context to params.
func (w *ServerInterfaceWrapper) GetCouriers(ctx echo.Context) error {
	return w.Handler.GetCouriers(ctx)
}

// CreateCourier converts echo context to params.
func (w *ServerInterfaceWrapper) CreateCourier(ctx echo.Context) error {
	return w.Handler.CreateCourier(ctx)
}

// GetCourierBatches converts echo context to params.
func (w *ServerInterfaceWrapper) GetCourierBatches(ctx echo.Context) error {
	var courierId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "courierId", ctx.Param("courierId"), &courierId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter courierId: %s", err))
	}

	return w.Handler.GetCourierBatches(ctx, courierId)
}

// Dispatch converts echo context to params.
func (w *ServerInterfaceWrapper) Dispatch(ctx echo.Context) error {
	return w.Handler.Dispatch(ctx)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetPendingOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetPendingOrders(ctx echo.Context) error {
	return w.Handler.GetPendingOrders(ctx)
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths.
// Per-operation middleware, such as a rate limiter on dispatch, goes in opMiddleware
// keyed by operation id.
func RegisterHandlersWithBaseURL(
	router EchoRouter,
	si ServerInterface,
	baseURL string,
	opMiddleware ...map[string][]echo.MiddlewareFunc,
) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	mw := func(operationID string) []echo.MiddlewareFunc {
		var out []echo.MiddlewareFunc
		for _, m := range opMiddleware {
			out = append(out, m[operationID]...)
		}
		return out
	}

	router.GET(baseURL+"/api/v1/couriers", wrapper.GetCouriers, mw("GetCouriers")...)
	router.POST(baseURL+"/api/v1/couriers", wrapper.CreateCourier, mw("CreateCourier")...)
	router.GET(baseURL+"/api/v1/couriers/:courierId/batches", wrapper.GetCourierBatches, mw("GetCourierBatches")...)
	router.POST(baseURL+"/api/v1/dispatch", wrapper.Dispatch, mw("Dispatch")...)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder, mw("CreateOrder")...)
	router.GET(baseURL+"/api/v1/orders/pending", wrapper.GetPendingOrders, mw("GetPendingOrders")...)
}
