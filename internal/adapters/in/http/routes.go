package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of api/openapi.yaml with their path and query
// parameters already bound.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (POST /api/v1/orders/{orderId}/process)
	ProcessOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/complete)
	CompleteOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderID uuid.UUID) error

	// (GET /api/v1/lots)
	GetAvailableLots(ctx echo.Context) error
	// (POST /api/v1/lots/{lotNumber}/claim)
	ClaimLot(ctx echo.Context, lotNumber string) error
	// (POST /api/v1/lots/{lotNumber}/picks)
	PerformPicking(ctx echo.Context, lotNumber string) error
	// (POST /api/v1/lots/{lotNumber}/complete)
	CompleteLot(ctx echo.Context, lotNumber string) error

	// (GET /api/v1/transfers)
	GetPendingTransfers(ctx echo.Context, params GetPendingTransfersParams) error
	// (POST /api/v1/transfers/{transferId}/confirm)
	ConfirmTransfer(ctx echo.Context, transferID uuid.UUID) error
	// (POST /api/v1/transfers/confirm-sku/{sku})
	ConfirmAllTransfersForSKU(ctx echo.Context, sku string) error
	// (GET /api/v1/availability/{sku})
	CheckPickingAvailability(ctx echo.Context, sku string, params CheckPickingAvailabilityParams) error

	// (POST /api/v1/pallets)
	ReceivePallet(ctx echo.Context) error
	// (PUT /api/v1/pallets/{palletId})
	AdjustPallet(ctx echo.Context, palletID string) error
	// (DELETE /api/v1/pallets/{palletId})
	RemovePallet(ctx echo.Context, palletID string) error

	// (GET /api/v1/stock)
	GetWarehouseStock(ctx echo.Context, params GetWarehouseStockParams) error
	// (PUT /api/v1/storage-rows/{row}/temperature)
	SetRowTemperature(ctx echo.Context, row string) error

	// (GET /api/v1/customers/{customerId}/stock)
	GetCustomerStock(ctx echo.Context, customerID uuid.UUID) error

	// (PUT /api/v1/products/{sku})
	SaveProduct(ctx echo.Context, sku string) error
	// (PUT /api/v1/products/{sku}/picking-location)
	AssignPickingLocation(ctx echo.Context, sku string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func pathParam(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ProcessOrder(ctx echo.Context) error {
	var orderID uuid.UUID
	if err := pathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.ProcessOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	var orderID uuid.UUID
	if err := pathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.CompleteOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	var orderID uuid.UUID
	if err := pathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetAvailableLots(ctx echo.Context) error {
	return w.Handler.GetAvailableLots(ctx)
}

func (w *ServerInterfaceWrapper) ClaimLot(ctx echo.Context) error {
	var lotNumber string
	if err := pathParam(ctx, "lotNumber", &lotNumber); err != nil {
		return err
	}
	return w.Handler.ClaimLot(ctx, lotNumber)
}

func (w *ServerInterfaceWrapper) PerformPicking(ctx echo.Context) error {
	var lotNumber string
	if err := pathParam(ctx, "lotNumber", &lotNumber); err != nil {
		return err
	}
	return w.Handler.PerformPicking(ctx, lotNumber)
}

func (w *ServerInterfaceWrapper) CompleteLot(ctx echo.Context) error {
	var lotNumber string
	if err := pathParam(ctx, "lotNumber", &lotNumber); err != nil {
		return err
	}
	return w.Handler.CompleteLot(ctx, lotNumber)
}

func (w *ServerInterfaceWrapper) GetPendingTransfers(ctx echo.Context) error {
	var params GetPendingTransfersParams
	err := runtime.BindQueryParameter("form", true, false, "sku", ctx.QueryParams(), &params.SKU)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sku: %s", err))
	}
	return w.Handler.GetPendingTransfers(ctx, params)
}

func (w *ServerInterfaceWrapper) ConfirmTransfer(ctx echo.Context) error {
	var transferID uuid.UUID
	if err := pathParam(ctx, "transferId", &transferID); err != nil {
		return err
	}
	return w.Handler.ConfirmTransfer(ctx, transferID)
}

func (w *ServerInterfaceWrapper) ConfirmAllTransfersForSKU(ctx echo.Context) error {
	var sku string
	if err := pathParam(ctx, "sku", &sku); err != nil {
		return err
	}
	return w.Handler.ConfirmAllTransfersForSKU(ctx, sku)
}

func (w *ServerInterfaceWrapper) CheckPickingAvailability(ctx echo.Context) error {
	var sku string
	if err := pathParam(ctx, "sku", &sku); err != nil {
		return err
	}

	var params CheckPickingAvailabilityParams
	err := runtime.BindQueryParameter("form", true, true, "quantity", ctx.QueryParams(), &params.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter quantity: %s", err))
	}
	return w.Handler.CheckPickingAvailability(ctx, sku, params)
}

func (w *ServerInterfaceWrapper) ReceivePallet(ctx echo.Context) error {
	return w.Handler.ReceivePallet(ctx)
}

func (w *ServerInterfaceWrapper) AdjustPallet(ctx echo.Context) error {
	var palletID string
	if err := pathParam(ctx, "palletId", &palletID); err != nil {
		return err
	}
	return w.Handler.AdjustPallet(ctx, palletID)
}

func (w *ServerInterfaceWrapper) RemovePallet(ctx echo.Context) error {
	var palletID string
	if err := pathParam(ctx, "palletId", &palletID); err != nil {
		return err
	}
	return w.Handler.RemovePallet(ctx, palletID)
}

func (w *ServerInterfaceWrapper) GetCustomerStock(ctx echo.Context) error {
	var customerID uuid.UUID
	if err := pathParam(ctx, "customerId", &customerID); err != nil {
		return err
	}
	return w.Handler.GetCustomerStock(ctx, customerID)
}

func (w *ServerInterfaceWrapper) SaveProduct(ctx echo.Context) error {
	var sku string
	if err := pathParam(ctx, "sku", &sku); err != nil {
		return err
	}
	return w.Handler.SaveProduct(ctx, sku)
}

func (w *ServerInterfaceWrapper) AssignPickingLocation(ctx echo.Context) error {
	var sku string
	if err := pathParam(ctx, "sku", &sku); err != nil {
		return err
	}
	return w.Handler.AssignPickingLocation(ctx, sku)
}

func (w *ServerInterfaceWrapper) GetWarehouseStock(ctx echo.Context) error {
	var params GetWarehouseStockParams
	err := runtime.BindQueryParameter("form", true, false, "sku", ctx.QueryParams(), &params.SKU)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sku: %s", err))
	}
	return w.Handler.GetWarehouseStock(ctx, params)
}

func (w *ServerInterfaceWrapper) SetRowTemperature(ctx echo.Context) error {
	var row string
	if err := pathParam(ctx, "row", &row); err != nil {
		return err
	}
	return w.Handler.SetRowTemperature(ctx, row)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of si to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/orders", w.CreateOrder)
	router.POST("/api/v1/orders/:orderId/process", w.ProcessOrder)
	router.POST("/api/v1/orders/:orderId/complete", w.CompleteOrder)
	router.POST("/api/v1/orders/:orderId/cancel", w.CancelOrder)

	router.GET("/api/v1/lots", w.GetAvailableLots)
	router.POST("/api/v1/lots/:lotNumber/claim", w.ClaimLot)
	router.POST("/api/v1/lots/:lotNumber/picks", w.PerformPicking)
	router.POST("/api/v1/lots/:lotNumber/complete", w.CompleteLot)

	router.GET("/api/v1/transfers", w.GetPendingTransfers)
	router.POST("/api/v1/transfers/:transferId/confirm", w.ConfirmTransfer)
	router.POST("/api/v1/transfers/confirm-sku/:sku", w.ConfirmAllTransfersForSKU)
	router.GET("/api/v1/availability/:sku", w.CheckPickingAvailability)

	router.POST("/api/v1/pallets", w.ReceivePallet)
	router.PUT("/api/v1/pallets/:palletId", w.AdjustPallet)
	router.DELETE("/api/v1/pallets/:palletId", w.RemovePallet)

	router.GET("/api/v1/stock", w.GetWarehouseStock)
	router.PUT("/api/v1/storage-rows/:row/temperature", w.SetRowTemperature)

	router.GET("/api/v1/customers/:customerId/stock", w.GetCustomerStock)

	router.PUT("/api/v1/products/:sku", w.SaveProduct)
	router.PUT("/api/v1/products/:sku/picking-location", w.AssignPickingLocation)
}
