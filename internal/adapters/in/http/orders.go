package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders. The id is generated when the client omits it.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	if body.ID != nil {
		id, err := toKernelUUID(*body.ID)
		if err != nil {
			return s.respondError(ctx, err)
		}
		orderID = id
	}

	customerID, err := toKernelUUIDPtr(body.CustomerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	lines := make([]commands.OrderLine, len(body.Lines))
	for i, l := range body.Lines {
		lines[i] = commands.OrderLine{
			SKU:         l.SKU,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, order.Type(body.Type), customerID, lines)
	if err != nil {
		return s.respondError(ctx, err)
	}

	number, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{ID: orderID.Bytes(), Number: number})
}

// ProcessOrder handles POST /api/v1/orders/{orderId}/process.
func (s *Server) ProcessOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewProcessOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.h.ProcessOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ProcessedOrder{
		OrderNumber:      result.OrderNumber,
		PalletsCount:     result.PalletsCount,
		LotNumbers:       nonNil(result.LotNumbers),
		ProcessedItems:   result.ProcessedItems,
		SkippedSKUs:      nonNil(result.SkippedSKUs),
		RequiresTransfer: result.RequiresTransfer,
		TransfersCreated: result.TransfersCreated,
		UnplannedSKUs:    nonNil(result.UnplannedSKUs),
	})
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.CompleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func nonNil(values []string) []string {
	if values == nil {
		return make([]string, 0)
	}
	return values
}
