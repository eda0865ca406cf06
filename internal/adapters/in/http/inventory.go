package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReceivePallet handles POST /api/v1/pallets.
func (s *Server) ReceivePallet(ctx echo.Context) error {
	var body NewPallet
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	location, err := toLocation(body.Location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewReceivePalletCommand(inventory.PalletState{
		ID:            body.ID,
		SKU:           body.SKU,
		ProductName:   body.ProductName,
		Location:      location,
		BoxCount:      body.BoxCount,
		NetWeight:     body.NetWeight,
		ExpiryDate:    body.ExpiryDate,
		InvoiceNumber: body.InvoiceNumber,
	})
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.ReceivePallet.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// AdjustPallet handles PUT /api/v1/pallets/{palletId}.
func (s *Server) AdjustPallet(ctx echo.Context, palletID string) error {
	var body PalletAdjustment
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	location, err := toLocation(body.Location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAdjustPalletCommand(palletID, body.BoxCount, body.NetWeight, location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.AdjustPallet.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemovePallet handles DELETE /api/v1/pallets/{palletId}.
func (s *Server) RemovePallet(ctx echo.Context, palletID string) error {
	cmd, err := commands.NewRemovePalletCommand(palletID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.RemovePallet.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCustomerStock handles GET /api/v1/customers/{customerId}/stock.
func (s *Server) GetCustomerStock(ctx echo.Context, customerID uuid.UUID) error {
	id, err := toKernelUUID(customerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetCustomerStockQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	stock, err := s.h.GetCustomerStock.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]CustomerStock, len(stock))
	for i, row := range stock {
		response[i] = CustomerStock(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// SaveProduct handles PUT /api/v1/products/{sku}.
func (s *Server) SaveProduct(ctx echo.Context, sku string) error {
	var body Product
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSaveProductCommand(
		sku,
		body.Name,
		catalog.Dimensions{Length: body.Length, Width: body.Width, Height: body.Height},
		catalog.PackagingKind(body.Kind),
		body.Multiplicity,
		body.Temperature,
		body.ShelfLifeDays,
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.SaveProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignPickingLocation handles PUT /api/v1/products/{sku}/picking-location.
func (s *Server) AssignPickingLocation(ctx echo.Context, sku string) error {
	var body Location
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	location, err := toLocation(body)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAssignPickingLocationCommand(sku, location)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.AssignPickingLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetWarehouseStock handles GET /api/v1/stock, optionally narrowed to one SKU.
func (s *Server) GetWarehouseStock(ctx echo.Context, params GetWarehouseStockParams) error {
	sku := ""
	if params.SKU != nil {
		sku = *params.SKU
	}

	stock, err := s.h.GetWarehouseStock.Handle(ctx.Request().Context(), queries.NewGetWarehouseStockQuery(sku))
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]WarehouseStock, len(stock))
	for i, entry := range stock {
		locations := make([]WarehouseStockLocation, len(entry.Locations))
		for j, l := range entry.Locations {
			locations[j] = WarehouseStockLocation{Location: l.Location.Code(), Boxes: l.Boxes, Reserved: l.Reserved}
		}
		response[i] = WarehouseStock{
			SKU:           entry.SKU,
			ProductName:   entry.ProductName,
			PalletCount:   entry.PalletCount,
			TotalBoxes:    entry.TotalBoxes,
			TotalWeight:   entry.TotalWeight,
			ReservedBoxes: entry.ReservedBoxes,
			Locations:     locations,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetRowTemperature handles PUT /api/v1/storage-rows/{row}/temperature.
func (s *Server) SetRowTemperature(ctx echo.Context, row string) error {
	var body RowTemperature
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSetRowTemperatureCommand(row, *body.Min, *body.Max)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.SetRowTemperature.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
