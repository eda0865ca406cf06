package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetAvailableLots handles GET /api/v1/lots - the picker worklist.
func (s *Server) GetAvailableLots(ctx echo.Context) error {
	lots, err := s.h.GetAvailableLots.Handle(ctx.Request().Context(), queries.NewGetAvailableLotsQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]Lot, len(lots))
	for i, l := range lots {
		response[i] = Lot{
			LotNumber:    l.LotNumber,
			OrderID:      l.OrderID.Bytes(),
			OrderNumber:  l.OrderNumber,
			OrderType:    l.OrderType,
			PalletNumber: l.PalletNumber,
			Status:       l.Status,
			ItemCount:    l.ItemCount,
			BoxCount:     l.BoxCount,
		}
		if l.PickerID != nil {
			picker := l.PickerID.Bytes()
			response[i].PickerID = &picker
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimLot handles POST /api/v1/lots/{lotNumber}/claim.
func (s *Server) ClaimLot(ctx echo.Context, lotNumber string) error {
	var body PickerRequest
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	pickerID, err := toKernelUUID(body.PickerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewClaimLotCommand(lotNumber, pickerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.h.ClaimLot.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	items := make([]LotItem, len(result.Items))
	for i, item := range result.Items {
		items[i] = LotItem(item)
	}

	return ctx.JSON(http.StatusOK, ClaimedLot{
		LotNumber:    result.LotNumber,
		OrderID:      result.OrderID.Bytes(),
		OrderNumber:  result.OrderNumber,
		PalletNumber: result.PalletNumber,
		LotStatus:    result.LotStatus,
		Items:        items,
	})
}

// PerformPicking handles POST /api/v1/lots/{lotNumber}/picks. A shortfall on the picking
// tier answers 422 with the available and required box counts.
func (s *Server) PerformPicking(ctx echo.Context, lotNumber string) error {
	var body PickRequest
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	orderID, err := toKernelUUID(body.OrderID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	pickerID, err := toKernelUUID(body.PickerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewPerformPickingCommand(orderID, lotNumber, body.SKU, body.Boxes, pickerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.h.PerformPicking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	pallets := make([]PickedPallet, len(result.Pallets))
	for i, p := range result.Pallets {
		pallets[i] = PickedPallet(p)
	}

	return ctx.JSON(http.StatusOK, PickResult{
		SKU:            result.SKU,
		RequestedBoxes: result.RequestedBoxes,
		PickedBoxes:    result.PickedBoxes,
		Weight:         result.Weight,
		Pallets:        pallets,
		Underpicked:    result.Underpicked,
		LotPacked:      result.LotPacked,
		OrderPacked:    result.OrderPacked,
		AlreadyPacked:  result.AlreadyPacked,
	})
}

// CompleteLot handles POST /api/v1/lots/{lotNumber}/complete.
func (s *Server) CompleteLot(ctx echo.Context, lotNumber string) error {
	var body PickerRequest
	if err := s.bindBody(ctx, &body); err != nil {
		return err
	}

	pickerID, err := toKernelUUID(body.PickerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteLotCommand(lotNumber, pickerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.h.CompleteLot.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CompletedLot{
		LotNumber:     result.LotNumber,
		BoxCount:      result.BoxCount,
		TotalWeight:   result.TotalWeight,
		OrderPacked:   result.OrderPacked,
		AlreadyPacked: result.AlreadyPacked,
	})
}
