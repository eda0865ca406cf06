package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetPendingTransfers handles GET /api/v1/transfers, optionally narrowed to one SKU.
func (s *Server) GetPendingTransfers(ctx echo.Context, params GetPendingTransfersParams) error {
	sku := ""
	if params.SKU != nil {
		sku = *params.SKU
	}

	transfers, err := s.h.GetPendingTransfers.Handle(ctx.Request().Context(), queries.NewGetPendingTransfersQuery(sku))
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]Transfer, len(transfers))
	for i, t := range transfers {
		response[i] = Transfer{
			ID:        t.ID.Bytes(),
			SKU:       t.SKU,
			PalletID:  t.PalletID,
			From:      t.From.Code(),
			To:        t.To.Code(),
			BoxCount:  t.BoxCount,
			CreatedAt: t.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmTransfer handles POST /api/v1/transfers/{transferId}/confirm.
func (s *Server) ConfirmTransfer(ctx echo.Context, transferID uuid.UUID) error {
	id, err := toKernelUUID(transferID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmTransferCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.h.ConfirmTransfer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmAllTransfersForSKU handles POST /api/v1/transfers/confirm-sku/{sku}. Per-request
// failures are reported in the body, the call itself succeeds.
func (s *Server) ConfirmAllTransfersForSKU(ctx echo.Context, sku string) error {
	cmd, err := commands.NewConfirmAllTransfersForSKUCommand(sku)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.h.ConfirmAllTransfersForSKU.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := ConfirmAllResult{
		Confirmed: make([]uuid.UUID, len(result.Confirmed)),
		Failed:    make([]TransferFailure, len(result.Failed)),
	}
	for i, id := range result.Confirmed {
		response.Confirmed[i] = id.Bytes()
	}
	for i, f := range result.Failed {
		response.Failed[i] = TransferFailure{TransferID: f.TransferID.Bytes(), Error: f.Err.Error()}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CheckPickingAvailability handles GET /api/v1/availability/{sku}?quantity=N. A deficit
// queues transfers and is reported in the body, not as an error status.
func (s *Server) CheckPickingAvailability(ctx echo.Context, sku string, params CheckPickingAvailabilityParams) error {
	cmd, err := commands.NewCheckPickingAvailabilityCommand(sku, params.Quantity)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.h.CheckPickingAvailability.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Availability(result))
}
