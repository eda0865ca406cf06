package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the HTTP adapter dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder               commands.CreateOrderCommandHandler
	ProcessOrder              commands.ProcessOrderCommandHandler
	CompleteOrder             commands.CompleteOrderCommandHandler
	CancelOrder               commands.CancelOrderCommandHandler
	ClaimLot                  commands.ClaimLotCommandHandler
	PerformPicking            commands.PerformPickingCommandHandler
	CompleteLot               commands.CompleteLotCommandHandler
	ConfirmTransfer           commands.ConfirmTransferCommandHandler
	ConfirmAllTransfersForSKU commands.ConfirmAllTransfersForSKUCommandHandler
	CheckPickingAvailability  commands.CheckPickingAvailabilityCommandHandler
	ReceivePallet             commands.ReceivePalletCommandHandler
	AdjustPallet              commands.AdjustPalletCommandHandler
	RemovePallet              commands.RemovePalletCommandHandler
	SaveProduct               commands.SaveProductCommandHandler
	AssignPickingLocation     commands.AssignPickingLocationCommandHandler
	SetRowTemperature         commands.SetRowTemperatureCommandHandler

	// Query handlers
	GetAvailableLots    queries.GetAvailableLotsQueryHandler
	GetPendingTransfers queries.GetPendingTransfersQueryHandler
	GetCustomerStock    queries.GetCustomerStockQueryHandler
	GetWarehouseStock   queries.GetWarehouseStockQueryHandler
}

// Server implements ServerInterface. It translates HTTP requests into commands and
// queries and maps their errors to status codes.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http_server"),
	}
}

// bindBody decodes and validates a JSON request body. The returned *echo.HTTPError is
// rendered by HTTPErrorHandler.
func (s *Server) bindBody(ctx echo.Context, dest any) error {
	if err := ctx.Bind(dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent optional id
	}
	converted, err := toKernelUUID(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func toLocation(l Location) (kernel.Location, error) {
	return kernel.NewLocation(l.Row, l.Cell, kernel.Level(l.Level))
}
