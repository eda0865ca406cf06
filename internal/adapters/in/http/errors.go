package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/transfer"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	badRequest = []error{
		errs.ErrValueIsInvalid,
		errs.ErrValueIsRequired,
		errs.ErrValueIsOutOfRange,
		order.ErrCustomerIsRequired,
		commands.ErrOrderLinesAreRequired,
	}
	conflict = []error{
		errs.ErrInvalidStateTransition,
		order.ErrAlreadyClaimed,
		picking.ErrTransferPending,
		transfer.ErrAlreadyConfirmed,
		transfer.ErrPalletNotFound,
		lot.ErrNotFullyPicked,
	}
	unprocessable = []error{
		picking.ErrRequiresTransfer,
		picking.ErrNothingAvailable,
		inventory.ErrInsufficientStock,
		commands.ErrNothingToProcess,
		transfer.ErrNoPickingLocation,
		kernel.ErrTemperatureMismatch,
	}
)

// statusFor maps an application error to its HTTP status. Not-found is checked first
// because lookups wrap their cause.
func statusFor(err error) int {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return http.StatusNotFound
	}
	if isAny(err, conflict) {
		return http.StatusConflict
	}
	if isAny(err, unprocessable) {
		return http.StatusUnprocessableEntity
	}
	if isAny(err, badRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// errorBody builds the response for err. Internal errors are not echoed to the client.
func errorBody(code int, err error) Error {
	body := Error{Code: code, Message: err.Error()}
	if code == http.StatusInternalServerError {
		body.Message = http.StatusText(code)
	}

	var shortfall *picking.RequiresTransferError
	if errors.As(err, &shortfall) {
		body.Available = &shortfall.Available
		body.Required = &shortfall.Required
		body.TransfersCreated = &shortfall.TransfersCreated
	}
	return body
}

// respondError writes err with its mapped status and logs server-side failures.
func (s *Server) respondError(ctx echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(code, errorBody(code, err))
}

// HTTPErrorHandler renders errors raised outside the handlers, such as parameter binding
// failures and unknown routes, in the same shape as handler errors.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, Error{Code: code, Message: message})
}
