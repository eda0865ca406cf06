package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// TransferFailure is a request ConfirmAllTransfersForSKU could not confirm.
type TransferFailure struct {
	TransferID kernel.UUID
	Err        error
}

// ConfirmAllResult lists the outcome per request.
type ConfirmAllResult struct {
	Confirmed []kernel.UUID
	Failed    []TransferFailure
}

// ConfirmAllTransfersForSKUCommandHandler confirms each pending request of a SKU in its own
// transaction; one failure does not stop the rest.
type ConfirmAllTransfersForSKUCommandHandler struct {
	uowFactory InventoryUoWFactory
	confirm    ConfirmTransferCommandHandler
}

func NewConfirmAllTransfersForSKUCommandHandler(
	uowFactory InventoryUoWFactory,
	confirm ConfirmTransferCommandHandler,
) ConfirmAllTransfersForSKUCommandHandler {
	return ConfirmAllTransfersForSKUCommandHandler{
		uowFactory: uowFactory,
		confirm:    confirm,
	}
}

func (h ConfirmAllTransfersForSKUCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmAllTransfersForSKUCommand,
) (ConfirmAllResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmAllResult{}, err
	}

	ids, err := h.pendingIDs(ctx, cmd.SKU())
	if err != nil {
		return ConfirmAllResult{}, err
	}

	result := ConfirmAllResult{Confirmed: make([]kernel.UUID, 0), Failed: make([]TransferFailure, 0)}
	for _, id := range ids {
		confirmCmd, err := NewConfirmTransferCommand(id)
		if err == nil {
			err = h.confirm.Handle(ctx, confirmCmd)
		}
		if err != nil {
			result.Failed = append(result.Failed, TransferFailure{TransferID: id, Err: err})
			continue
		}
		result.Confirmed = append(result.Confirmed, id)
	}
	return result, nil
}

func (h ConfirmAllTransfersForSKUCommandHandler) pendingIDs(ctx context.Context, sku string) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests, err := uow.TransferRepository().ListUnconfirmedBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID())
	}
	return ids, nil
}
