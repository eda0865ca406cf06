package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/transfer"
	"fulfillment/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
)

// ConfirmTransferCommandHandler applies a confirmed pallet move.
//
// The pallet must still stand at the request's source, otherwise transfer.ErrPalletNotFound
// is returned and the request stays pending. On success the pallet and its ledger quantity
// move to the destination, a history row is appended and the request is confirmed.
type ConfirmTransferCommandHandler struct {
	uowFactory InventoryUoWFactory
	ids        *snowflake.Node
}

func NewConfirmTransferCommandHandler(uowFactory InventoryUoWFactory, ids *snowflake.Node) ConfirmTransferCommandHandler {
	return ConfirmTransferCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
	}
}

func (h ConfirmTransferCommandHandler) Handle(ctx context.Context, cmd ConfirmTransferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := h.confirm(ctx, uow, cmd.TransferID(), time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h ConfirmTransferCommandHandler) confirm(ctx context.Context, uow InventoryUoW, id kernel.UUID, now time.Time) error {
	transfers := uow.TransferRepository()
	pallets := uow.PalletRepository()

	request, err := transfers.Get(ctx, id)
	if err != nil {
		return err
	}

	// the SKU lock is taken before the request is read for good
	ledgers := newLedgerSet(uow.StockRepository())
	ledger, err := ledgers.get(ctx, request.SKU())
	if err != nil {
		return err
	}
	if request, err = transfers.Get(ctx, id); err != nil {
		return err
	}
	if request.IsConfirmed() {
		return fmt.Errorf("%w: %s", transfer.ErrAlreadyConfirmed, id)
	}

	pallet, err := pallets.Get(ctx, request.PalletID())
	if errors.Is(err, errs.ErrObjectNotFound) || (err == nil && !pallet.IsAt(request.From())) {
		return fmt.Errorf("%w: %s at %s", transfer.ErrPalletNotFound, request.PalletID(), request.From().Code())
	}
	if err != nil {
		return err
	}

	if err = uow.LocationRepository().Ensure(ctx, request.To()); err != nil {
		return err
	}

	if err = ledger.Move(request.From(), request.To(), pallet.BoxCount(), now); err != nil {
		return err
	}
	if err = pallet.MoveTo(request.To()); err != nil {
		return err
	}
	if err = request.Confirm(now); err != nil {
		return err
	}

	if err = pallets.Update(ctx, pallet); err != nil {
		return err
	}
	if err = ledgers.save(ctx); err != nil {
		return err
	}
	if err = transfers.Update(ctx, request); err != nil {
		return err
	}
	return transfers.AddHistory(ctx, transfer.NewHistory(h.ids.Generate().Int64(), request))
}
