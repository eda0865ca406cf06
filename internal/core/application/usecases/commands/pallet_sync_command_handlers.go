package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
)

// ReceivePalletCommandHandler stores a received pallet and adds its boxes to the ledger row
// of its location in the same transaction.
type ReceivePalletCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewReceivePalletCommandHandler(uowFactory InventoryUoWFactory) ReceivePalletCommandHandler {
	return ReceivePalletCommandHandler{uowFactory: uowFactory}
}

func (h ReceivePalletCommandHandler) Handle(ctx context.Context, cmd ReceivePalletCommand) error {
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

	pallet, err := inventory.NewPallet(cmd.Pallet())
	if err != nil {
		return err
	}
	if err = uow.LocationRepository().Ensure(ctx, pallet.Location()); err != nil {
		return err
	}

	ledgers := newLedgerSet(uow.StockRepository())
	ledger, err := ledgers.get(ctx, pallet.SKU())
	if err != nil {
		return err
	}
	if err = uow.PalletRepository().Add(ctx, pallet); err != nil {
		return err
	}
	if _, err = ledger.Receive(pallet.Location(), pallet.BoxCount(), pallet.ReceivedAt()); err != nil {
		return err
	}
	if err = ledgers.save(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// AdjustPalletCommandHandler applies a pallet correction to the ledger: the box delta at the
// same location, or a withdrawal and receipt when the pallet changed position.
type AdjustPalletCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewAdjustPalletCommandHandler(uowFactory InventoryUoWFactory) AdjustPalletCommandHandler {
	return AdjustPalletCommandHandler{uowFactory: uowFactory}
}

func (h AdjustPalletCommandHandler) Handle(ctx context.Context, cmd AdjustPalletCommand) error {
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

	now := time.Now().UTC()

	ledgers := newLedgerSet(uow.StockRepository())
	pallet, ledger, err := lockPallet(ctx, uow.PalletRepository(), ledgers, cmd.PalletID())
	if err != nil {
		return err
	}
	oldLocation, oldBoxes := pallet.Location(), pallet.BoxCount()

	if err = pallet.Adjust(cmd.BoxCount(), cmd.NetWeight(), cmd.Location()); err != nil {
		return err
	}
	if err = uow.LocationRepository().Ensure(ctx, pallet.Location()); err != nil {
		return err
	}

	switch {
	case !pallet.IsAt(oldLocation):
		if oldBoxes > 0 {
			if _, err = ledger.Withdraw(oldLocation, oldBoxes); err != nil {
				return err
			}
		}
		if _, err = ledger.Receive(pallet.Location(), pallet.BoxCount(), now); err != nil {
			return err
		}
	case pallet.BoxCount() > oldBoxes:
		if _, err = ledger.Receive(oldLocation, pallet.BoxCount()-oldBoxes, now); err != nil {
			return err
		}
	case pallet.BoxCount() < oldBoxes:
		if _, err = ledger.Withdraw(oldLocation, oldBoxes-pallet.BoxCount()); err != nil {
			return err
		}
	}

	if err = uow.PalletRepository().Update(ctx, pallet); err != nil {
		return err
	}
	if err = ledgers.save(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// RemovePalletCommandHandler deletes a pallet and withdraws its remaining boxes from the
// ledger.
type RemovePalletCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewRemovePalletCommandHandler(uowFactory InventoryUoWFactory) RemovePalletCommandHandler {
	return RemovePalletCommandHandler{uowFactory: uowFactory}
}

func (h RemovePalletCommandHandler) Handle(ctx context.Context, cmd RemovePalletCommand) error {
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

	ledgers := newLedgerSet(uow.StockRepository())
	pallet, ledger, err := lockPallet(ctx, uow.PalletRepository(), ledgers, cmd.PalletID())
	if err != nil {
		return err
	}

	if pallet.BoxCount() > 0 {
		if _, err = ledger.Withdraw(pallet.Location(), pallet.BoxCount()); err != nil {
			return err
		}
	}

	if err = uow.PalletRepository().Delete(ctx, pallet.ID()); err != nil {
		return err
	}
	if err = ledgers.save(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
