package commands

import (
	"context"
	"time"
)

// CheckPickingAvailabilityCommandHandler converts the asked quantity to boxes and checks
// the picking tier. A deficit queues transfers from upper tiers and is returned in the
// result; pending transfers for the SKU are reported instead of creating more.
type CheckPickingAvailabilityCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewCheckPickingAvailabilityCommandHandler(uowFactory InventoryUoWFactory) CheckPickingAvailabilityCommandHandler {
	return CheckPickingAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CheckPickingAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd CheckPickingAvailabilityCommand,
) (PickingAvailability, error) {
	if err := cmd.Validate(); err != nil {
		return PickingAvailability{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PickingAvailability{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	product, err := uow.CatalogRepository().Get(ctx, cmd.SKU())
	if err != nil {
		return PickingAvailability{}, err
	}

	ledgers := newLedgerSet(uow.StockRepository())
	result, err := checkPickingAvailability(ctx, uow, ledgers, cmd.SKU(), product.BoxesFor(cmd.Quantity()), time.Now().UTC())
	if err != nil {
		return PickingAvailability{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PickingAvailability{}, err
	}

	return result, nil
}
