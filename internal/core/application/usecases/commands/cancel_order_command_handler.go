package commands

import (
	"context"
)

// CancelOrderCommandHandler releases every reservation of the order and cancels it.
// Completed orders cannot be cancelled.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.Cancel(); err != nil {
		return err
	}

	ledgers := newLedgerSet(uow.StockRepository())
	if err = unreserveInventory(ctx, ledgers, o); err != nil {
		return err
	}
	if err = ledgers.save(ctx); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
