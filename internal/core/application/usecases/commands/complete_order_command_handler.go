package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/customerstock"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CompleteOrderCommandHandler moves a packed order to completed. Reservations left by
// underpicks are released. For customer orders the picked goods are added to the
// customer's stock: kilograms for weight goods, pieces for piece goods.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.Complete(); err != nil {
		return err
	}

	ledgers := newLedgerSet(uow.StockRepository())
	if err = unreserveInventory(ctx, ledgers, o); err != nil {
		return err
	}
	if err = ledgers.save(ctx); err != nil {
		return err
	}

	if o.Type() == order.Customer && o.CustomerID() != nil {
		if err = h.creditCustomer(ctx, uow, o, now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CompleteOrderCommandHandler) creditCustomer(ctx context.Context, uow UoW, o *order.Order, now time.Time) error {
	records, err := uow.PickRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	products, err := uow.CatalogRepository().GetMany(ctx, distinctSKUs(o.Items()))
	if err != nil {
		return err
	}

	stock := uow.CustomerStockRepository()
	customerID := *o.CustomerID()
	for _, c := range services.NewPickAllocator().CustomerContributions(records, products) {
		entry, err := stock.Get(ctx, customerID, c.SKU)
		if errors.Is(err, errs.ErrObjectNotFound) {
			entry, err = customerstock.NewEntry(customerID, c.SKU, c.ProductName, c.Kind)
		}
		if err != nil {
			return err
		}
		if err = entry.Apply(c, now); err != nil {
			return err
		}
		if err = stock.Save(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
