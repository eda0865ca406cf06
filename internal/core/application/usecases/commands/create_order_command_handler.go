package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler enters a new order in the created status and issues the next
// order number of its type.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	number, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order entry failed: %w", err)
//	}
//	// number is e.g. "6000000043"
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists the order and returns its number.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	items := make([]*order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		item, err := order.NewItem(kernel.NewUUID(), line.SKU, line.ProductName, line.Quantity, line.UnitPrice)
		if err != nil {
			return "", err
		}
		items = append(items, item)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	last, err := orderRepo.LastNumber(ctx, cmd.Type())
	if err != nil {
		return "", err
	}
	number, err := order.NextNumber(cmd.Type(), last)
	if err != nil {
		return "", fmt.Errorf("next %s order number: %w", cmd.Type(), err)
	}

	o, err := order.NewOrder(cmd.OrderID(), number, cmd.Type(), cmd.CustomerID(), items)
	if err != nil {
		return "", err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}
