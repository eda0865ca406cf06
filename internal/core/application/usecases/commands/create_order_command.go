package commands

import (
	"errors"
	"math"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("order needs at least one line")
)

// OrderLine is one requested SKU of a new order. Quantity is in pieces for piece goods and
// kilograms for weight goods.
type OrderLine struct {
	SKU         string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateOrderCommand represents a request to enter a new supplier or customer order.
//
// Example:
//
//	customerID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), order.Customer, &customerID, []OrderLine{
//	    {SKU: "4607001771234", Quantity: 120},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	number, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	orderType  order.Type
	customerID *kernel.UUID
	lines      []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order header and every line.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderType order.Type,
	customerID *kernel.UUID,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setType(orderType, customerID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Type() order.Type {
	return c.orderType
}

func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setType(orderType order.Type, customerID *kernel.UUID) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	if orderType == order.Customer && customerID == nil {
		return order.ErrCustomerIsRequired
	}

	c.orderType = orderType
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if strings.TrimSpace(line.SKU) == "" {
			return errs.NewValueIsRequiredError("sku")
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, math.MaxInt32)
		}
	}

	c.lines = append([]OrderLine(nil), lines...)
	return nil
}
