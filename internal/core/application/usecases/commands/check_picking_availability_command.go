package commands

import (
	"errors"
	"math"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckPickingAvailabilityCommandIsNotConstructed = errors.New(
	"CheckPickingAvailabilityCommand must be created via NewCheckPickingAvailabilityCommand constructor",
)

// CheckPickingAvailabilityCommand asks whether the picking tier holds quantity units of a
// SKU. It is a command because a shortfall queues transfers.
type CheckPickingAvailabilityCommand struct { //nolint:recvcheck //using for validation
	sku      string
	quantity int

	guard guard.ConstructorGuard
}

func NewCheckPickingAvailabilityCommand(sku string, quantity int) (CheckPickingAvailabilityCommand, error) {
	if strings.TrimSpace(sku) == "" {
		return CheckPickingAvailabilityCommand{}, errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		return CheckPickingAvailabilityCommand{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	return CheckPickingAvailabilityCommand{sku: sku, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (c CheckPickingAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrCheckPickingAvailabilityCommandIsNotConstructed)
}

func (c CheckPickingAvailabilityCommand) SKU() string {
	return c.sku
}

// Quantity is in pieces for piece goods and boxes for weight goods.
func (c CheckPickingAvailabilityCommand) Quantity() int {
	return c.quantity
}
