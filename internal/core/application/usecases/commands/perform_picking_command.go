package commands

import (
	"errors"
	"math"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPerformPickingCommandIsNotConstructed = errors.New(
	"PerformPickingCommand must be created via NewPerformPickingCommand constructor",
)

// PerformPickingCommand records that a picker took boxes of a SKU for a lot.
type PerformPickingCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	lotNumber      string
	sku            string
	requestedBoxes int
	pickerID       kernel.UUID

	guard guard.ConstructorGuard
}

func NewPerformPickingCommand(
	orderID kernel.UUID,
	lotNumber, sku string,
	requestedBoxes int,
	pickerID kernel.UUID,
) (PerformPickingCommand, error) {
	if err := errors.Join(orderID.Validate(), pickerID.Validate()); err != nil {
		return PerformPickingCommand{}, err
	}
	if strings.TrimSpace(lotNumber) == "" {
		return PerformPickingCommand{}, errs.NewValueIsRequiredError("lotNumber")
	}
	if strings.TrimSpace(sku) == "" {
		return PerformPickingCommand{}, errs.NewValueIsRequiredError("sku")
	}
	if requestedBoxes <= 0 {
		return PerformPickingCommand{}, errs.NewValueIsOutOfRangeError("requestedBoxes", requestedBoxes, 1, math.MaxInt32)
	}

	return PerformPickingCommand{
		orderID:        orderID,
		lotNumber:      lotNumber,
		sku:            sku,
		requestedBoxes: requestedBoxes,
		pickerID:       pickerID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c PerformPickingCommand) Validate() error {
	return c.guard.Validate(ErrPerformPickingCommandIsNotConstructed)
}

func (c PerformPickingCommand) OrderID() kernel.UUID  { return c.orderID }
func (c PerformPickingCommand) LotNumber() string     { return c.lotNumber }
func (c PerformPickingCommand) SKU() string           { return c.sku }
func (c PerformPickingCommand) RequestedBoxes() int   { return c.requestedBoxes }
func (c PerformPickingCommand) PickerID() kernel.UUID { return c.pickerID }
