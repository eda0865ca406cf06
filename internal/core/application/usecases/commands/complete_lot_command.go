package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteLotCommandIsNotConstructed = errors.New(
	"CompleteLotCommand must be created via NewCompleteLotCommand constructor",
)

// CompleteLotCommand closes a fully picked lot on behalf of a picker.
type CompleteLotCommand struct { //nolint:recvcheck //using for validation
	lotNumber string
	pickerID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteLotCommand(lotNumber string, pickerID kernel.UUID) (CompleteLotCommand, error) {
	if err := pickerID.Validate(); err != nil {
		return CompleteLotCommand{}, err
	}
	if strings.TrimSpace(lotNumber) == "" {
		return CompleteLotCommand{}, errs.NewValueIsRequiredError("lotNumber")
	}

	return CompleteLotCommand{
		lotNumber: lotNumber,
		pickerID:  pickerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteLotCommand) Validate() error {
	return c.guard.Validate(ErrCompleteLotCommandIsNotConstructed)
}

func (c CompleteLotCommand) LotNumber() string {
	return c.lotNumber
}

func (c CompleteLotCommand) PickerID() kernel.UUID {
	return c.pickerID
}
