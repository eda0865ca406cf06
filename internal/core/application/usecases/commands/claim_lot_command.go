package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrClaimLotCommandIsNotConstructed = errors.New(
	"ClaimLotCommand must be created via NewClaimLotCommand constructor",
)

// ClaimLotCommand lets a picker take a lot, and with it the order, for assembly.
type ClaimLotCommand struct { //nolint:recvcheck //using for validation
	lotNumber string
	pickerID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimLotCommand(lotNumber string, pickerID kernel.UUID) (ClaimLotCommand, error) {
	cmd := ClaimLotCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLotNumber(lotNumber),
		cmd.setPickerID(pickerID),
	); err != nil {
		return ClaimLotCommand{}, err
	}

	return cmd, nil
}

func (c ClaimLotCommand) Validate() error {
	return c.guard.Validate(ErrClaimLotCommandIsNotConstructed)
}

func (c ClaimLotCommand) LotNumber() string {
	return c.lotNumber
}

func (c ClaimLotCommand) PickerID() kernel.UUID {
	return c.pickerID
}

func (c *ClaimLotCommand) setLotNumber(lotNumber string) error {
	if strings.TrimSpace(lotNumber) == "" {
		return errs.NewValueIsRequiredError("lotNumber")
	}
	c.lotNumber = lotNumber
	return nil
}

func (c *ClaimLotCommand) setPickerID(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	c.pickerID = pickerID
	return nil
}
