package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrConfirmTransferCommandIsNotConstructed = errors.New(
		"ConfirmTransferCommand must be created via NewConfirmTransferCommand constructor",
	)
	ErrConfirmAllTransfersCommandIsNotConstructed = errors.New(
		"ConfirmAllTransfersForSKUCommand must be created via NewConfirmAllTransfersForSKUCommand constructor",
	)
)

// ConfirmTransferCommand reports that a worker moved the pallet of a transfer request.
type ConfirmTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmTransferCommand(transferID kernel.UUID) (ConfirmTransferCommand, error) {
	if err := transferID.Validate(); err != nil {
		return ConfirmTransferCommand{}, err
	}
	return ConfirmTransferCommand{transferID: transferID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmTransferCommand) Validate() error {
	return c.guard.Validate(ErrConfirmTransferCommandIsNotConstructed)
}

func (c ConfirmTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// ConfirmAllTransfersForSKUCommand confirms every pending transfer of a SKU.
type ConfirmAllTransfersForSKUCommand struct { //nolint:recvcheck //using for validation
	sku string

	guard guard.ConstructorGuard
}

func NewConfirmAllTransfersForSKUCommand(sku string) (ConfirmAllTransfersForSKUCommand, error) {
	if strings.TrimSpace(sku) == "" {
		return ConfirmAllTransfersForSKUCommand{}, errs.NewValueIsRequiredError("sku")
	}
	return ConfirmAllTransfersForSKUCommand{sku: sku, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmAllTransfersForSKUCommand) Validate() error {
	return c.guard.Validate(ErrConfirmAllTransfersCommandIsNotConstructed)
}

func (c ConfirmAllTransfersForSKUCommand) SKU() string {
	return c.sku
}
