package commands

import (
	"errors"
	"math"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrReceivePalletCommandIsNotConstructed = errors.New(
		"ReceivePalletCommand must be created via NewReceivePalletCommand constructor",
	)
	ErrAdjustPalletCommandIsNotConstructed = errors.New(
		"AdjustPalletCommand must be created via NewAdjustPalletCommand constructor",
	)
	ErrRemovePalletCommandIsNotConstructed = errors.New(
		"RemovePalletCommand must be created via NewRemovePalletCommand constructor",
	)
)

// ReceivePalletCommand registers a pallet delivered by the receiving workflow.
type ReceivePalletCommand struct { //nolint:recvcheck //using for validation
	pallet inventory.PalletState

	guard guard.ConstructorGuard
}

// NewReceivePalletCommand validates the pallet attributes by building the pallet once.
func NewReceivePalletCommand(state inventory.PalletState) (ReceivePalletCommand, error) {
	if state.ReceivedAt.IsZero() {
		state.ReceivedAt = time.Now().UTC()
	}
	if _, err := inventory.NewPallet(state); err != nil {
		return ReceivePalletCommand{}, err
	}
	return ReceivePalletCommand{pallet: state, guard: guard.NewConstructorGuard()}, nil
}

func (c ReceivePalletCommand) Validate() error {
	return c.guard.Validate(ErrReceivePalletCommandIsNotConstructed)
}

func (c ReceivePalletCommand) Pallet() inventory.PalletState {
	return c.pallet
}

// AdjustPalletCommand corrects the contents or position of a received pallet.
type AdjustPalletCommand struct { //nolint:recvcheck //using for validation
	palletID  string
	boxCount  int
	netWeight decimal.Decimal
	location  kernel.Location

	guard guard.ConstructorGuard
}

func NewAdjustPalletCommand(
	palletID string,
	boxCount int,
	netWeight decimal.Decimal,
	location kernel.Location,
) (AdjustPalletCommand, error) {
	if strings.TrimSpace(palletID) == "" {
		return AdjustPalletCommand{}, errs.NewValueIsRequiredError("palletId")
	}
	if err := location.Validate(); err != nil {
		return AdjustPalletCommand{}, err
	}
	if boxCount < 0 {
		return AdjustPalletCommand{}, errs.NewValueIsOutOfRangeError("boxCount", boxCount, 0, math.MaxInt32)
	}
	if netWeight.IsNegative() {
		return AdjustPalletCommand{}, errs.NewValueIsInvalidError("netWeight")
	}

	return AdjustPalletCommand{
		palletID:  palletID,
		boxCount:  boxCount,
		netWeight: netWeight,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustPalletCommand) Validate() error {
	return c.guard.Validate(ErrAdjustPalletCommandIsNotConstructed)
}

func (c AdjustPalletCommand) PalletID() string           { return c.palletID }
func (c AdjustPalletCommand) BoxCount() int              { return c.boxCount }
func (c AdjustPalletCommand) NetWeight() decimal.Decimal { return c.netWeight }
func (c AdjustPalletCommand) Location() kernel.Location  { return c.location }

// RemovePalletCommand deletes a pallet record, e.g. after a write-off.
type RemovePalletCommand struct { //nolint:recvcheck //using for validation
	palletID string

	guard guard.ConstructorGuard
}

func NewRemovePalletCommand(palletID string) (RemovePalletCommand, error) {
	if strings.TrimSpace(palletID) == "" {
		return RemovePalletCommand{}, errs.NewValueIsRequiredError("palletId")
	}
	return RemovePalletCommand{palletID: palletID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemovePalletCommand) Validate() error {
	return c.guard.Validate(ErrRemovePalletCommandIsNotConstructed)
}

func (c RemovePalletCommand) PalletID() string {
	return c.palletID
}
