package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSaveProductCommandIsNotConstructed = errors.New(
		"SaveProductCommand must be created via NewSaveProductCommand constructor",
	)
	ErrAssignPickingLocationCommandIsNotConstructed = errors.New(
		"AssignPickingLocationCommand must be created via NewAssignPickingLocationCommand constructor",
	)
	ErrSetRowTemperatureCommandIsNotConstructed = errors.New(
		"SetRowTemperatureCommand must be created via NewSetRowTemperatureCommand constructor",
	)
)

// SaveProductCommand creates or replaces a catalog entry.
type SaveProductCommand struct { //nolint:recvcheck //using for validation
	product *catalog.Product

	guard guard.ConstructorGuard
}

func NewSaveProductCommand(
	sku, name string,
	dims catalog.Dimensions,
	kind catalog.PackagingKind,
	multiplicity int,
	temperature, shelfLifeDays *int,
) (SaveProductCommand, error) {
	p, err := catalog.RestoreProduct(sku, name, dims, kind, multiplicity, temperature, shelfLifeDays)
	if err != nil {
		return SaveProductCommand{}, err
	}
	return SaveProductCommand{product: p, guard: guard.NewConstructorGuard()}, nil
}

func (c SaveProductCommand) Validate() error {
	return c.guard.Validate(ErrSaveProductCommandIsNotConstructed)
}

func (c SaveProductCommand) Product() *catalog.Product {
	return c.product
}

// AssignPickingLocationCommand sets the ground-tier position a SKU is replenished to.
type AssignPickingLocationCommand struct { //nolint:recvcheck //using for validation
	sku      string
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewAssignPickingLocationCommand(sku string, location kernel.Location) (AssignPickingLocationCommand, error) {
	if strings.TrimSpace(sku) == "" {
		return AssignPickingLocationCommand{}, errs.NewValueIsRequiredError("sku")
	}
	if err := location.Validate(); err != nil {
		return AssignPickingLocationCommand{}, err
	}
	if !location.IsGroundTier() {
		return AssignPickingLocationCommand{}, errs.NewValueIsOutOfRangeError("level", location.Level(),
			kernel.GroundLevel, kernel.GroundLevel)
	}
	return AssignPickingLocationCommand{sku: sku, location: location, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignPickingLocationCommand) Validate() error {
	return c.guard.Validate(ErrAssignPickingLocationCommandIsNotConstructed)
}

func (c AssignPickingLocationCommand) SKU() string {
	return c.sku
}

func (c AssignPickingLocationCommand) Location() kernel.Location {
	return c.location
}

// SetRowTemperatureCommand configures the climate of one rack row.
type SetRowTemperatureCommand struct { //nolint:recvcheck //using for validation
	row         string
	temperature kernel.TemperatureRange

	guard guard.ConstructorGuard
}

func NewSetRowTemperatureCommand(row string, lowest, highest float64) (SetRowTemperatureCommand, error) {
	row = strings.TrimSpace(row)
	if row == "" {
		return SetRowTemperatureCommand{}, errs.NewValueIsRequiredError("row")
	}
	temperature, err := kernel.NewTemperatureRange(lowest, highest)
	if err != nil {
		return SetRowTemperatureCommand{}, err
	}
	return SetRowTemperatureCommand{row: row, temperature: temperature, guard: guard.NewConstructorGuard()}, nil
}

func (c SetRowTemperatureCommand) Validate() error {
	return c.guard.Validate(ErrSetRowTemperatureCommandIsNotConstructed)
}

func (c SetRowTemperatureCommand) Row() string {
	return c.row
}

func (c SetRowTemperatureCommand) Temperature() kernel.TemperatureRange {
	return c.temperature
}
