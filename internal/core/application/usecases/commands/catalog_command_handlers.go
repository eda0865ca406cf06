package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// SaveProductCommandHandler upserts a product of the catalog master.
type SaveProductCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewSaveProductCommandHandler(uowFactory InventoryUoWFactory) SaveProductCommandHandler {
	return SaveProductCommandHandler{uowFactory: uowFactory}
}

func (h SaveProductCommandHandler) Handle(ctx context.Context, cmd SaveProductCommand) error {
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

	if err := uow.CatalogRepository().Save(ctx, cmd.Product()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// AssignPickingLocationCommandHandler records the picking position of a catalog SKU. A
// product with a storage temperature only goes to a row whose climate suits it.
type AssignPickingLocationCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewAssignPickingLocationCommandHandler(uowFactory InventoryUoWFactory) AssignPickingLocationCommandHandler {
	return AssignPickingLocationCommandHandler{uowFactory: uowFactory}
}

func (h AssignPickingLocationCommandHandler) Handle(ctx context.Context, cmd AssignPickingLocationCommand) error {
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

	product, err := uow.CatalogRepository().Get(ctx, cmd.SKU())
	if err != nil {
		return err
	}
	if celsius := product.Temperature(); celsius != nil {
		climate, err := uow.LocationRepository().RowTemperature(ctx, cmd.Location().Row())
		if err != nil {
			return err
		}
		if climate != nil && !climate.Suits(*celsius) {
			return fmt.Errorf("%w: %s is kept at %d °C, row %s holds %s",
				kernel.ErrTemperatureMismatch, cmd.SKU(), *celsius, cmd.Location().Row(), climate)
		}
	}
	if err := uow.LocationRepository().Ensure(ctx, cmd.Location()); err != nil {
		return err
	}
	if err := uow.LocationRepository().AssignPickingLocation(ctx, cmd.SKU(), cmd.Location()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// SetRowTemperatureCommandHandler stores the climate of a rack row.
type SetRowTemperatureCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewSetRowTemperatureCommandHandler(uowFactory InventoryUoWFactory) SetRowTemperatureCommandHandler {
	return SetRowTemperatureCommandHandler{uowFactory: uowFactory}
}

func (h SetRowTemperatureCommandHandler) Handle(ctx context.Context, cmd SetRowTemperatureCommand) error {
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

	if err := uow.LocationRepository().SetRowTemperature(ctx, cmd.Row(), cmd.Temperature()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
