package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// StockRepository persists ledger rows. Rows read through it are locked until the
// surrounding transaction ends.
type StockRepository interface {
	// GetLedger loads every row of the SKU. A SKU without rows yields an empty ledger.
	GetLedger(ctx context.Context, sku string) (*inventory.Ledger, error)

	// SaveLedger writes the rows the ledger changed. Rows that dropped to zero are deleted.
	SaveLedger(ctx context.Context, ledger *inventory.Ledger) error
}

// PalletRepository persists received pallet records.
type PalletRepository interface {
	Add(ctx context.Context, pallet *inventory.Pallet) error
	Update(ctx context.Context, pallet *inventory.Pallet) error
	Delete(ctx context.Context, id string) error

	// Get returns errs.ErrObjectNotFound when no pallet has the id.
	Get(ctx context.Context, id string) (*inventory.Pallet, error)

	// ListBySKU returns the SKU's non-empty pallets on every tier, locked for update.
	ListBySKU(ctx context.Context, sku string) ([]*inventory.Pallet, error)
}

// LocationRepository resolves storage positions.
type LocationRepository interface {
	// Ensure registers the location when it is not known yet.
	Ensure(ctx context.Context, location kernel.Location) error

	// AssignedPickingLocation returns the SKU's configured picking position, or nil.
	AssignedPickingLocation(ctx context.Context, sku string) (*kernel.Location, error)

	// AssignPickingLocation makes location the SKU's picking position, replacing any previous one.
	AssignPickingLocation(ctx context.Context, sku string, location kernel.Location) error

	// FindEmptyGroundLocation returns a ground-tier position holding no pallet and no stock,
	// or nil when the tier is full.
	FindEmptyGroundLocation(ctx context.Context) (*kernel.Location, error)

	// HeldByOtherSKU reports whether a non-empty pallet or a ledger row of another SKU
	// occupies location.
	HeldByOtherSKU(ctx context.Context, location kernel.Location, sku string) (bool, error)

	// RowTemperature returns the climate of a rack row, or nil when none is configured.
	RowTemperature(ctx context.Context, row string) (*kernel.TemperatureRange, error)

	// SetRowTemperature configures the climate of a rack row.
	SetRowTemperature(ctx context.Context, row string, temperature kernel.TemperatureRange) error
}
