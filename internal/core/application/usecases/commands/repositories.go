// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	PalletRepoFactory interface {
		PalletRepository() ports.PalletRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	LotRepoFactory interface {
		LotRepository() ports.LotRepository
	}

	PickRepoFactory interface {
		PickRepository() ports.PickRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	CustomerStockRepoFactory interface {
		CustomerStockRepository() ports.CustomerStockRepository
	}

	// OrderUoW manages transactions for order entry.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW manages transactions that touch stock, pallets and transfers but no order.
	// Used by receiving sync, transfer confirmation and availability checks.
	InventoryUoW interface {
		TxManager
		StockRepoFactory
		PalletRepoFactory
		LocationRepoFactory
		TransferRepoFactory
		CatalogRepoFactory
	}

	// InventoryUoWFactory creates new inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// UoW manages transactions across every aggregate of the fulfillment flow.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   ledger, err := uow.StockRepository().GetLedger(ctx, sku)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
		PalletRepoFactory
		LocationRepoFactory
		TransferRepoFactory
		LotRepoFactory
		PickRepoFactory
		CatalogRepoFactory
		CustomerStockRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}

	// stockRepos is the slice of a unit of work the allocation helpers need.
	stockRepos interface {
		StockRepoFactory
		PalletRepoFactory
		LocationRepoFactory
		TransferRepoFactory
	}
)
