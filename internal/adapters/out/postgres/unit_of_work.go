// Package postgres provides the GORM-based Unit of Work over the fulfillment schema.
//
// A unit of work owns at most one transaction. Repositories obtained after Begin share it,
// so a ledger change, a pallet move and the order update of one command commit together:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	ledger, err := uow.StockRepository().GetLedger(ctx, sku)
//	...
//	return uow.Commit(ctx)
//
// Locks are taken in one order: the order row (OrderRepository.Get), then SKU ledgers in
// SKU order (StockRepository.GetLedger). Pallets, lots and transfer requests are guarded by
// those two locks, so concurrent commands on one order or one SKU serialize on the database.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/customerstockrepo"
	"fulfillment/internal/adapters/out/postgres/locationrepo"
	"fulfillment/internal/adapters/out/postgres/lotrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/palletrepo"
	"fulfillment/internal/adapters/out/postgres/pickrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/adapters/out/postgres/transferrepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Every command gets a fresh instance.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the repositories.
// Without Begin, repositories run on the plain connection in autocommit mode.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction after Commit, which lets handlers defer it
// unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) StockRepository() ports.StockRepository {
	return stockrepo.NewGormStockRepository(uow.conn())
}

func (uow *GormUnitOfWork) PalletRepository() ports.PalletRepository {
	return palletrepo.NewGormPalletRepository(uow.conn())
}

func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return locationrepo.NewGormLocationRepository(uow.conn())
}

func (uow *GormUnitOfWork) TransferRepository() ports.TransferRepository {
	return transferrepo.NewGormTransferRepository(uow.conn())
}

func (uow *GormUnitOfWork) LotRepository() ports.LotRepository {
	return lotrepo.NewGormLotRepository(uow.conn())
}

func (uow *GormUnitOfWork) PickRepository() ports.PickRepository {
	return pickrepo.NewGormPickRepository(uow.conn())
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

func (uow *GormUnitOfWork) CustomerStockRepository() ports.CustomerStockRepository {
	return customerstockrepo.NewGormCustomerStockRepository(uow.conn())
}
