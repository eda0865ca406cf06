package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained after Begin run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	StockRepository() StockRepository
	PalletRepository() PalletRepository
	LocationRepository() LocationRepository
	TransferRepository() TransferRepository
	LotRepository() LotRepository
	PickRepository() PickRepository
	CatalogRepository() CatalogRepository
	CustomerStockRepository() CustomerStockRepository
}
