package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetWarehouseStockQueryIsNotConstructed = errors.New(
		"GetWarehouseStockQuery must be created via NewGetWarehouseStockQuery constructor",
	)
)

// GetWarehouseStockQuery summarizes the stock on hand per SKU. An empty SKU reports every SKU.
type GetWarehouseStockQuery struct { //nolint:recvcheck //using for validation
	sku   string
	guard guard.ConstructorGuard
}

func NewGetWarehouseStockQuery(sku string) GetWarehouseStockQuery {
	return GetWarehouseStockQuery{sku: sku, guard: guard.NewConstructorGuard()}
}

func (q GetWarehouseStockQuery) SKU() string {
	return q.sku
}

func (q GetWarehouseStockQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseStockQueryIsNotConstructed)
}

// GetWarehouseStockQueryResponse is one SKU with its pallet totals and ledger rows.
type GetWarehouseStockQueryResponse struct {
	SKU           string
	ProductName   string
	PalletCount   int
	TotalBoxes    int
	TotalWeight   decimal.Decimal
	ReservedBoxes int
	Locations     []WarehouseStockLocation
}

// WarehouseStockLocation is one ledger row of the SKU.
type WarehouseStockLocation struct {
	Location kernel.Location
	Boxes    int
	Reserved int
}
