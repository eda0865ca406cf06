package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/customerstock"
	"fulfillment/internal/core/domain/model/kernel"
)

// CatalogRepository reads the product master.
type CatalogRepository interface {
	Get(ctx context.Context, sku string) (*catalog.Product, error)

	// GetMany returns the products found; unknown SKUs are absent from the map.
	GetMany(ctx context.Context, skus []string) (map[string]*catalog.Product, error)

	// Save inserts the product or replaces the stored entry with the same SKU.
	Save(ctx context.Context, product *catalog.Product) error
}

// CustomerStockRepository persists the running stock delivered to customers.
type CustomerStockRepository interface {
	// Get returns errs.ErrObjectNotFound when the customer never received the SKU.
	Get(ctx context.Context, customerID kernel.UUID, sku string) (*customerstock.Entry, error)
	Save(ctx context.Context, entry *customerstock.Entry) error
}
