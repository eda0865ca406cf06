package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func product(t *testing.T, sku string, edge float64, kind catalog.PackagingKind, multiplicity int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, "Product "+sku, catalog.Dimensions{Length: edge, Width: edge, Height: edge}, kind, multiplicity)
	require.NoError(t, err)
	return p
}

func item(t *testing.T, sku string, quantity int) *order.Item {
	t.Helper()
	i, err := order.NewItem(kernel.NewUUID(), sku, "", quantity, decimal.NewFromInt(3))
	require.NoError(t, err)
	return i
}

func customerOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	customerID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), "6000000042", order.Customer, &customerID, items)
	require.NoError(t, err)
	return o
}

func location(t *testing.T, cell string, level kernel.Level) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation("B", cell, level)
	require.NoError(t, err)
	return loc
}

func pallet(t *testing.T, id, sku string, loc kernel.Location, boxes int, weight string, expiry *time.Time) *inventory.Pallet {
	t.Helper()
	p, err := inventory.NewPallet(inventory.PalletState{
		ID:         id,
		SKU:        sku,
		Location:   loc,
		BoxCount:   boxes,
		NetWeight:  decimal.RequireFromString(weight),
		ExpiryDate: expiry,
		ReceivedAt: day,
	})
	require.NoError(t, err)
	return p
}

func daysFrom(n int) *time.Time {
	d := day.AddDate(0, 0, n)
	return &d
}
