package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, id int64, sku string, boxes int, weight string, weightBased bool) *picking.Record {
	t.Helper()
	r, err := picking.NewRecord(picking.RecordState{
		ID:               id,
		OrderID:          kernel.NewUUID(),
		LotNumber:        "LOT-20261019-P1-6000000042",
		SKU:              sku,
		ProductName:      "Product " + sku,
		PalletID:         "P-1",
		Location:         location(t, "01", 1),
		RequestedBoxes:   boxes,
		PickedBoxes:      boxes,
		CalculatedWeight: decimal.RequireFromString(weight),
		WeightBased:      weightBased,
		PickerID:         kernel.NewUUID(),
		PickedAt:         day,
	})
	require.NoError(t, err)
	return r
}

func TestPickAllocator_Allocate(t *testing.T) {
	t.Run("picks first expired first", func(t *testing.T) {
		late := pallet(t, "P-LATE", "SKU-X", location(t, "01", 1), 10, "100", daysFrom(20))
		early := pallet(t, "P-EARLY", "SKU-X", location(t, "02", 1), 4, "40", daysFrom(2))
		upper := pallet(t, "P-UP", "SKU-X", location(t, "03", 2), 50, "500", daysFrom(1))

		plan, err := services.NewPickAllocator().Allocate(6, []*inventory.Pallet{late, early, upper})

		require.NoError(t, err)
		require.Len(t, plan.Lines, 2)
		assert.Equal(t, "P-EARLY", plan.Lines[0].Pallet.ID())
		assert.Equal(t, 4, plan.Lines[0].Boxes)
		assert.True(t, decimal.NewFromInt(40).Equal(plan.Lines[0].Weight))
		assert.Equal(t, 2, plan.Lines[1].Boxes)
		assert.True(t, decimal.NewFromInt(20).Equal(plan.Lines[1].Weight))
		assert.Equal(t, 6, plan.Picked)
		assert.False(t, plan.Underpicked)
		assert.True(t, early.IsEmpty())
		assert.Equal(t, 8, late.BoxCount())
		assert.Equal(t, 50, upper.BoxCount())
	})

	t.Run("underpicks when ground stock is short", func(t *testing.T) {
		p := pallet(t, "P-1", "SKU-X", location(t, "01", 1), 3, "30", nil)

		plan, err := services.NewPickAllocator().Allocate(5, []*inventory.Pallet{p})

		require.NoError(t, err)
		assert.Equal(t, 3, plan.Picked)
		assert.True(t, plan.Underpicked)
	})

	t.Run("nothing to pick", func(t *testing.T) {
		_, err := services.NewPickAllocator().Allocate(5, nil)

		require.ErrorIs(t, err, picking.ErrNothingAvailable)
	})
}

func TestPickAllocator_LotIsComplete(t *testing.T) {
	a, err := order.NewItem(kernel.NewUUID(), "SKU-A", "", 30, decimal.Zero)
	require.NoError(t, err)
	a.ApplyCatalog(product(t, "SKU-A", 10, catalog.Piece, 10))
	b, err := order.NewItem(kernel.NewUUID(), "SKU-B", "", 2, decimal.Zero)
	require.NoError(t, err)
	items := []*order.Item{a, b}
	allocator := services.NewPickAllocator()

	assert.False(t, allocator.LotIsComplete(items, []*picking.Record{record(t, 1, "SKU-A", 3, "0", false)}))
	assert.True(t, allocator.LotIsComplete(items, []*picking.Record{
		record(t, 1, "SKU-A", 2, "0", false),
		record(t, 2, "SKU-A", 1, "0", false),
		record(t, 3, "SKU-B", 2, "0", false),
	}))
	assert.False(t, allocator.LotIsComplete(nil, nil))
}

func TestPickAllocator_Summaries(t *testing.T) {
	records := []*picking.Record{
		record(t, 1, "SKU-W", 2, "24.5", true),
		record(t, 2, "SKU-A", 3, "6", false),
		record(t, 3, "SKU-W", 1, "12.25", true),
	}
	allocator := services.NewPickAllocator()

	t.Run("lot summary per sku", func(t *testing.T) {
		summaries := allocator.Summarize(records)

		require.Len(t, summaries, 2)
		assert.Equal(t, "SKU-A", summaries[0].SKU)
		assert.Equal(t, 3, summaries[0].Boxes)
		assert.Equal(t, "SKU-W", summaries[1].SKU)
		assert.Equal(t, 3, summaries[1].Boxes)
		assert.True(t, decimal.RequireFromString("36.75").Equal(summaries[1].Weight))
	})

	t.Run("customer contributions", func(t *testing.T) {
		products := map[string]*catalog.Product{
			"SKU-A": product(t, "SKU-A", 10, catalog.Piece, 12),
			"SKU-W": product(t, "SKU-W", 10, catalog.Weight, 1),
		}

		contributions := allocator.CustomerContributions(records, products)

		require.Len(t, contributions, 2)
		assert.Equal(t, catalog.Piece, contributions[0].Kind)
		assert.Equal(t, 36, contributions[0].Units)
		assert.Equal(t, catalog.Weight, contributions[1].Kind)
		assert.True(t, decimal.RequireFromString("36.75").Equal(contributions[1].Kilograms))
	})
}
