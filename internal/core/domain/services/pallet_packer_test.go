package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalletPacker_Pack(t *testing.T) {
	t.Run("fills the first pallet and spills into a second", func(t *testing.T) {
		a := item(t, "SKU-A", 100)
		b := item(t, "SKU-B", 50)
		o := customerOrder(t, a, b)
		products := map[string]*catalog.Product{
			"SKU-A": product(t, "SKU-A", 20, catalog.Piece, 10),
			"SKU-B": product(t, "SKU-B", 30, catalog.Weight, 1),
		}
		available := map[string]int{"SKU-A": 500, "SKU-B": 500}

		result, err := services.NewPalletPacker().Pack(o, products, available)

		require.NoError(t, err)
		assert.Equal(t, 2, result.PalletsCount)
		assert.Equal(t, 2, o.PalletsCount())
		require.Len(t, o.Items(), 3)

		onFirst := o.ItemsOnPallet(1)
		require.Len(t, onFirst, 2)
		assert.Equal(t, "SKU-A", onFirst[0].SKU())
		assert.Equal(t, 100, onFirst[0].Quantity())
		assert.Equal(t, 10, onFirst[0].BoxCount())
		assert.Equal(t, "SKU-B", onFirst[1].SKU())
		assert.Equal(t, 32, onFirst[1].BoxCount())

		onSecond := o.ItemsOnPallet(2)
		require.Len(t, onSecond, 1)
		assert.Equal(t, 18, onSecond[0].BoxCount())
		assert.Equal(t, 50, onSecond[0].OriginalQuantity())

		assert.InDelta(t, 944_000.0, result.PalletVolumes[0], 0.001)
		assert.InDelta(t, 486_000.0, result.PalletVolumes[1], 0.001)
		for _, v := range result.PalletVolumes {
			assert.LessOrEqual(t, v, services.PalletVolume)
		}
		assert.True(t, o.IsPalletized())
	})

	t.Run("conserves box volume per sku", func(t *testing.T) {
		a := item(t, "SKU-A", 995)
		o := customerOrder(t, a)
		products := map[string]*catalog.Product{"SKU-A": product(t, "SKU-A", 40, catalog.Piece, 6)}

		result, err := services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-A": 1000})

		require.NoError(t, err)
		boxes, pieces := 0, 0
		for _, i := range o.Items() {
			boxes += i.BoxCount()
			pieces += i.Quantity()
		}
		assert.Equal(t, 166, boxes)
		assert.Equal(t, 995, pieces)
		total := 0.0
		for _, v := range result.PalletVolumes {
			total += v
			assert.LessOrEqual(t, v, services.PalletVolume)
		}
		assert.InDelta(t, float64(boxes)*64_000, total, 0.001)
	})

	t.Run("clamps to available boxes shared by lines of one sku", func(t *testing.T) {
		first := item(t, "SKU-A", 40)
		second := item(t, "SKU-A", 40)
		o := customerOrder(t, first, second)
		products := map[string]*catalog.Product{"SKU-A": product(t, "SKU-A", 10, catalog.Piece, 1)}

		result, err := services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-A": 50})

		require.NoError(t, err)
		assert.Equal(t, []string{"SKU-A"}, result.Clamped)
		items := o.Items()
		require.Len(t, items, 1, "one row per sku and pallet")
		assert.Equal(t, 50, items[0].Quantity())
	})

	t.Run("merged lines keep original quantities and prices", func(t *testing.T) {
		first, err := order.NewItem(kernel.NewUUID(), "SKU-A", "", 30, decimal.NewFromInt(2))
		require.NoError(t, err)
		second, err := order.NewItem(kernel.NewUUID(), "SKU-A", "", 10, decimal.NewFromInt(6))
		require.NoError(t, err)
		o := customerOrder(t, first, second)
		products := map[string]*catalog.Product{"SKU-A": product(t, "SKU-A", 10, catalog.Piece, 1)}

		_, err = services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-A": 100})

		require.NoError(t, err)
		items := o.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 40, items[0].Quantity())
		assert.Equal(t, 40, items[0].OriginalQuantity())
		assert.True(t, decimal.NewFromInt(3).Equal(items[0].UnitPrice()), items[0].UnitPrice().String())
	})

	t.Run("skips lines without stock, catalog or dimensions", func(t *testing.T) {
		o := customerOrder(t, item(t, "SKU-A", 5), item(t, "SKU-B", 5), item(t, "SKU-C", 5), item(t, "SKU-D", 5))
		flat, err := catalog.NewProduct("SKU-C", "Flat", catalog.Dimensions{Length: 10}, catalog.Piece, 1)
		require.NoError(t, err)
		products := map[string]*catalog.Product{
			"SKU-A": product(t, "SKU-A", 10, catalog.Piece, 1),
			"SKU-B": product(t, "SKU-B", 10, catalog.Piece, 1),
			"SKU-C": flat,
		}

		result, err := services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-A": 5, "SKU-C": 5})

		require.NoError(t, err)
		reasons := map[string]services.SkipReason{}
		for _, s := range result.Skipped {
			reasons[s.SKU] = s.Reason
		}
		assert.Equal(t, map[string]services.SkipReason{
			"SKU-B": services.SkipOutOfStock,
			"SKU-C": services.SkipMissingDimensions,
			"SKU-D": services.SkipNoCatalogEntry,
		}, reasons)
		require.Len(t, o.Items(), 1)
		assert.Equal(t, "SKU-A", o.Items()[0].SKU())
	})

	t.Run("oversized box gets its own pallet", func(t *testing.T) {
		o := customerOrder(t, item(t, "SKU-BIG", 2))
		products := map[string]*catalog.Product{"SKU-BIG": product(t, "SKU-BIG", 100, catalog.Piece, 1)}

		result, err := services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-BIG": 2})

		require.NoError(t, err)
		assert.Equal(t, 2, result.PalletsCount)
	})

	t.Run("rejects an already packed order", func(t *testing.T) {
		o := customerOrder(t, item(t, "SKU-A", 5))
		products := map[string]*catalog.Product{"SKU-A": product(t, "SKU-A", 10, catalog.Piece, 1)}
		_, err := services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-A": 5})
		require.NoError(t, err)
		require.NoError(t, o.StartProcessing())

		_, err = services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-A": 5})

		require.Error(t, err)
		assert.Equal(t, order.Processing, o.Status())
	})
}
