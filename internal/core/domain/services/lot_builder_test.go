package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotBuilder_Build(t *testing.T) {
	t.Run("one lot per pallet", func(t *testing.T) {
		o := customerOrder(t, item(t, "SKU-A", 100), item(t, "SKU-B", 50))
		products := map[string]*catalog.Product{
			"SKU-A": product(t, "SKU-A", 20, catalog.Piece, 10),
			"SKU-B": product(t, "SKU-B", 30, catalog.Weight, 1),
		}
		_, err := services.NewPalletPacker().Pack(o, products, map[string]int{"SKU-A": 10, "SKU-B": 50})
		require.NoError(t, err)

		lots, err := services.NewLotBuilder().Build(o, day)

		require.NoError(t, err)
		require.Len(t, lots, 2)
		assert.Equal(t, "LOT-20261019-P1-6000000042", lots[0].Number())
		assert.Equal(t, "LOT-20261019-P2-6000000042", lots[1].Number())
		for _, i := range o.Items() {
			assert.NotEmpty(t, i.LotNumber())
		}
		assert.Len(t, o.ItemsInLot(lots[0].Number()), 2)
		assert.Len(t, o.ItemsInLot(lots[1].Number()), 1)
	})

	t.Run("rejects unpacked order", func(t *testing.T) {
		o := customerOrder(t, item(t, "SKU-A", 1))

		_, err := services.NewLotBuilder().Build(o, day)

		require.ErrorIs(t, err, services.ErrOrderIsNotPalletized)
	})
}
