package customerstock_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/customerstock"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Apply(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	t.Run("weight entries accumulate kilograms", func(t *testing.T) {
		e, err := customerstock.NewEntry(kernel.NewUUID(), "SKU-W", "Cheese", catalog.Weight)
		require.NoError(t, err)

		require.NoError(t, e.Apply(customerstock.Contribution{SKU: "SKU-W", Units: 4, Kilograms: decimal.RequireFromString("41.25")}, now))
		require.NoError(t, e.Apply(customerstock.Contribution{SKU: "SKU-W", Kilograms: decimal.RequireFromString("8.75")}, now))

		assert.True(t, decimal.NewFromInt(50).Equal(e.Kilograms()))
		assert.Equal(t, 0, e.Units())
		assert.Equal(t, now, e.UpdatedAt())
	})

	t.Run("piece entries accumulate units", func(t *testing.T) {
		e, _ := customerstock.NewEntry(kernel.NewUUID(), "SKU-A", "Peas", catalog.Piece)

		require.NoError(t, e.Apply(customerstock.Contribution{SKU: "SKU-A", Units: 120}, now))

		assert.Equal(t, 120, e.Units())
	})

	t.Run("other sku is rejected", func(t *testing.T) {
		e, _ := customerstock.NewEntry(kernel.NewUUID(), "SKU-A", "Peas", catalog.Piece)

		require.ErrorIs(t, e.Apply(customerstock.Contribution{SKU: "SKU-B"}, now), errs.ErrValueIsInvalid)
	})
}
