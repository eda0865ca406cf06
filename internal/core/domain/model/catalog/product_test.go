package catalog_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("piece product", func(t *testing.T) {
		p, err := catalog.NewProduct("SKU-A", "Canned peas", catalog.Dimensions{Length: 20, Width: 20, Height: 20}, catalog.Piece, 10)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 8000.0, p.UnitVolume(), 0.0001)
		assert.True(t, p.HasDimensions())
		assert.False(t, p.IsWeightBased())
		assert.Equal(t, 10, p.Multiplicity())
	})

	t.Run("zero multiplicity counts as one", func(t *testing.T) {
		p, err := catalog.NewProduct("SKU-B", "Loose item", catalog.Dimensions{Length: 10, Width: 10, Height: 10}, catalog.Piece, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, p.Multiplicity())
		assert.Equal(t, 7, p.BoxesFor(7))
	})

	t.Run("missing dimensions are allowed", func(t *testing.T) {
		p, err := catalog.NewProduct("SKU-C", "Unmeasured", catalog.Dimensions{}, catalog.Weight, 0)

		require.NoError(t, err)
		assert.False(t, p.HasDimensions())
	})

	t.Run("invalid arguments are joined", func(t *testing.T) {
		_, err := catalog.NewProduct(" ", "x", catalog.Dimensions{Length: -1}, "crate", -2)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestProduct_BoxesFor(t *testing.T) {
	piece, _ := catalog.NewProduct("SKU-A", "", catalog.Dimensions{Length: 1, Width: 1, Height: 1}, catalog.Piece, 10)
	weight, _ := catalog.NewProduct("SKU-W", "", catalog.Dimensions{Length: 1, Width: 1, Height: 1}, catalog.Weight, 6)

	assert.Equal(t, 10, piece.BoxesFor(100))
	assert.Equal(t, 11, piece.BoxesFor(101))
	assert.Equal(t, 0, piece.BoxesFor(0))
	assert.Equal(t, 50, weight.BoxesFor(50))
	assert.Equal(t, 30, piece.UnitsFor(3))
	assert.Equal(t, 3, weight.UnitsFor(3))
}
