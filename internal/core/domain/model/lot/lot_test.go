package lot_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	date := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "LOT-20261019-P2-6000000042", lot.Number(date, 2, "6000000042"))
}

func TestNewLot(t *testing.T) {
	t.Run("starts waiting", func(t *testing.T) {
		l, err := lot.NewLot(kernel.NewUUID(), kernel.NewUUID(), "LOT-20261019-P1-3000000001", 1)

		require.NoError(t, err)
		assert.Equal(t, lot.Wait, l.Status())
		assert.False(t, l.IsPacked())
		assert.Nil(t, l.PickerID())
	})

	t.Run("rejects invalid pallet and number", func(t *testing.T) {
		_, err := lot.NewLot(kernel.NewUUID(), kernel.NewUUID(), "LOT-1", 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = lot.NewLot(kernel.NewUUID(), kernel.NewUUID(), "", 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestLot_Lifecycle(t *testing.T) {
	l, _ := lot.NewLot(kernel.NewUUID(), kernel.NewUUID(), "LOT-20261019-P1-3000000001", 1)
	picker := kernel.NewUUID()
	closedAt := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	require.NoError(t, l.Start(picker))
	require.NoError(t, l.Start(picker))
	assert.Equal(t, lot.Start, l.Status())

	err := l.Close(picker, closedAt, []lot.SKUSummary{
		{SKU: "SKU-A", Boxes: 10, Weight: decimal.RequireFromString("12.5")},
		{SKU: "SKU-B", Boxes: 4, Weight: decimal.RequireFromString("80")},
	})
	require.NoError(t, err)

	assert.True(t, l.IsPacked())
	assert.Equal(t, 14, l.BoxCount())
	assert.True(t, decimal.RequireFromString("92.5").Equal(l.TotalWeight()))
	require.NotNil(t, l.CompletedAt())
	assert.Equal(t, closedAt, *l.CompletedAt())
	assert.Len(t, l.SKUs(), 2)

	require.ErrorIs(t, l.Close(picker, closedAt, nil), errs.ErrInvalidStateTransition)
	require.ErrorIs(t, l.Start(picker), errs.ErrInvalidStateTransition)
	assert.Equal(t, 14, l.BoxCount())
}

func TestRestoreLot(t *testing.T) {
	_, err := lot.RestoreLot(lot.State{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Number: "LOT-1", PalletNumber: 1, Status: lot.Unknown,
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	l, err := lot.RestoreLot(lot.State{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Number: "LOT-1", PalletNumber: 1, Status: lot.Packed, BoxCount: 3,
	})
	require.NoError(t, err)
	assert.True(t, l.IsPacked())
	assert.Equal(t, "packed", l.Status().String())
}
