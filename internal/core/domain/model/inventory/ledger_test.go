package inventory_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

func location(t *testing.T, cell string, level kernel.Level) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation("A", cell, level)
	require.NoError(t, err)
	return loc
}

func row(t *testing.T, cell string, level kernel.Level, quantity, reserved int, age int) *inventory.StockRecord {
	t.Helper()
	r, err := inventory.RestoreStockRecord(kernel.NewUUID(), "SKU-X", location(t, cell, level),
		quantity, reserved, base.Add(time.Duration(age)*time.Hour))
	require.NoError(t, err)
	return r
}

func assertInvariant(t *testing.T, l *inventory.Ledger) {
	t.Helper()
	for _, r := range l.Rows() {
		assert.GreaterOrEqual(t, r.Reserved(), 0)
		assert.LessOrEqual(t, r.Reserved(), r.Quantity(), "row %s", r.Location().Code())
	}
}

func TestNewLedger(t *testing.T) {
	t.Run("sorts rows oldest first", func(t *testing.T) {
		newer := row(t, "02", 1, 5, 0, 2)
		older := row(t, "01", 1, 5, 0, 1)

		l, err := inventory.NewLedger("SKU-X", []*inventory.StockRecord{newer, older})

		require.NoError(t, err)
		assert.Equal(t, []*inventory.StockRecord{older, newer}, l.Rows())
	})

	t.Run("rejects rows of another sku", func(t *testing.T) {
		other, _ := inventory.RestoreStockRecord(kernel.NewUUID(), "SKU-Y", location(t, "01", 1), 1, 0, base)

		_, err := inventory.NewLedger("SKU-X", []*inventory.StockRecord{other})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLedger_Totals(t *testing.T) {
	l, err := inventory.NewLedger("SKU-X", []*inventory.StockRecord{
		row(t, "01", 1, 20, 5, 0),
		row(t, "02", 1, 15, 0, 1),
		row(t, "03", 3, 100, 0, 2),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, l.TotalAvailable())
	assert.Equal(t, 130, l.TotalAvailableAllLevels())
	assert.Equal(t, 5, l.TotalReserved())
}

func TestLedger_Reserve(t *testing.T) {
	t.Run("consumes ground rows FIFO", func(t *testing.T) {
		first := row(t, "01", 1, 10, 0, 0)
		second := row(t, "02", 1, 30, 0, 1)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{second, first})

		allocation, err := l.Reserve(25)

		require.NoError(t, err)
		assert.Equal(t, inventory.Allocation{"A-01-1": 10, "A-02-1": 15}, allocation)
		assert.Equal(t, 10, first.Reserved())
		assert.Equal(t, 15, second.Reserved())
		assert.Len(t, l.Changed(), 2)
		assertInvariant(t, l)
	})

	t.Run("upper tier stock is not reservable", func(t *testing.T) {
		ground := row(t, "01", 1, 30, 0, 0)
		upper := row(t, "09", 4, 100, 0, 1)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{ground, upper})

		_, err := l.Reserve(50)

		require.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Equal(t, 0, ground.Reserved())
		assert.Equal(t, 0, upper.Reserved())
		assert.Empty(t, l.Changed())
	})

	t.Run("reserves exactly the available amount", func(t *testing.T) {
		ground := row(t, "01", 1, 30, 10, 0)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{ground})

		_, err := l.Reserve(20)

		require.NoError(t, err)
		assert.Equal(t, 30, ground.Reserved())
		assert.Equal(t, 0, l.TotalAvailable())
	})

	t.Run("negative is rejected", func(t *testing.T) {
		l, _ := inventory.NewLedger("SKU-X", nil)

		_, err := l.Reserve(-1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestLedger_Release(t *testing.T) {
	t.Run("over release fails without changes", func(t *testing.T) {
		r := row(t, "01", 1, 10, 4, 0)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{r})

		require.ErrorIs(t, l.Release(5), inventory.ErrOverRelease)
		assert.Equal(t, 4, r.Reserved())
	})

	t.Run("reserve then release restores every row", func(t *testing.T) {
		rows := []*inventory.StockRecord{
			row(t, "01", 1, 12, 0, 0),
			row(t, "02", 1, 8, 0, 1),
			row(t, "03", 1, 40, 0, 2),
			row(t, "04", 2, 40, 0, 3),
		}
		l, _ := inventory.NewLedger("SKU-X", rows)
		_, err := l.Reserve(7)
		require.NoError(t, err)
		before := make([]int, len(rows))
		for i, r := range rows {
			before[i] = r.Reserved()
		}

		for _, qty := range []int{1, 9, 17, 53} {
			allocation, err := l.Reserve(qty)
			require.NoError(t, err)
			assertInvariant(t, l)
			require.NoError(t, l.ReleaseAllocation(allocation))
			assertInvariant(t, l)

			for i, r := range rows {
				assert.Equal(t, before[i], r.Reserved(), "qty %d row %d", qty, i)
			}
		}
	})
}

func TestLedger_ReleaseAllocation(t *testing.T) {
	t.Run("restores rows reserved out of FIFO order", func(t *testing.T) {
		older := row(t, "01", 1, 10, 5, 0)
		newer := row(t, "02", 1, 10, 5, 1)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{older, newer})

		allocation, err := l.Reserve(3)
		require.NoError(t, err)
		assert.Equal(t, inventory.Allocation{"A-01-1": 3}, allocation)

		require.NoError(t, l.ReleaseAllocation(allocation))

		assert.Equal(t, 5, older.Reserved())
		assert.Equal(t, 5, newer.Reserved())
	})

	t.Run("boxes lost to a withdrawal are freed newest first", func(t *testing.T) {
		older := row(t, "01", 1, 10, 4, 0)
		newer := row(t, "02", 1, 10, 6, 1)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{older, newer})
		_, err := l.Withdraw(location(t, "01", 1), 8)
		require.NoError(t, err)

		require.NoError(t, l.ReleaseAllocation(inventory.Allocation{"A-01-1": 4}))

		assert.Zero(t, older.Reserved())
		assert.Equal(t, 4, newer.Reserved())
		assertInvariant(t, l)
	})

	t.Run("over release fails", func(t *testing.T) {
		r := row(t, "01", 1, 10, 2, 0)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{r})

		err := l.ReleaseAllocation(inventory.Allocation{"A-01-1": 3})

		require.ErrorIs(t, err, inventory.ErrOverRelease)
		assert.Equal(t, 2, r.Reserved())
	})
}

func TestLedger_ReceiveWithdrawMove(t *testing.T) {
	ground := location(t, "01", 1)
	upper := location(t, "07", 3)

	t.Run("receive opens a row and then accumulates", func(t *testing.T) {
		l, _ := inventory.NewLedger("SKU-X", nil)

		created, err := l.Receive(ground, 12, base)
		require.NoError(t, err)
		again, err := l.Receive(ground, 8, base)
		require.NoError(t, err)

		assert.Same(t, created, again)
		assert.Equal(t, 20, created.Quantity())
		assert.Len(t, l.Changed(), 1)
	})

	t.Run("withdraw clamps reservation and reports empty rows", func(t *testing.T) {
		r := row(t, "01", 1, 10, 8, 0)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{r})

		_, err := l.Withdraw(ground, 4)
		require.NoError(t, err)
		assert.Equal(t, 6, r.Quantity())
		assert.Equal(t, 6, r.Reserved())

		_, err = l.Withdraw(ground, 6)
		require.NoError(t, err)
		assert.True(t, r.IsEmpty())
		assertInvariant(t, l)
	})

	t.Run("withdraw beyond stock fails", func(t *testing.T) {
		r := row(t, "01", 1, 3, 0, 0)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{r})

		_, err := l.Withdraw(ground, 4)
		require.ErrorIs(t, err, inventory.ErrInsufficientStock)

		_, err = l.Withdraw(upper, 1)
		require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	})

	t.Run("move shifts quantity between tiers", func(t *testing.T) {
		src := row(t, "07", 3, 80, 0, 0)
		l, _ := inventory.NewLedger("SKU-X", []*inventory.StockRecord{src})

		require.NoError(t, l.Move(upper, ground, 80, base))

		assert.True(t, src.IsEmpty())
		assert.Equal(t, 80, l.TotalAvailable())
		assert.Len(t, l.Changed(), 2)
	})
}

func TestRestoreStockRecord(t *testing.T) {
	_, err := inventory.RestoreStockRecord(kernel.NewUUID(), "SKU-X", location(t, "01", 1), 5, 6, base)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = inventory.RestoreStockRecord(kernel.NewUUID(), "", location(t, "01", 1), 5, 0, base)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	r, err := inventory.NewStockRecord(kernel.NewUUID(), "SKU-X", location(t, "01", 1), 5, base)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Available())
}
