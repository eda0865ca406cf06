package inventory

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInsufficientStock is returned when a reservation or withdrawal exceeds available boxes.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOverRelease is returned when releasing more boxes than are reserved.
	ErrOverRelease = errors.New("release exceeds reserved quantity")
)

// Ledger operates on all ledger rows of one SKU. Reservations fill rows oldest first (FIFO).
//
// Reservations are held only against ground-tier rows: stock in upper tiers cannot be picked
// until it is relocated, so it only counts towards TotalAvailableAllLevels.
//
// The ledger records which rows it touched; the caller persists Changed rows and deletes
// the empty ones.
type Ledger struct {
	sku     string
	rows    []*StockRecord
	changed map[kernel.UUID]*StockRecord
}

// NewLedger wraps the rows of sku. Rows of other SKUs are rejected.
func NewLedger(sku string, rows []*StockRecord) (*Ledger, error) {
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, err
		}
		if row.SKU() != sku {
			return nil, errs.NewValueIsInvalidErrorWithCause("rows",
				fmt.Errorf("row %s belongs to %s, not %s", row.ID(), row.SKU(), sku))
		}
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b *StockRecord) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})

	return &Ledger{
		sku:     sku,
		rows:    sorted,
		changed: make(map[kernel.UUID]*StockRecord),
	}, nil
}

func (l *Ledger) SKU() string {
	return l.sku
}

// Rows returns the rows in FIFO order.
func (l *Ledger) Rows() []*StockRecord {
	return slices.Clone(l.rows)
}

// Changed returns the rows modified since the ledger was loaded, in FIFO order.
func (l *Ledger) Changed() []*StockRecord {
	result := make([]*StockRecord, 0, len(l.changed))
	for _, row := range l.rows {
		if _, ok := l.changed[row.ID()]; ok {
			result = append(result, row)
		}
	}
	return result
}

// TotalAvailable sums unreserved boxes at the ground (picking) tier.
func (l *Ledger) TotalAvailable() int {
	total := 0
	for _, row := range l.rows {
		if row.Location().IsGroundTier() {
			total += row.Available()
		}
	}
	return total
}

// TotalAvailableAllLevels sums unreserved boxes across every tier.
func (l *Ledger) TotalAvailableAllLevels() int {
	total := 0
	for _, row := range l.rows {
		total += row.Available()
	}
	return total
}

// TotalReserved sums reserved boxes across every row.
func (l *Ledger) TotalReserved() int {
	total := 0
	for _, row := range l.rows {
		total += row.Reserved()
	}
	return total
}

// Reserve holds boxes against ground-tier rows, oldest row first, and returns the rows used.
func (l *Ledger) Reserve(boxes int) (Allocation, error) {
	if boxes < 0 {
		return nil, errs.NewValueIsOutOfRangeError("boxes", boxes, 0, math.MaxInt32)
	}
	if available := l.TotalAvailable(); available < boxes {
		return nil, fmt.Errorf("%w: %s needs %d boxes, %d available at picking tier",
			ErrInsufficientStock, l.sku, boxes, available)
	}

	allocation := make(Allocation)
	remaining := boxes
	for _, row := range l.rows {
		if remaining == 0 {
			break
		}
		if !row.Location().IsGroundTier() {
			continue
		}
		if taken := row.reserve(remaining); taken > 0 {
			remaining -= taken
			allocation[row.Location().Code()] += taken
			l.markChanged(row)
		}
	}
	return allocation, nil
}

// ReleaseAllocation frees the boxes of allocation on the rows they were reserved on. Boxes
// whose row no longer holds them, because a withdrawal clamped its reservation, are freed
// newest row first.
func (l *Ledger) ReleaseAllocation(allocation Allocation) error {
	total := allocation.Total()
	if reserved := l.TotalReserved(); reserved < total {
		return fmt.Errorf("%w: %s releasing %d boxes, %d reserved", ErrOverRelease, l.sku, total, reserved)
	}

	leftover := 0
	for _, code := range slices.Sorted(maps.Keys(allocation)) {
		boxes := allocation[code]
		row, ok := l.rowByCode(code)
		if !ok {
			leftover += boxes
			continue
		}
		freed := row.release(boxes)
		if freed > 0 {
			l.markChanged(row)
		}
		leftover += boxes - freed
	}
	if leftover == 0 {
		return nil
	}
	return l.Release(leftover)
}

// Release frees reserved boxes without regard to where they were taken, newest row first.
func (l *Ledger) Release(boxes int) error {
	if boxes < 0 {
		return errs.NewValueIsOutOfRangeError("boxes", boxes, 0, math.MaxInt32)
	}
	if reserved := l.TotalReserved(); reserved < boxes {
		return fmt.Errorf("%w: %s releasing %d boxes, %d reserved", ErrOverRelease, l.sku, boxes, reserved)
	}

	remaining := boxes
	for _, row := range slices.Backward(l.rows) {
		if remaining == 0 {
			break
		}
		if freed := row.release(remaining); freed > 0 {
			remaining -= freed
			l.markChanged(row)
		}
	}
	return nil
}

// RowAt returns the row stored at location.
func (l *Ledger) RowAt(location kernel.Location) (*StockRecord, bool) {
	for _, row := range l.rows {
		if equal, _ := row.Location().IsEqual(location); equal {
			return row, true
		}
	}
	return nil, false
}

func (l *Ledger) rowByCode(code string) (*StockRecord, bool) {
	for _, row := range l.rows {
		if row.Location().Code() == code {
			return row, true
		}
	}
	return nil, false
}

// Receive adds boxes at location, opening a new row when the SKU has none there.
func (l *Ledger) Receive(location kernel.Location, boxes int, now time.Time) (*StockRecord, error) {
	if boxes < 0 {
		return nil, errs.NewValueIsOutOfRangeError("boxes", boxes, 0, math.MaxInt32)
	}

	row, ok := l.RowAt(location)
	if !ok {
		created, err := NewStockRecord(kernel.NewUUID(), l.sku, location, 0, now)
		if err != nil {
			return nil, err
		}
		l.rows = append(l.rows, created)
		row = created
	}

	row.add(boxes)
	l.markChanged(row)
	return row, nil
}

// Withdraw removes boxes from the row at location. The row's reservation is clamped to the
// remaining quantity; a row left empty is reported by IsEmpty and must be deleted.
func (l *Ledger) Withdraw(location kernel.Location, boxes int) (*StockRecord, error) {
	if boxes < 0 {
		return nil, errs.NewValueIsOutOfRangeError("boxes", boxes, 0, math.MaxInt32)
	}

	row, ok := l.RowAt(location)
	if !ok {
		return nil, fmt.Errorf("%w: no %s stock at %s", ErrInsufficientStock, l.sku, location.Code())
	}
	if err := row.withdraw(boxes); err != nil {
		return nil, err
	}

	l.markChanged(row)
	return row, nil
}

// Move transfers boxes between two locations, keeping the moved stock unreserved.
func (l *Ledger) Move(from, to kernel.Location, boxes int, now time.Time) error {
	if _, err := l.Withdraw(from, boxes); err != nil {
		return err
	}
	_, err := l.Receive(to, boxes, now)
	return err
}

func (l *Ledger) markChanged(row *StockRecord) {
	l.changed[row.ID()] = row
}
