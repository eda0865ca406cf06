package inventory

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrStockRecordIsNotConstructed = errors.New("StockRecord must be created via NewStockRecord constructor")

// StockRecord is the ledger row for one SKU at one location.
// Invariant: 0 ≤ reserved ≤ quantity.
type StockRecord struct {
	id        kernel.UUID
	sku       string
	location  kernel.Location
	quantity  int
	reserved  int
	createdAt time.Time

	isConstructed bool
}

func NewStockRecord(id kernel.UUID, sku string, location kernel.Location, quantity int, createdAt time.Time) (*StockRecord, error) {
	return RestoreStockRecord(id, sku, location, quantity, 0, createdAt)
}

func RestoreStockRecord(
	id kernel.UUID,
	sku string,
	location kernel.Location,
	quantity, reserved int,
	createdAt time.Time,
) (*StockRecord, error) {
	if err := errors.Join(id.Validate(), location.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sku) == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	if quantity < 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt32)
	}
	if reserved < 0 || reserved > quantity {
		return nil, errs.NewValueIsOutOfRangeError("reserved", reserved, 0, quantity)
	}

	return &StockRecord{
		id:            id,
		sku:           sku,
		location:      location,
		quantity:      quantity,
		reserved:      reserved,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (r *StockRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStockRecordIsNotConstructed
	}
	return nil
}

func (r *StockRecord) ID() kernel.UUID           { return r.id }
func (r *StockRecord) SKU() string               { return r.sku }
func (r *StockRecord) Location() kernel.Location { return r.location }
func (r *StockRecord) Quantity() int             { return r.quantity }
func (r *StockRecord) Reserved() int             { return r.reserved }
func (r *StockRecord) CreatedAt() time.Time      { return r.createdAt }

// Available is the quantity not held by reservations.
func (r *StockRecord) Available() int {
	return r.quantity - r.reserved
}

// IsEmpty reports that the row no longer holds stock and must be deleted.
func (r *StockRecord) IsEmpty() bool {
	return r.quantity <= 0
}

func (r *StockRecord) add(boxes int) {
	r.quantity += boxes
}

// withdraw removes boxes and clamps the reservation to what is left.
func (r *StockRecord) withdraw(boxes int) error {
	if boxes > r.quantity {
		return fmt.Errorf("%w: %d boxes of %s requested at %s, %d on hand",
			ErrInsufficientStock, boxes, r.sku, r.location.Code(), r.quantity)
	}
	r.quantity -= boxes
	r.reserved = min(r.reserved, r.quantity)
	return nil
}

func (r *StockRecord) reserve(boxes int) int {
	taken := min(boxes, r.Available())
	r.reserved += taken
	return taken
}

func (r *StockRecord) release(boxes int) int {
	freed := min(boxes, r.reserved)
	r.reserved -= freed
	return freed
}
