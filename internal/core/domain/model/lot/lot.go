// Package lot models lots: one packed pallet of an order, picked and closed as a unit.
package lot

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFullyPicked is returned when closing a lot with outstanding items.
	ErrNotFullyPicked = errors.New("lot is not fully picked")

	ErrLotIsNotConstructed = errors.New("Lot must be created via NewLot constructor")
)

// SKUSummary is the per-SKU total of a packed lot.
type SKUSummary struct {
	SKU         string
	ProductName string
	Boxes       int
	Weight      decimal.Decimal
}

// Lot groups the items of one order pallet.
type Lot struct {
	id           kernel.UUID
	number       string
	orderID      kernel.UUID
	palletNumber int
	status       Status
	boxCount     int
	totalWeight  decimal.Decimal
	completedAt  *time.Time
	pickerID     *kernel.UUID
	skus         []SKUSummary

	isConstructed bool
}

// Number derives the lot number for pallet palletNumber of an order, e.g.
// LOT-20261019-P2-6000000042.
func Number(date time.Time, palletNumber int, orderNumber string) string {
	return fmt.Sprintf("LOT-%s-P%d-%s", date.Format("20060102"), palletNumber, orderNumber)
}

// NewLot creates a lot in the Wait status.
func NewLot(id, orderID kernel.UUID, number string, palletNumber int) (*Lot, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(number) == "" {
		return nil, errs.NewValueIsRequiredError("lotNumber")
	}
	if palletNumber < 1 {
		return nil, errs.NewValueIsOutOfRangeError("palletNumber", palletNumber, 1, math.MaxInt32)
	}

	return &Lot{
		id:            id,
		number:        number,
		orderID:       orderID,
		palletNumber:  palletNumber,
		status:        Wait,
		totalWeight:   decimal.Zero,
		isConstructed: true,
	}, nil
}

// State carries persisted lot attributes into RestoreLot.
type State struct {
	ID           kernel.UUID
	Number       string
	OrderID      kernel.UUID
	PalletNumber int
	Status       Status
	BoxCount     int
	TotalWeight  decimal.Decimal
	CompletedAt  *time.Time
	PickerID     *kernel.UUID
	SKUs         []SKUSummary
}

func RestoreLot(s State) (*Lot, error) {
	l, err := NewLot(s.ID, s.OrderID, s.Number, s.PalletNumber)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}

	l.status = s.Status
	l.boxCount = s.BoxCount
	l.totalWeight = s.TotalWeight
	l.completedAt = s.CompletedAt
	l.pickerID = s.PickerID
	l.skus = slices.Clone(s.SKUs)
	return l, nil
}

func (l *Lot) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLotIsNotConstructed
	}
	return nil
}

func (l *Lot) ID() kernel.UUID              { return l.id }
func (l *Lot) Number() string               { return l.number }
func (l *Lot) OrderID() kernel.UUID         { return l.orderID }
func (l *Lot) PalletNumber() int            { return l.palletNumber }
func (l *Lot) Status() Status               { return l.status }
func (l *Lot) BoxCount() int                { return l.boxCount }
func (l *Lot) TotalWeight() decimal.Decimal { return l.totalWeight }
func (l *Lot) CompletedAt() *time.Time      { return l.completedAt }
func (l *Lot) PickerID() *kernel.UUID       { return l.pickerID }
func (l *Lot) SKUs() []SKUSummary           { return slices.Clone(l.skus) }
func (l *Lot) IsPacked() bool               { return l.status == Packed }

// Start marks the lot as opened by a picker. Opening a started lot again is allowed.
func (l *Lot) Start(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if l.status == Packed {
		return errs.NewStateTransitionError("lot", l.status.String(), Start.String())
	}

	l.status = Start
	if l.pickerID == nil {
		l.pickerID = &pickerID
	}
	return nil
}

// Close packs the lot and materializes its per-SKU totals.
func (l *Lot) Close(pickerID kernel.UUID, at time.Time, summaries []SKUSummary) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if l.status == Packed {
		return errs.NewStateTransitionError("lot", l.status.String(), Packed.String())
	}

	boxes := 0
	weight := decimal.Zero
	for _, s := range summaries {
		boxes += s.Boxes
		weight = weight.Add(s.Weight)
	}

	l.status = Packed
	l.boxCount = boxes
	l.totalWeight = weight
	l.completedAt = &at
	l.pickerID = &pickerID
	l.skus = slices.Clone(summaries)
	return nil
}
