// Package picking holds the audit trail of physical picks and the errors the picking flow
// reports to pickers.
package picking

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransferPending is returned while an unconfirmed transfer exists for the SKU.
	ErrTransferPending = errors.New("transfer pending for sku")
	// ErrRequiresTransfer is returned when the picking tier cannot cover the request.
	ErrRequiresTransfer = errors.New("stock requires transfer to picking tier")
	// ErrNothingAvailable is returned when no box could be picked.
	ErrNothingAvailable = errors.New("nothing available to pick")

	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")
)

// RequiresTransferError carries the shortfall of a picking request.
type RequiresTransferError struct {
	SKU              string
	Available        int
	Required         int
	TransfersCreated int
}

func (e *RequiresTransferError) Error() string {
	return fmt.Sprintf("%s: %s has %d of %d boxes at picking tier, %d transfer(s) created",
		ErrRequiresTransfer, e.SKU, e.Available, e.Required, e.TransfersCreated)
}

func (e *RequiresTransferError) Unwrap() error {
	return ErrRequiresTransfer
}

// Record is one physical pick of boxes from one pallet. Records are never updated.
type Record struct {
	id               int64
	orderID          kernel.UUID
	lotNumber        string
	sku              string
	productName      string
	palletID         string
	location         kernel.Location
	requestedBoxes   int
	pickedBoxes      int
	calculatedWeight decimal.Decimal
	weightBased      bool
	underpicked      bool
	pickerID         kernel.UUID
	pickedAt         time.Time

	isConstructed bool
}

// RecordState carries the attributes of a pick into NewRecord.
type RecordState struct {
	ID               int64
	OrderID          kernel.UUID
	LotNumber        string
	SKU              string
	ProductName      string
	PalletID         string
	Location         kernel.Location
	RequestedBoxes   int
	PickedBoxes      int
	CalculatedWeight decimal.Decimal
	WeightBased      bool
	Underpicked      bool
	PickerID         kernel.UUID
	PickedAt         time.Time
}

func NewRecord(s RecordState) (*Record, error) {
	if err := errors.Join(s.OrderID.Validate(), s.PickerID.Validate(), s.Location.Validate()); err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	for name, v := range map[string]string{"lotNumber": s.LotNumber, "sku": s.SKU, "palletId": s.PalletID} {
		if strings.TrimSpace(v) == "" {
			return nil, errs.NewValueIsRequiredError(name)
		}
	}
	if s.PickedBoxes <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("pickedBoxes", s.PickedBoxes, 1, math.MaxInt32)
	}
	if s.CalculatedWeight.IsNegative() {
		return nil, errs.NewValueIsInvalidError("calculatedWeight")
	}

	return &Record{
		id:               s.ID,
		orderID:          s.OrderID,
		lotNumber:        s.LotNumber,
		sku:              s.SKU,
		productName:      s.ProductName,
		palletID:         s.PalletID,
		location:         s.Location,
		requestedBoxes:   s.RequestedBoxes,
		pickedBoxes:      s.PickedBoxes,
		calculatedWeight: s.CalculatedWeight,
		weightBased:      s.WeightBased,
		underpicked:      s.Underpicked,
		pickerID:         s.PickerID,
		pickedAt:         s.PickedAt,
		isConstructed:    true,
	}, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() int64                         { return r.id }
func (r *Record) OrderID() kernel.UUID              { return r.orderID }
func (r *Record) LotNumber() string                 { return r.lotNumber }
func (r *Record) SKU() string                       { return r.sku }
func (r *Record) ProductName() string               { return r.productName }
func (r *Record) PalletID() string                  { return r.palletID }
func (r *Record) Location() kernel.Location         { return r.location }
func (r *Record) RequestedBoxes() int               { return r.requestedBoxes }
func (r *Record) PickedBoxes() int                  { return r.pickedBoxes }
func (r *Record) CalculatedWeight() decimal.Decimal { return r.calculatedWeight }
func (r *Record) IsWeightBased() bool               { return r.weightBased }
func (r *Record) IsUnderpicked() bool               { return r.underpicked }
func (r *Record) PickerID() kernel.UUID             { return r.pickerID }
func (r *Record) PickedAt() time.Time               { return r.pickedAt }

// PickedBySKU sums picked boxes per SKU.
func PickedBySKU(records []*Record) map[string]int {
	totals := make(map[string]int)
	for _, r := range records {
		totals[r.SKU()] += r.PickedBoxes()
	}
	return totals
}
