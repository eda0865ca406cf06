package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an order line. Before processing there is one item per requested SKU; after
// packing there is one item per (SKU, pallet).
//
// Quantity is expressed in the ordering unit: pieces for piece goods, kilograms for weight
// goods until they are converted to boxes. ReservedQuantity is always in boxes.
type Item struct {
	id                kernel.UUID
	sku               string
	productName       string
	quantity          int
	originalQuantity  int
	reservedQuantity  int
	reservedAt        inventory.Allocation
	reservationStatus ReservationStatus
	palletNumber      int
	lotNumber         string
	dimensions        catalog.Dimensions
	multiplicity      int
	weightBased       bool
	unitPrice         decimal.Decimal

	isConstructed bool
}

// NewItem creates an order line as entered by order entry. Pallet and lot are left unassigned.
func NewItem(id kernel.UUID, sku, productName string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	item := &Item{
		reservationStatus: Unreserved,
		multiplicity:      1,
		isConstructed:     true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setSKU(sku),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}
	item.productName = productName
	item.originalQuantity = quantity

	return item, nil
}

// ItemState carries persisted item attributes into RestoreItem.
type ItemState struct {
	ID                kernel.UUID
	SKU               string
	ProductName       string
	Quantity          int
	OriginalQuantity  int
	ReservedQuantity  int
	ReservedAt        inventory.Allocation
	ReservationStatus ReservationStatus
	PalletNumber      int
	LotNumber         string
	Dimensions        catalog.Dimensions
	Multiplicity      int
	WeightBased       bool
	UnitPrice         decimal.Decimal
}

// RestoreItem rebuilds an item loaded from storage.
func RestoreItem(s ItemState) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(s.ID),
		item.setSKU(s.SKU),
		item.setUnitPrice(s.UnitPrice),
	); err != nil {
		return nil, err
	}
	if s.Quantity < 0 || s.ReservedQuantity < 0 || s.PalletNumber < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("item",
			fmt.Errorf("negative counters: quantity=%d reserved=%d pallet=%d", s.Quantity, s.ReservedQuantity, s.PalletNumber))
	}

	item.productName = s.ProductName
	item.quantity = s.Quantity
	item.originalQuantity = s.OriginalQuantity
	if item.originalQuantity == 0 {
		item.originalQuantity = s.Quantity
	}
	if s.ReservedAt.Total() != s.ReservedQuantity {
		return nil, errs.NewValueIsInvalidErrorWithCause("reservedAt",
			fmt.Errorf("locations hold %d boxes, item reserves %d", s.ReservedAt.Total(), s.ReservedQuantity))
	}
	item.reservedQuantity = s.ReservedQuantity
	item.reservedAt = s.ReservedAt.Clone()
	item.reservationStatus = s.ReservationStatus
	if item.reservationStatus == "" {
		item.reservationStatus = Unreserved
	}
	item.palletNumber = s.PalletNumber
	item.lotNumber = s.LotNumber
	item.dimensions = s.Dimensions
	item.multiplicity = s.Multiplicity
	item.weightBased = s.WeightBased

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID                      { return i.id }
func (i *Item) SKU() string                          { return i.sku }
func (i *Item) ProductName() string                  { return i.productName }
func (i *Item) Quantity() int                        { return i.quantity }
func (i *Item) OriginalQuantity() int                { return i.originalQuantity }
func (i *Item) ReservedQuantity() int                { return i.reservedQuantity }
func (i *Item) ReservationStatus() ReservationStatus { return i.reservationStatus }
func (i *Item) PalletNumber() int                    { return i.palletNumber }
func (i *Item) LotNumber() string                    { return i.lotNumber }
func (i *Item) Dimensions() catalog.Dimensions       { return i.dimensions }
func (i *Item) IsWeightBased() bool                  { return i.weightBased }
func (i *Item) UnitPrice() decimal.Decimal           { return i.unitPrice }

// ReservedAt returns the ledger locations holding the item's reservation.
func (i *Item) ReservedAt() inventory.Allocation {
	return i.reservedAt.Clone()
}

// Multiplicity returns pieces per box, never less than 1.
func (i *Item) Multiplicity() int {
	if i.multiplicity <= 0 {
		return 1
	}
	return i.multiplicity
}

// BoxCount is the number of boxes the current quantity occupies.
func (i *Item) BoxCount() int {
	return catalog.BoxesFor(i.quantity, i.weightBased, i.Multiplicity())
}

// HasPallet reports whether packing assigned the item to a pallet.
func (i *Item) HasPallet() bool {
	return i.palletNumber > 0
}

// ApplyCatalog caches the product attributes used by packing and picking.
func (i *Item) ApplyCatalog(p *catalog.Product) {
	i.dimensions = p.Dimensions()
	i.multiplicity = p.Multiplicity()
	i.weightBased = i.weightBased || p.IsWeightBased()
	if i.productName == "" {
		i.productName = p.Name()
	}
}

// ConvertToBoxes switches a weight item from kilograms to an estimated box count.
// The kilogram ask stays in OriginalQuantity.
func (i *Item) ConvertToBoxes(boxes int) error {
	if boxes < 0 {
		return errs.NewValueIsOutOfRangeError("boxes", boxes, 0, math.MaxInt32)
	}
	i.quantity = boxes
	i.weightBased = true
	return nil
}

// ClampToBoxes lowers the quantity so it does not need more than maxBoxes boxes.
// It returns true when the quantity changed.
func (i *Item) ClampToBoxes(maxBoxes int) bool {
	if maxBoxes < 0 {
		maxBoxes = 0
	}
	if i.BoxCount() <= maxBoxes {
		return false
	}

	if i.weightBased {
		i.quantity = maxBoxes
	} else {
		i.quantity = maxBoxes * i.Multiplicity()
	}
	return true
}

// Split creates the item holding part of this line on one pallet. The split row keeps the
// catalog cache and the original ask of its source line.
func (i *Item) Split(id kernel.UUID, palletNumber int, quantity int) (*Item, error) {
	if palletNumber < 1 {
		return nil, errs.NewValueIsOutOfRangeError("palletNumber", palletNumber, 1, math.MaxInt32)
	}

	part, err := NewItem(id, i.sku, i.productName, quantity, i.unitPrice)
	if err != nil {
		return nil, err
	}
	part.originalQuantity = i.originalQuantity
	part.palletNumber = palletNumber
	part.dimensions = i.dimensions
	part.multiplicity = i.multiplicity
	part.weightBased = i.weightBased

	return part, nil
}

// SplitMerged builds one pallet row from parts of several lines of the same SKU. The row
// carries the summed original quantity and the unit price weighted by each part.
func SplitMerged(id kernel.UUID, palletNumber int, sources []*Item, quantities []int) (*Item, error) {
	if len(sources) == 0 || len(sources) != len(quantities) {
		return nil, errs.NewValueIsInvalidErrorWithCause("sources", errors.New("every source needs one quantity"))
	}

	total, original := 0, 0
	value := decimal.Zero
	for n, source := range sources {
		if source.sku != sources[0].sku {
			return nil, errs.NewValueIsInvalidErrorWithCause("sources", fmt.Errorf("%s and %s differ", sources[0].sku, source.sku))
		}
		total += quantities[n]
		original += source.originalQuantity
		value = value.Add(source.unitPrice.Mul(decimal.NewFromInt(int64(quantities[n]))))
	}

	part, err := sources[0].Split(id, palletNumber, total)
	if err != nil {
		return nil, err
	}
	part.originalQuantity = original
	part.unitPrice = value.Div(decimal.NewFromInt(int64(total))).Round(2)
	return part, nil
}

// Reserve records the boxes reserved for this item at the picking tier and the rows
// holding them.
func (i *Item) Reserve(at inventory.Allocation) error {
	boxes := at.Total()
	if boxes > i.BoxCount() {
		return errs.NewValueIsOutOfRangeError("reservedQuantity", boxes, 0, i.BoxCount())
	}

	i.reservedQuantity = boxes
	i.reservedAt = at.Clone()
	switch {
	case boxes == 0:
		i.reservationStatus = Unreserved
	case boxes < i.BoxCount():
		i.reservationStatus = Partial
	default:
		i.reservationStatus = Full
	}
	return nil
}

// ConsumeReservation takes up to boxes from the reservation when they are physically picked,
// drawing first on the locations picked from, and returns the consumed part.
func (i *Item) ConsumeReservation(boxes int, pickedAt ...string) inventory.Allocation {
	consumed := i.reservedAt.Take(boxes, pickedAt...)
	i.reservedQuantity -= consumed.Total()
	return consumed
}

// ReleaseReservation drops the remaining reservation and returns the released part.
func (i *Item) ReleaseReservation() inventory.Allocation {
	released := i.reservedAt
	i.reservedAt = nil
	i.reservedQuantity = 0
	i.reservationStatus = Unreserved
	return released.Clone()
}

// AssignLot stamps the lot number derived for the item's pallet.
func (i *Item) AssignLot(lotNumber string) error {
	if strings.TrimSpace(lotNumber) == "" {
		return errs.NewValueIsRequiredError("lotNumber")
	}
	if !i.HasPallet() {
		return errs.NewValueIsInvalidErrorWithCause("lotNumber", errors.New("item has no pallet"))
	}
	i.lotNumber = lotNumber
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", price))
	}
	i.unitPrice = price
	return nil
}
