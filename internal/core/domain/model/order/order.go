package order

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrAlreadyClaimed is returned when a different picker already started the order.
	ErrAlreadyClaimed = errors.New("order is already claimed by another picker")
	// ErrCustomerIsRequired is returned for customer orders without a customer.
	ErrCustomerIsRequired = errors.New("customer orders require a customer id")
)

// Order is the aggregate root for a supplier or customer order.
type Order struct {
	id               kernel.UUID
	number           string
	orderType        Type
	customerID       *kernel.UUID
	status           Status
	requiresTransfer bool
	palletsCount     int
	startedBy        *kernel.UUID
	createdAt        time.Time
	items            []*Item

	isConstructed bool
}

// NewOrder creates an order in the Created status.
//
// Parameters:
//   - id: order identifier
//   - number: unique order number, see FormatNumber
//   - orderType: Supplier or Customer
//   - customerID: required for Customer orders, ignored otherwise
//   - items: at least one line item without pallet or lot assignment
//
// Returns:
//   - *Order: the new aggregate
//   - error: joined validation errors
//
// Example:
//
//	number, _ := order.FormatNumber(order.Customer, 42) // "6000000042"
//	item, _ := order.NewItem(kernel.NewUUID(), "SKU-1", "Flour 25kg", 40, decimal.NewFromInt(12))
//	o, err := order.NewOrder(kernel.NewUUID(), number, order.Customer, &customerID, []*order.Item{item})
func NewOrder(
	id kernel.UUID,
	number string,
	orderType Type,
	customerID *kernel.UUID,
	items []*Item,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setType(orderType, customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.HasPallet() || item.LotNumber() != "" {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %s is already assigned to a pallet", item.SKU()))
		}
	}

	return o, nil
}

// State carries persisted order attributes into RestoreOrder.
type State struct {
	ID               kernel.UUID
	Number           string
	Type             Type
	CustomerID       *kernel.UUID
	Status           Status
	RequiresTransfer bool
	PalletsCount     int
	StartedBy        *kernel.UUID
	CreatedAt        time.Time
	Items            []*Item
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setType(s.Type, s.CustomerID),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if s.PalletsCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("palletsCount", s.PalletsCount, 0, math.MaxInt32)
	}
	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = s.Status
	o.requiresTransfer = s.RequiresTransfer
	o.palletsCount = s.PalletsCount
	o.startedBy = s.StartedBy
	o.createdAt = s.CreatedAt
	o.items = slices.Clone(s.Items)

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID          { return o.id }
func (o *Order) Number() string           { return o.number }
func (o *Order) Type() Type               { return o.orderType }
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }
func (o *Order) Status() Status           { return o.status }
func (o *Order) RequiresTransfer() bool   { return o.requiresTransfer }
func (o *Order) PalletsCount() int        { return o.palletsCount }
func (o *Order) StartedBy() *kernel.UUID  { return o.startedBy }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }

// Items returns the line items in their stored order. The slice is a copy; the items are not.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

// ReplaceItems installs the packed item set and the number of pallets it occupies.
func (o *Order) ReplaceItems(items []*Item, palletsCount int) error {
	if o.status != Created {
		return errs.NewStateTransitionError("order", o.status.String(), "repacked")
	}
	if palletsCount < 0 {
		return errs.NewValueIsOutOfRangeError("palletsCount", palletsCount, 0, math.MaxInt32)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = slices.Clone(items)
	o.palletsCount = palletsCount
	return nil
}

// MarkRequiresTransfer flags that part of the order waits for stock relocation.
func (o *Order) MarkRequiresTransfer() {
	o.requiresTransfer = true
}

// IsPalletized reports whether every item carries a pallet number.
func (o *Order) IsPalletized() bool {
	if len(o.items) == 0 {
		return false
	}
	for _, item := range o.items {
		if !item.HasPallet() {
			return false
		}
	}
	return true
}

// PalletNumbers returns the distinct pallet numbers in ascending order.
func (o *Order) PalletNumbers() []int {
	numbers := make([]int, 0)
	for _, item := range o.items {
		if item.HasPallet() && !slices.Contains(numbers, item.PalletNumber()) {
			numbers = append(numbers, item.PalletNumber())
		}
	}
	slices.Sort(numbers)
	return numbers
}

// ItemsOnPallet returns the items packed on the given pallet.
func (o *Order) ItemsOnPallet(palletNumber int) []*Item {
	result := make([]*Item, 0)
	for _, item := range o.items {
		if item.PalletNumber() == palletNumber {
			result = append(result, item)
		}
	}
	return result
}

// ItemsInLot returns the items stamped with the lot number.
func (o *Order) ItemsInLot(lotNumber string) []*Item {
	result := make([]*Item, 0)
	for _, item := range o.items {
		if item.LotNumber() == lotNumber {
			result = append(result, item)
		}
	}
	return result
}

// FindItem looks up the item of a SKU inside a lot.
func (o *Order) FindItem(sku, lotNumber string) (*Item, bool) {
	for _, item := range o.items {
		if item.SKU() == sku && item.LotNumber() == lotNumber {
			return item, true
		}
	}
	return nil, false
}

// StartProcessing moves the order from Created to Processing after packing and reservation.
func (o *Order) StartProcessing() error {
	if !o.IsPalletized() {
		return errs.NewValueIsInvalidErrorWithCause("items", errors.New("order has unpacked items"))
	}

	next, err := o.status.StartProcessing()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Claim records pickerID as the picker assembling the order and moves it to Assembling.
// A repeated claim by the same picker is accepted.
func (o *Order) Claim(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if o.startedBy != nil && !o.startedBy.IsEqual(pickerID) {
		return ErrAlreadyClaimed
	}

	next, err := o.status.StartAssembling()
	if err != nil {
		return err
	}
	o.status = next
	o.startedBy = &pickerID
	return nil
}

// Pack is called once every lot of the order is packed.
func (o *Order) Pack() error {
	next, err := o.status.Pack()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) Complete() error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Cancel moves the order to Cancelled. Reservations must be released by the caller first.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setType(t Type, customerID *kernel.UUID) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t == Customer {
		if customerID == nil {
			return ErrCustomerIsRequired
		}
		if err := customerID.Validate(); err != nil {
			return err
		}
		o.customerID = customerID
	}
	o.orderType = t
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}
