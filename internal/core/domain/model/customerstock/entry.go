// Package customerstock keeps the running stock shipped to each customer, per SKU.
package customerstock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Contribution is what one completed order adds to a customer's stock of a SKU.
type Contribution struct {
	SKU         string
	ProductName string
	Kind        catalog.PackagingKind
	Units       int
	Kilograms   decimal.Decimal
}

// Entry is the running total of a SKU delivered to a customer. Weight goods accumulate
// kilograms, piece goods accumulate pieces.
type Entry struct {
	customerID  kernel.UUID
	sku         string
	productName string
	kind        catalog.PackagingKind
	units       int
	kilograms   decimal.Decimal
	updatedAt   time.Time

	isConstructed bool
}

func NewEntry(customerID kernel.UUID, sku, productName string, kind catalog.PackagingKind) (*Entry, error) {
	return RestoreEntry(customerID, sku, productName, kind, 0, decimal.Zero, time.Time{})
}

func RestoreEntry(
	customerID kernel.UUID,
	sku, productName string,
	kind catalog.PackagingKind,
	units int,
	kilograms decimal.Decimal,
	updatedAt time.Time,
) (*Entry, error) {
	if err := errors.Join(customerID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sku) == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	if units < 0 || kilograms.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("units=%d kilograms=%s", units, kilograms))
	}

	return &Entry{
		customerID:    customerID,
		sku:           sku,
		productName:   productName,
		kind:          kind,
		units:         units,
		kilograms:     kilograms,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) CustomerID() kernel.UUID     { return e.customerID }
func (e *Entry) SKU() string                 { return e.sku }
func (e *Entry) ProductName() string         { return e.productName }
func (e *Entry) Kind() catalog.PackagingKind { return e.kind }
func (e *Entry) Units() int                  { return e.units }
func (e *Entry) Kilograms() decimal.Decimal  { return e.kilograms }
func (e *Entry) UpdatedAt() time.Time        { return e.updatedAt }

// Apply adds a contribution of the same SKU.
func (e *Entry) Apply(c Contribution, at time.Time) error {
	if c.SKU != e.sku {
		return errs.NewValueIsInvalidErrorWithCause("sku", fmt.Errorf("%s does not match %s", c.SKU, e.sku))
	}

	switch e.kind {
	case catalog.Weight:
		e.kilograms = e.kilograms.Add(c.Kilograms)
	default:
		e.units += c.Units
	}
	if c.ProductName != "" {
		e.productName = c.ProductName
	}
	e.updatedAt = at
	return nil
}
