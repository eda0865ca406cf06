package inventory

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

// weightPrecision is the number of decimal places kept for kilograms.
const weightPrecision = 3

var ErrPalletIsNotConstructed = errors.New("Pallet must be created via NewPallet constructor")

// Pallet is a physical pallet received into the warehouse, identified by its SSCC.
// Picking only ever lowers its box count and net weight.
type Pallet struct {
	id            string
	sku           string
	productName   string
	location      kernel.Location
	boxCount      int
	netWeight     decimal.Decimal
	expiryDate    *time.Time
	invoiceNumber string
	receivedAt    time.Time

	isConstructed bool
}

// PalletState carries pallet attributes into NewPallet.
type PalletState struct {
	ID            string
	SKU           string
	ProductName   string
	Location      kernel.Location
	BoxCount      int
	NetWeight     decimal.Decimal
	ExpiryDate    *time.Time
	InvoiceNumber string
	ReceivedAt    time.Time
}

// NewPallet creates a received pallet, or restores one loaded from storage.
func NewPallet(s PalletState) (*Pallet, error) {
	p := &Pallet{isConstructed: true}

	if err := errors.Join(
		p.setID(s.ID),
		p.setSKU(s.SKU),
		p.setLocation(s.Location),
		p.setContents(s.BoxCount, s.NetWeight),
	); err != nil {
		return nil, err
	}

	p.productName = s.ProductName
	p.expiryDate = s.ExpiryDate
	p.invoiceNumber = s.InvoiceNumber
	p.receivedAt = s.ReceivedAt
	return p, nil
}

func (p *Pallet) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPalletIsNotConstructed
	}
	return nil
}

func (p *Pallet) ID() string                 { return p.id }
func (p *Pallet) SKU() string                { return p.sku }
func (p *Pallet) ProductName() string        { return p.productName }
func (p *Pallet) Location() kernel.Location  { return p.location }
func (p *Pallet) BoxCount() int              { return p.boxCount }
func (p *Pallet) NetWeight() decimal.Decimal { return p.netWeight }
func (p *Pallet) ExpiryDate() *time.Time     { return p.expiryDate }
func (p *Pallet) InvoiceNumber() string      { return p.invoiceNumber }
func (p *Pallet) ReceivedAt() time.Time      { return p.receivedAt }
func (p *Pallet) IsEmpty() bool              { return p.boxCount == 0 }

// WeightOf returns the share of net weight carried by boxes, assuming equal boxes.
func (p *Pallet) WeightOf(boxes int) decimal.Decimal {
	if p.boxCount == 0 || boxes <= 0 {
		return decimal.Zero
	}
	if boxes >= p.boxCount {
		return p.netWeight
	}
	return p.netWeight.Mul(decimal.NewFromInt(int64(boxes))).
		Div(decimal.NewFromInt(int64(p.boxCount))).
		Round(weightPrecision)
}

// Pick removes boxes from the pallet and returns the weight taken with them.
func (p *Pallet) Pick(boxes int) (decimal.Decimal, error) {
	if boxes <= 0 || boxes > p.boxCount {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("boxes", boxes, 1, p.boxCount)
	}

	weight := p.WeightOf(boxes)
	p.boxCount -= boxes
	p.netWeight = p.netWeight.Sub(weight)
	if p.netWeight.IsNegative() {
		p.netWeight = decimal.Zero
	}
	return weight, nil
}

// MoveTo relocates the whole pallet.
func (p *Pallet) MoveTo(location kernel.Location) error {
	return p.setLocation(location)
}

// Adjust applies a correction from the receiving workflow.
func (p *Pallet) Adjust(boxCount int, netWeight decimal.Decimal, location kernel.Location) error {
	if err := errors.Join(p.setContents(boxCount, netWeight), p.setLocation(location)); err != nil {
		return err
	}
	return nil
}

// IsAt reports whether the pallet is stored at location.
func (p *Pallet) IsAt(location kernel.Location) bool {
	equal, err := p.location.IsEqual(location)
	return err == nil && equal
}

// ExpiresBefore orders pallets first-expired-first-out. Pallets without an expiry date go last.
func (p *Pallet) ExpiresBefore(other *Pallet) bool {
	switch {
	case p.expiryDate == nil:
		return false
	case other.expiryDate == nil:
		return true
	default:
		return p.expiryDate.Before(*other.expiryDate)
	}
}

func (p *Pallet) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("palletId")
	}
	p.id = id
	return nil
}

func (p *Pallet) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

func (p *Pallet) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = location
	return nil
}

func (p *Pallet) setContents(boxCount int, netWeight decimal.Decimal) error {
	var err error
	if boxCount < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("boxCount", boxCount, 0, math.MaxInt32))
	}
	if netWeight.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("netWeight", fmt.Errorf("%s is negative", netWeight)))
	}
	if err != nil {
		return err
	}
	p.boxCount = boxCount
	p.netWeight = netWeight
	return nil
}
