// Package catalog models the read-only product master consulted while packing,
// reserving and picking.
package catalog

import (
	"errors"
	"math"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// PackagingKind tells how an order quantity maps to boxes.
type PackagingKind string

const (
	// Piece goods are ordered in pieces and shipped in boxes of Multiplicity pieces.
	Piece PackagingKind = "piece"
	// Weight goods are ordered in kilograms; after adaptation one unit is one box.
	Weight PackagingKind = "weight"
)

func (k PackagingKind) Validate() error {
	switch k {
	case Piece, Weight:
		return nil
	default:
		return errs.NewValueIsInvalidError("packagingKind")
	}
}

var ErrProductIsNotConstructed = errors.New("product must be created via NewProduct or RestoreProduct")

// Dimensions of one box in centimetres.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Volume returns L×W×H in cm³.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// IsComplete reports whether every side is known.
func (d Dimensions) IsComplete() bool {
	return d.Length > 0 && d.Width > 0 && d.Height > 0
}

// Product is a catalog entry keyed by SKU.
type Product struct {
	sku           string
	name          string
	dimensions    Dimensions
	kind          PackagingKind
	multiplicity  int
	temperature   *int
	shelfLifeDays *int

	guard guard.ConstructorGuard
}

// NewProduct creates a catalog entry. Dimensions may be incomplete: such products
// are skipped by the packer rather than rejected here.
func NewProduct(sku, name string, dims Dimensions, kind PackagingKind, multiplicity int) (*Product, error) {
	p := &Product{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setSKU(sku),
		p.setDimensions(dims),
		p.setKind(kind),
		p.setMultiplicity(multiplicity),
	); err != nil {
		return nil, err
	}
	p.name = name

	return p, nil
}

// RestoreProduct rebuilds a product from storage, including optional attributes.
func RestoreProduct(
	sku, name string,
	dims Dimensions,
	kind PackagingKind,
	multiplicity int,
	temperature, shelfLifeDays *int,
) (*Product, error) {
	p, err := NewProduct(sku, name, dims, kind, multiplicity)
	if err != nil {
		return nil, err
	}
	p.temperature = temperature
	p.shelfLifeDays = shelfLifeDays
	return p, nil
}

func (p *Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) SKU() string            { return p.sku }
func (p *Product) Name() string           { return p.name }
func (p *Product) Dimensions() Dimensions { return p.dimensions }
func (p *Product) Kind() PackagingKind    { return p.kind }
func (p *Product) Temperature() *int      { return p.temperature }
func (p *Product) ShelfLifeDays() *int    { return p.shelfLifeDays }
func (p *Product) IsWeightBased() bool    { return p.kind == Weight }
func (p *Product) HasDimensions() bool    { return p.dimensions.IsComplete() }
func (p *Product) UnitVolume() float64    { return p.dimensions.Volume() }

// Multiplicity returns pieces per box. An unset multiplicity counts as 1.
func (p *Product) Multiplicity() int {
	if p.multiplicity <= 0 {
		return 1
	}
	return p.multiplicity
}

// BoxesFor converts an order quantity into boxes.
func (p *Product) BoxesFor(quantity int) int {
	return BoxesFor(quantity, p.IsWeightBased(), p.Multiplicity())
}

// UnitsFor converts boxes back into the ordering unit.
func (p *Product) UnitsFor(boxes int) int {
	if p.IsWeightBased() {
		return boxes
	}
	return boxes * p.Multiplicity()
}

// BoxesFor converts quantity into boxes for goods without a loaded Product.
func BoxesFor(quantity int, weightBased bool, multiplicity int) int {
	if quantity <= 0 {
		return 0
	}
	if weightBased {
		return quantity
	}
	if multiplicity <= 0 {
		multiplicity = 1
	}
	return int(math.Ceil(float64(quantity) / float64(multiplicity)))
}

func (p *Product) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

func (p *Product) setDimensions(d Dimensions) error {
	if d.Length < 0 || d.Width < 0 || d.Height < 0 {
		return errs.NewValueIsInvalidError("dimensions")
	}
	p.dimensions = d
	return nil
}

func (p *Product) setKind(kind PackagingKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	p.kind = kind
	return nil
}

func (p *Product) setMultiplicity(m int) error {
	if m < 0 {
		return errs.NewValueIsOutOfRangeError("multiplicity", m, 0, math.MaxInt32)
	}
	p.multiplicity = m
	return nil
}
