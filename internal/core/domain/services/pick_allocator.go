package services

import (
	"cmp"
	"slices"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/customerstock"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/shopspring/decimal"
)

// PickLine is the part of a pick taken from one pallet.
type PickLine struct {
	Pallet *inventory.Pallet
	Boxes  int
	Weight decimal.Decimal
}

// PickPlan is the outcome of allocating a pick request over ground-tier pallets.
type PickPlan struct {
	Lines       []PickLine
	Requested   int
	Picked      int
	Underpicked bool
}

// PickAllocator takes boxes from ground-tier pallets in first-expired-first-out order and
// decides when a lot is fully picked.
type PickAllocator struct{}

func NewPickAllocator() PickAllocator {
	return PickAllocator{}
}

// Allocate removes up to requestedBoxes boxes from the pallets. Pallets are mutated.
// It returns picking.ErrNothingAvailable when not a single box could be taken.
func (PickAllocator) Allocate(requestedBoxes int, pallets []*inventory.Pallet) (PickPlan, error) {
	plan := PickPlan{Requested: requestedBoxes, Lines: make([]PickLine, 0)}

	ordered := make([]*inventory.Pallet, 0, len(pallets))
	for _, p := range pallets {
		if p.Location().IsGroundTier() && !p.IsEmpty() {
			ordered = append(ordered, p)
		}
	}
	slices.SortStableFunc(ordered, func(a, b *inventory.Pallet) int {
		switch {
		case a.ExpiresBefore(b):
			return -1
		case b.ExpiresBefore(a):
			return 1
		}
		return cmp.Compare(a.ReceivedAt().UnixNano(), b.ReceivedAt().UnixNano())
	})

	for _, p := range ordered {
		left := requestedBoxes - plan.Picked
		if left <= 0 {
			break
		}
		boxes := min(left, p.BoxCount())
		weight, err := p.Pick(boxes)
		if err != nil {
			return PickPlan{}, err
		}
		plan.Lines = append(plan.Lines, PickLine{Pallet: p, Boxes: boxes, Weight: weight})
		plan.Picked += boxes
	}

	if plan.Picked == 0 {
		return PickPlan{}, picking.ErrNothingAvailable
	}
	plan.Underpicked = plan.Picked < requestedBoxes
	return plan, nil
}

// LotIsComplete reports whether every item of the lot has at least its box count picked.
func (PickAllocator) LotIsComplete(items []*order.Item, records []*picking.Record) bool {
	if len(items) == 0 {
		return false
	}
	picked := picking.PickedBySKU(records)
	for _, item := range items {
		if picked[item.SKU()] < item.BoxCount() {
			return false
		}
	}
	return true
}

// Summarize folds the lot's pick records into per-SKU totals ordered by SKU.
func (PickAllocator) Summarize(records []*picking.Record) []lot.SKUSummary {
	bySKU := make(map[string]*lot.SKUSummary)
	for _, r := range records {
		s, ok := bySKU[r.SKU()]
		if !ok {
			s = &lot.SKUSummary{SKU: r.SKU(), ProductName: r.ProductName(), Weight: decimal.Zero}
			bySKU[r.SKU()] = s
		}
		s.Boxes += r.PickedBoxes()
		s.Weight = s.Weight.Add(r.CalculatedWeight())
	}

	summaries := make([]lot.SKUSummary, 0, len(bySKU))
	for _, s := range bySKU {
		summaries = append(summaries, *s)
	}
	slices.SortFunc(summaries, func(a, b lot.SKUSummary) int {
		return cmp.Compare(a.SKU, b.SKU)
	})
	return summaries
}

// CustomerContributions converts the pick records of a completed customer order into the
// stock the customer now holds. Weight goods add kilograms; piece goods add pieces.
func (PickAllocator) CustomerContributions(
	records []*picking.Record,
	products map[string]*catalog.Product,
) []customerstock.Contribution {
	bySKU := make(map[string]*customerstock.Contribution)
	keys := make([]string, 0)

	for _, r := range records {
		c, ok := bySKU[r.SKU()]
		if !ok {
			kind := catalog.Piece
			if r.IsWeightBased() {
				kind = catalog.Weight
			}
			if p, found := products[r.SKU()]; found {
				kind = p.Kind()
			}
			c = &customerstock.Contribution{SKU: r.SKU(), ProductName: r.ProductName(), Kind: kind, Kilograms: decimal.Zero}
			bySKU[r.SKU()] = c
			keys = append(keys, r.SKU())
		}

		if c.Kind == catalog.Weight {
			c.Units += r.PickedBoxes()
			c.Kilograms = c.Kilograms.Add(r.CalculatedWeight())
			continue
		}
		multiplicity := 1
		if p, found := products[r.SKU()]; found {
			multiplicity = p.Multiplicity()
		}
		c.Units += r.PickedBoxes() * multiplicity
	}

	slices.Sort(keys)
	result := make([]customerstock.Contribution, 0, len(keys))
	for _, sku := range keys {
		result = append(result, *bySKU[sku])
	}
	return result
}
