package services

import (
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// PalletVolume is the loading budget of one pallet in cm³ (120 × 80 × 100).
const PalletVolume = 960_000.0

// SkipReason explains why an order line was left out of packing.
type SkipReason string

const (
	SkipNoCatalogEntry    SkipReason = "no catalog entry"
	SkipOutOfStock        SkipReason = "out of stock"
	SkipMissingDimensions SkipReason = "missing dimensions"
)

// SkippedItem reports an order line that was not packed.
type SkippedItem struct {
	SKU         string
	ProductName string
	Requested   int
	Reason      SkipReason
}

// PackResult describes the pallets built for an order.
type PackResult struct {
	PalletsCount  int
	PalletVolumes []float64
	Clamped       []string
	Skipped       []SkippedItem
}

// PalletPacker distributes order lines over pallets with a greedy first-fit by volume.
//
// Business rules:
//   - quantities are clamped to the boxes available on all tiers, shared by lines of one SKU
//   - piece goods occupy ceil(quantity / multiplicity) boxes, weight goods one box per unit
//   - a box goes onto the first open pallet that still fits at least one box of the SKU,
//     as many boxes as fit; otherwise a new pallet is opened
//   - several SKUs may share a pallet; the result has one item per (SKU, pallet)
//   - lines of one SKU merged onto a pallet sum their original quantities and weight
//     the unit price by the quantity each contributes
//
// Packing an order that is already split is not idempotent and is rejected by the order.
type PalletPacker struct{}

func NewPalletPacker() PalletPacker {
	return PalletPacker{}
}

type openPallet struct {
	number int
	volume float64
	lines  []*packedLine
}

// packedLine is one (SKU, pallet) row. It may collect parts of several order lines.
type packedLine struct {
	sources    []*order.Item
	quantities []int
}

// Pack replaces the order's items with the packed item set.
//
// Parameters:
//   - o: an order in the Created status
//   - products: catalog entries by SKU
//   - availableBoxes: unreserved boxes on all tiers by SKU
//
// Returns:
//   - PackResult: pallet count, per-pallet volume, clamped SKUs and skipped lines
//   - error: validation errors of the order or items
func (p PalletPacker) Pack(
	o *order.Order,
	products map[string]*catalog.Product,
	availableBoxes map[string]int,
) (PackResult, error) {
	if err := o.Validate(); err != nil {
		return PackResult{}, err
	}

	remaining := make(map[string]int, len(availableBoxes))
	for sku, boxes := range availableBoxes {
		remaining[sku] = boxes
	}

	result := PackResult{}
	pallets := make([]*openPallet, 0)

	for _, item := range o.Items() {
		product, ok := products[item.SKU()]
		if !ok {
			result.Skipped = append(result.Skipped, skipped(item, SkipNoCatalogEntry))
			continue
		}
		item.ApplyCatalog(product)

		available := remaining[item.SKU()]
		if available <= 0 {
			result.Skipped = append(result.Skipped, skipped(item, SkipOutOfStock))
			continue
		}
		if item.ClampToBoxes(available) {
			result.Clamped = append(result.Clamped, item.SKU())
		}
		if !product.HasDimensions() {
			result.Skipped = append(result.Skipped, skipped(item, SkipMissingDimensions))
			continue
		}
		remaining[item.SKU()] -= item.BoxCount()

		pallets = p.place(pallets, item, product.UnitVolume())
	}

	items := make([]*order.Item, 0)
	for _, pallet := range pallets {
		result.PalletVolumes = append(result.PalletVolumes, pallet.volume)
		for _, line := range pallet.lines {
			sku := line.sources[0].SKU()
			part, err := order.SplitMerged(kernel.NewUUID(), pallet.number, line.sources, line.quantities)
			if err != nil {
				return PackResult{}, fmt.Errorf("split %s onto pallet %d: %w", sku, pallet.number, err)
			}
			items = append(items, part)
		}
	}
	result.PalletsCount = len(pallets)

	if err := o.ReplaceItems(items, result.PalletsCount); err != nil {
		return PackResult{}, err
	}
	return result, nil
}

func (p PalletPacker) place(pallets []*openPallet, item *order.Item, unitVolume float64) []*openPallet {
	boxesLeft := item.BoxCount()
	quantityLeft := item.Quantity()
	unitsPerBox := 1
	if !item.IsWeightBased() {
		unitsPerBox = item.Multiplicity()
	}

	take := func(pallet *openPallet, boxes int) {
		quantity := min(boxes*unitsPerBox, quantityLeft)
		pallet.volume += float64(boxes) * unitVolume
		pallet.add(item, quantity)
		boxesLeft -= boxes
		quantityLeft -= quantity
	}

	for boxesLeft > 0 {
		placed := false
		for _, pallet := range pallets {
			fit := fitting(PalletVolume-pallet.volume, unitVolume)
			if fit > 0 {
				take(pallet, min(boxesLeft, fit))
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		pallet := &openPallet{number: len(pallets) + 1}
		pallets = append(pallets, pallet)
		// A box larger than a whole pallet still gets a pallet of its own.
		take(pallet, min(boxesLeft, max(fitting(PalletVolume, unitVolume), 1)))
	}
	return pallets
}

func (o *openPallet) add(source *order.Item, quantity int) {
	for _, line := range o.lines {
		if line.sources[0].SKU() != source.SKU() {
			continue
		}
		last := len(line.sources) - 1
		if line.sources[last] == source {
			line.quantities[last] += quantity
		} else {
			line.sources = append(line.sources, source)
			line.quantities = append(line.quantities, quantity)
		}
		return
	}
	o.lines = append(o.lines, &packedLine{sources: []*order.Item{source}, quantities: []int{quantity}})
}

func fitting(freeVolume, unitVolume float64) int {
	if unitVolume <= 0 || freeVolume < unitVolume {
		return 0
	}
	return int(math.Floor(freeVolume / unitVolume))
}

func skipped(item *order.Item, reason SkipReason) SkippedItem {
	return SkippedItem{
		SKU:         item.SKU(),
		ProductName: item.ProductName(),
		Requested:   item.Quantity(),
		Reason:      reason,
	}
}
