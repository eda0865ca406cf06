package services

import (
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// WeightAdapter turns kilogram asks of weight goods into box counts using the average box
// weight of the SKU's pallets.
type WeightAdapter struct{}

func NewWeightAdapter() WeightAdapter {
	return WeightAdapter{}
}

// AverageBoxWeight returns total net weight divided by total boxes over the pallets.
// The second result is false when the pallets carry no boxes or no weight.
func (WeightAdapter) AverageBoxWeight(pallets []*inventory.Pallet) (decimal.Decimal, bool) {
	weight := decimal.Zero
	boxes := 0
	for _, p := range pallets {
		weight = weight.Add(p.NetWeight())
		boxes += p.BoxCount()
	}
	if boxes == 0 || !weight.IsPositive() {
		return decimal.Zero, false
	}
	return weight.Div(decimal.NewFromInt(int64(boxes))), true
}

// Adapt converts the item when the product is sold by weight. Items of piece goods and
// weight goods without usable pallet data are left as they are.
func (a WeightAdapter) Adapt(item *order.Item, product *catalog.Product, pallets []*inventory.Pallet) (bool, error) {
	if product == nil || !product.IsWeightBased() {
		return false, nil
	}
	avg, ok := a.AverageBoxWeight(pallets)
	if !ok {
		return false, nil
	}

	kilograms := decimal.NewFromInt(int64(item.Quantity()))
	boxes := kilograms.Div(avg).Ceil().IntPart()
	if err := item.ConvertToBoxes(int(boxes)); err != nil {
		return false, err
	}
	return true, nil
}
