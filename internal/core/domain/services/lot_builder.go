package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/order"
)

var ErrOrderIsNotPalletized = errors.New("order items are not packed onto pallets")

// LotBuilder creates one lot per pallet of a packed order and stamps the lot number on the
// pallet's items.
type LotBuilder struct{}

func NewLotBuilder() LotBuilder {
	return LotBuilder{}
}

func (LotBuilder) Build(o *order.Order, date time.Time) ([]*lot.Lot, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.IsPalletized() {
		return nil, ErrOrderIsNotPalletized
	}

	lots := make([]*lot.Lot, 0, o.PalletsCount())
	for _, palletNumber := range o.PalletNumbers() {
		number := lot.Number(date, palletNumber, o.Number())
		l, err := lot.NewLot(kernel.NewUUID(), o.ID(), number, palletNumber)
		if err != nil {
			return nil, err
		}
		for _, item := range o.ItemsOnPallet(palletNumber) {
			if err := item.AssignLot(number); err != nil {
				return nil, err
			}
		}
		lots = append(lots, l)
	}
	return lots, nil
}
