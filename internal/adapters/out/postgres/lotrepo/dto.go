// Package lotrepo persists order lots and their per-SKU summaries.
package lotrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotDTO is one lot of an order.
type LotDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotNumber    string    `gorm:"type:varchar(64);uniqueIndex"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	PalletNumber int
	Status       int
	BoxCount     int
	TotalWeight  decimal.Decimal `gorm:"type:numeric(12,3)"`
	CompletedAt  *time.Time
	PickerID     *uuid.UUID  `gorm:"type:uuid"`
	SKUs         []LotSKUDTO `gorm:"foreignKey:LotID;constraint:OnDelete:CASCADE"`
}

func (LotDTO) TableName() string {
	return "order_lots"
}

// LotSKUDTO is the per-SKU total materialized when a lot is packed.
type LotSKUDTO struct {
	LotID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU         string    `gorm:"column:sku;type:varchar(64);primaryKey"`
	ProductName string    `gorm:"type:varchar(255)"`
	Boxes       int
	Weight      decimal.Decimal `gorm:"type:numeric(12,3)"`
}

func (LotSKUDTO) TableName() string {
	return "order_lot_skus"
}

func fromDomain(l *lot.Lot) LotDTO {
	dto := LotDTO{
		ID:           l.ID().Bytes(),
		LotNumber:    l.Number(),
		OrderID:      l.OrderID().Bytes(),
		PalletNumber: l.PalletNumber(),
		Status:       int(l.Status()),
		BoxCount:     l.BoxCount(),
		TotalWeight:  l.TotalWeight(),
		CompletedAt:  l.CompletedAt(),
	}
	if picker := l.PickerID(); picker != nil {
		raw := picker.Bytes()
		dto.PickerID = &raw
	}
	for _, s := range l.SKUs() {
		dto.SKUs = append(dto.SKUs, LotSKUDTO{
			LotID:       dto.ID,
			SKU:         s.SKU,
			ProductName: s.ProductName,
			Boxes:       s.Boxes,
			Weight:      s.Weight,
		})
	}
	return dto
}

func toDomain(dto LotDTO) (*lot.Lot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	var pickerID *kernel.UUID
	if dto.PickerID != nil {
		restored, err := kernel.UUIDFromBytes(dto.PickerID[:])
		if err != nil {
			return nil, err
		}
		pickerID = &restored
	}

	summaries := make([]lot.SKUSummary, 0, len(dto.SKUs))
	for _, s := range dto.SKUs {
		summaries = append(summaries, lot.SKUSummary{
			SKU:         s.SKU,
			ProductName: s.ProductName,
			Boxes:       s.Boxes,
			Weight:      s.Weight,
		})
	}

	return lot.RestoreLot(lot.State{
		ID:           id,
		Number:       dto.LotNumber,
		OrderID:      orderID,
		PalletNumber: dto.PalletNumber,
		Status:       lot.Status(dto.Status),
		BoxCount:     dto.BoxCount,
		TotalWeight:  dto.TotalWeight,
		CompletedAt:  dto.CompletedAt,
		PickerID:     pickerID,
		SKUs:         summaries,
	})
}
