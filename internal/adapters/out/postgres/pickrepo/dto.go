// Package pickrepo persists the append-only picking audit trail.
package pickrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/locationrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PickRecordDTO is one physical pick from one pallet.
type PickRecordDTO struct {
	ID               int64                    `gorm:"primaryKey;autoIncrement:false"`
	OrderID          uuid.UUID                `gorm:"type:uuid;index"`
	LotNumber        string                   `gorm:"type:varchar(64);index"`
	SKU              string                   `gorm:"column:sku;type:varchar(64)"`
	ProductName      string                   `gorm:"type:varchar(255)"`
	PalletID         string                   `gorm:"type:varchar(32)"`
	Location         locationrepo.LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	RequestedBoxes   int
	PickedBoxCount   int
	CalculatedWeight decimal.Decimal `gorm:"type:numeric(12,3)"`
	IsWeightBased    bool
	Underpicked      bool
	PickerID         uuid.UUID `gorm:"type:uuid"`
	PickedAt         time.Time
}

func (PickRecordDTO) TableName() string {
	return "order_picking_items"
}

func fromDomain(r *picking.Record) PickRecordDTO {
	return PickRecordDTO{
		ID:               r.ID(),
		OrderID:          r.OrderID().Bytes(),
		LotNumber:        r.LotNumber(),
		SKU:              r.SKU(),
		ProductName:      r.ProductName(),
		PalletID:         r.PalletID(),
		Location:         locationrepo.NewLocationDTO(r.Location()),
		RequestedBoxes:   r.RequestedBoxes(),
		PickedBoxCount:   r.PickedBoxes(),
		CalculatedWeight: r.CalculatedWeight(),
		IsWeightBased:    r.IsWeightBased(),
		Underpicked:      r.IsUnderpicked(),
		PickerID:         r.PickerID().Bytes(),
		PickedAt:         r.PickedAt(),
	}
}

func toDomain(dto PickRecordDTO) (*picking.Record, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	pickerID, err := kernel.UUIDFromBytes(dto.PickerID[:])
	if err != nil {
		return nil, err
	}
	location, err := dto.Location.ToDomain()
	if err != nil {
		return nil, err
	}

	return picking.NewRecord(picking.RecordState{
		ID:               dto.ID,
		OrderID:          orderID,
		LotNumber:        dto.LotNumber,
		SKU:              dto.SKU,
		ProductName:      dto.ProductName,
		PalletID:         dto.PalletID,
		Location:         location,
		RequestedBoxes:   dto.RequestedBoxes,
		PickedBoxes:      dto.PickedBoxCount,
		CalculatedWeight: dto.CalculatedWeight,
		WeightBased:      dto.IsWeightBased,
		Underpicked:      dto.Underpicked,
		PickerID:         pickerID,
		PickedAt:         dto.PickedAt,
	})
}
