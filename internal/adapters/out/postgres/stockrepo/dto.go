// Package stockrepo persists inventory ledger rows.
package stockrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/locationrepo"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StockRecordDTO is one (sku, location) ledger row.
type StockRecordDTO struct {
	ID               uuid.UUID                `gorm:"type:uuid;primaryKey"`
	SKU              string                   `gorm:"column:sku;type:varchar(64);index"`
	Location         locationrepo.LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Quantity         int
	ReservedQuantity int
	CreatedAt        time.Time
}

func (StockRecordDTO) TableName() string {
	return "stock_records"
}

func fromDomain(row *inventory.StockRecord) StockRecordDTO {
	return StockRecordDTO{
		ID:               row.ID().Bytes(),
		SKU:              row.SKU(),
		Location:         locationrepo.NewLocationDTO(row.Location()),
		Quantity:         row.Quantity(),
		ReservedQuantity: row.Reserved(),
		CreatedAt:        row.CreatedAt(),
	}
}

func toDomain(dto StockRecordDTO) (*inventory.StockRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	location, err := dto.Location.ToDomain()
	if err != nil {
		return nil, err
	}

	return inventory.RestoreStockRecord(id, dto.SKU, location, dto.Quantity, dto.ReservedQuantity, dto.CreatedAt)
}
