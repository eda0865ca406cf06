// Package palletrepo persists received pallet records.
package palletrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/locationrepo"
	"fulfillment/internal/core/domain/model/inventory"

	"github.com/shopspring/decimal"
)

// PalletDTO is a received pallet identified by its SSCC.
type PalletDTO struct {
	ID            string                   `gorm:"type:varchar(32);primaryKey"`
	SKU           string                   `gorm:"column:sku;type:varchar(64);index"`
	ProductName   string                   `gorm:"type:varchar(255)"`
	Location      locationrepo.LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	BoxCount      int
	NetWeight     decimal.Decimal `gorm:"type:numeric(12,3)"`
	ExpiryDate    *time.Time
	InvoiceNumber string `gorm:"type:varchar(64)"`
	ReceivedAt    time.Time
}

func (PalletDTO) TableName() string {
	return "pallets"
}

func fromDomain(p *inventory.Pallet) PalletDTO {
	return PalletDTO{
		ID:            p.ID(),
		SKU:           p.SKU(),
		ProductName:   p.ProductName(),
		Location:      locationrepo.NewLocationDTO(p.Location()),
		BoxCount:      p.BoxCount(),
		NetWeight:     p.NetWeight(),
		ExpiryDate:    p.ExpiryDate(),
		InvoiceNumber: p.InvoiceNumber(),
		ReceivedAt:    p.ReceivedAt(),
	}
}

func toDomain(dto PalletDTO) (*inventory.Pallet, error) {
	location, err := dto.Location.ToDomain()
	if err != nil {
		return nil, err
	}

	return inventory.NewPallet(inventory.PalletState{
		ID:            dto.ID,
		SKU:           dto.SKU,
		ProductName:   dto.ProductName,
		Location:      location,
		BoxCount:      dto.BoxCount,
		NetWeight:     dto.NetWeight,
		ExpiryDate:    dto.ExpiryDate,
		InvoiceNumber: dto.InvoiceNumber,
		ReceivedAt:    dto.ReceivedAt,
	})
}
