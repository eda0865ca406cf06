// Package transferrepo persists pending transfer requests and the history of confirmed moves.
package transferrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/locationrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/transfer"

	"github.com/google/uuid"
)

// TransferRequestDTO is a request to move a pallet down to the picking tier.
type TransferRequestDTO struct {
	ID          uuid.UUID                `gorm:"type:uuid;primaryKey"`
	SKU         string                   `gorm:"column:sku;type:varchar(64)"`
	PalletID    string                   `gorm:"type:varchar(32)"`
	From        locationrepo.LocationDTO `gorm:"embedded;embeddedPrefix:from_"`
	To          locationrepo.LocationDTO `gorm:"embedded;embeddedPrefix:to_"`
	BoxCount    int
	Confirmed   bool
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}

func (TransferRequestDTO) TableName() string {
	return "transfer_requests"
}

// InventoryTransferDTO is the append-only history row of a confirmed move.
type InventoryTransferDTO struct {
	ID       int64                    `gorm:"primaryKey;autoIncrement:false"`
	SKU      string                   `gorm:"column:sku;type:varchar(64)"`
	PalletID string                   `gorm:"type:varchar(32)"`
	From     locationrepo.LocationDTO `gorm:"embedded;embeddedPrefix:from_"`
	To       locationrepo.LocationDTO `gorm:"embedded;embeddedPrefix:to_"`
	BoxCount int
	MovedAt  time.Time
}

func (InventoryTransferDTO) TableName() string {
	return "inventory_transfers"
}

func fromDomain(r *transfer.Request) TransferRequestDTO {
	return TransferRequestDTO{
		ID:          r.ID().Bytes(),
		SKU:         r.SKU(),
		PalletID:    r.PalletID(),
		From:        locationrepo.NewLocationDTO(r.From()),
		To:          locationrepo.NewLocationDTO(r.To()),
		BoxCount:    r.BoxCount(),
		Confirmed:   r.IsConfirmed(),
		CreatedAt:   r.CreatedAt(),
		ConfirmedAt: r.ConfirmedAt(),
	}
}

func toDomain(dto TransferRequestDTO) (*transfer.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	from, err := dto.From.ToDomain()
	if err != nil {
		return nil, err
	}
	to, err := dto.To.ToDomain()
	if err != nil {
		return nil, err
	}

	return transfer.RestoreRequest(id, dto.SKU, dto.PalletID, from, to, dto.BoxCount, dto.CreatedAt, dto.ConfirmedAt)
}

func historyFromDomain(h transfer.History) InventoryTransferDTO {
	return InventoryTransferDTO{
		ID:       h.ID,
		SKU:      h.SKU,
		PalletID: h.PalletID,
		From:     locationrepo.NewLocationDTO(h.From),
		To:       locationrepo.NewLocationDTO(h.To),
		BoxCount: h.BoxCount,
		MovedAt:  h.MovedAt,
	}
}
