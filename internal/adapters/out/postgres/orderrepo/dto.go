// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored in the orders table and owns its rows in order_items, kept in entry order
// through the position column.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber      string     `gorm:"type:varchar(10);uniqueIndex"`
	Type             string     `gorm:"type:varchar(16)"`
	CustomerID       *uuid.UUID `gorm:"type:uuid"`
	Status           int        `gorm:"index"`
	RequiresTransfer bool
	PalletsCount     int
	StartedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	Items            []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order.
type OrderItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	Position          int
	SKU               string `gorm:"column:sku;type:varchar(64)"`
	ProductName       string `gorm:"type:varchar(255)"`
	Quantity          int
	OriginalQuantity  int
	ReservedQuantity  int
	ReservedAt        inventory.Allocation `gorm:"serializer:json;type:jsonb;not null"`
	ReservationStatus string               `gorm:"type:varchar(16)"`
	PalletNumber      int
	LotNumber         string `gorm:"type:varchar(64)"`
	Length            float64
	Width             float64
	Height            float64
	Multiplicity      int
	IsWeightBased     bool
	UnitPrice         decimal.Decimal `gorm:"type:numeric(14,2)"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

// fromDomain converts an order aggregate and its items to their database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:               o.ID().Bytes(),
		OrderNumber:      o.Number(),
		Type:             string(o.Type()),
		CustomerID:       uuidPtr(o.CustomerID()),
		Status:           int(o.Status()),
		RequiresTransfer: o.RequiresTransfer(),
		PalletsCount:     o.PalletsCount(),
		StartedBy:        uuidPtr(o.StartedBy()),
		CreatedAt:        o.CreatedAt(),
		Items:            make([]OrderItemDTO, 0, len(o.Items())),
	}

	for position, item := range o.Items() {
		dims := item.Dimensions()
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:                item.ID().Bytes(),
			OrderID:           dto.ID,
			Position:          position,
			SKU:               item.SKU(),
			ProductName:       item.ProductName(),
			Quantity:          item.Quantity(),
			OriginalQuantity:  item.OriginalQuantity(),
			ReservedQuantity:  item.ReservedQuantity(),
			ReservedAt:        item.ReservedAt(),
			ReservationStatus: string(item.ReservationStatus()),
			PalletNumber:      item.PalletNumber(),
			LotNumber:         item.LotNumber(),
			Length:            dims.Length,
			Width:             dims.Width,
			Height:            dims.Height,
			Multiplicity:      item.Multiplicity(),
			IsWeightBased:     item.IsWeightBased(),
			UnitPrice:         item.UnitPrice(),
		})
	}

	return dto
}

// toDomain rebuilds the order aggregate with RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernelUUIDPtr(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	startedBy, err := kernelUUIDPtr(dto.StartedBy)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, err := kernel.UUIDFromBytes(itemDTO.ID[:])
		if err != nil {
			return nil, err
		}
		item, err := order.RestoreItem(order.ItemState{
			ID:                itemID,
			SKU:               itemDTO.SKU,
			ProductName:       itemDTO.ProductName,
			Quantity:          itemDTO.Quantity,
			OriginalQuantity:  itemDTO.OriginalQuantity,
			ReservedQuantity:  itemDTO.ReservedQuantity,
			ReservedAt:        itemDTO.ReservedAt,
			ReservationStatus: order.ReservationStatus(itemDTO.ReservationStatus),
			PalletNumber:      itemDTO.PalletNumber,
			LotNumber:         itemDTO.LotNumber,
			Dimensions:        catalog.Dimensions{Length: itemDTO.Length, Width: itemDTO.Width, Height: itemDTO.Height},
			Multiplicity:      itemDTO.Multiplicity,
			WeightBased:       itemDTO.IsWeightBased,
			UnitPrice:         itemDTO.UnitPrice,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:               id,
		Number:           dto.OrderNumber,
		Type:             order.Type(dto.Type),
		CustomerID:       customerID,
		Status:           order.Status(dto.Status),
		RequiresTransfer: dto.RequiresTransfer,
		PalletsCount:     dto.PalletsCount,
		StartedBy:        startedBy,
		CreatedAt:        dto.CreatedAt,
		Items:            items,
	})
}
