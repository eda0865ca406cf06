// Package customerstockrepo persists the running stock delivered to each customer.
package customerstockrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/customerstock"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerStockDTO is the (customer, sku) running total.
type CustomerStockDTO struct {
	CustomerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU           string    `gorm:"column:sku;type:varchar(64);primaryKey"`
	ProductName   string    `gorm:"type:varchar(255)"`
	Kind          string    `gorm:"type:varchar(16)"`
	QuantityUnits int
	QuantityKg    decimal.Decimal `gorm:"column:quantity_kg;type:numeric(14,3)"`
	UpdatedAt     time.Time
}

func (CustomerStockDTO) TableName() string {
	return "customer_stock"
}

func fromDomain(e *customerstock.Entry) CustomerStockDTO {
	return CustomerStockDTO{
		CustomerID:    e.CustomerID().Bytes(),
		SKU:           e.SKU(),
		ProductName:   e.ProductName(),
		Kind:          string(e.Kind()),
		QuantityUnits: e.Units(),
		QuantityKg:    e.Kilograms(),
		UpdatedAt:     e.UpdatedAt(),
	}
}

func toDomain(dto CustomerStockDTO) (*customerstock.Entry, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return customerstock.RestoreEntry(customerID, dto.SKU, dto.ProductName, catalog.PackagingKind(dto.Kind),
		dto.QuantityUnits, dto.QuantityKg, dto.UpdatedAt)
}
