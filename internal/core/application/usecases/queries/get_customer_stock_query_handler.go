package queries

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetCustomerStockQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerStockQueryHandler(db *gorm.DB) GetCustomerStockQueryHandler {
	return GetCustomerStockQueryHandler{db: db}
}

func (h GetCustomerStockQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerStockQuery,
) ([]GetCustomerStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stock := make([]GetCustomerStockQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT sku, product_name, kind, quantity_units, quantity_kg, updated_at
		FROM customer_stock
		WHERE customer_id = ?
		ORDER BY sku
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry     GetCustomerStockQueryResponse
			kilograms decimal.Decimal
			updatedAt time.Time
		)
		if err = rows.Scan(&entry.SKU, &entry.ProductName, &entry.Kind, &entry.Units, &kilograms, &updatedAt); err != nil {
			return nil, err
		}
		entry.Kilograms = kilograms
		entry.UpdatedAt = updatedAt.UTC()
		stock = append(stock, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stock, nil
}
