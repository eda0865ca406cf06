package queries

import (
	"context"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetWarehouseStockQueryHandler reads pallet totals per SKU, then attaches the SKU's
// ledger rows ordered by location code.
type GetWarehouseStockQueryHandler struct {
	db *gorm.DB
}

func NewGetWarehouseStockQueryHandler(db *gorm.DB) GetWarehouseStockQueryHandler {
	return GetWarehouseStockQueryHandler{db: db}
}

func (h GetWarehouseStockQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseStockQuery,
) ([]GetWarehouseStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	stock := make([]GetWarehouseStockQueryResponse, 0)
	bySKU := make(map[string]int)

	rows, err := db.Raw(`
		SELECT sku, MAX(product_name), COUNT(*), SUM(box_count), SUM(net_weight)
		FROM pallets
		WHERE box_count > 0
		  AND (? = '' OR sku = ?)
		GROUP BY sku
		ORDER BY sku
	`, query.SKU(), query.SKU()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry  GetWarehouseStockQueryResponse
			weight decimal.Decimal
		)
		if err = rows.Scan(&entry.SKU, &entry.ProductName, &entry.PalletCount, &entry.TotalBoxes, &weight); err != nil {
			return nil, err
		}
		entry.TotalWeight = weight
		entry.Locations = make([]WarehouseStockLocation, 0)
		bySKU[entry.SKU] = len(stock)
		stock = append(stock, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	ledgerRows, err := db.Raw(`
		SELECT sku, location_row, location_cell, location_level, quantity, reserved_quantity
		FROM stock_records
		WHERE (? = '' OR sku = ?)
		ORDER BY sku, location_row, location_cell, location_level
	`, query.SKU(), query.SKU()).Rows()
	if err != nil {
		return nil, err
	}
	defer ledgerRows.Close()

	for ledgerRows.Next() {
		var (
			sku, row, cell string
			level          int
			line           WarehouseStockLocation
		)
		if err = ledgerRows.Scan(&sku, &row, &cell, &level, &line.Boxes, &line.Reserved); err != nil {
			return nil, err
		}
		if line.Location, err = kernel.NewLocation(row, cell, kernel.Level(level)); err != nil {
			return nil, err
		}

		n, ok := bySKU[sku]
		if !ok {
			// Ledger rows without pallets still count as stock on hand.
			n = len(stock)
			bySKU[sku] = n
			stock = append(stock, GetWarehouseStockQueryResponse{
				SKU:         sku,
				TotalWeight: decimal.Zero,
				Locations:   make([]WarehouseStockLocation, 0),
			})
		}
		stock[n].ReservedBoxes += line.Reserved
		stock[n].Locations = append(stock[n].Locations, line)
	}
	if err = ledgerRows.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(stock, func(a, b GetWarehouseStockQueryResponse) int { return strings.Compare(a.SKU, b.SKU) })
	return stock, nil
}
