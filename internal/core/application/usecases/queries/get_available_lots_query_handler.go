package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableLotsQueryHandler builds the picker worklist, oldest order first.
type GetAvailableLotsQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableLotsQueryHandler(db *gorm.DB) GetAvailableLotsQueryHandler {
	return GetAvailableLotsQueryHandler{db: db}
}

type availableLotRow struct {
	LotNumber    string
	OrderID      uuid.UUID
	OrderNumber  string
	OrderType    string
	PalletNumber int
	Status       int
	PickerID     *uuid.UUID
	ItemCount    int
	BoxCount     int
}

func (h GetAvailableLotsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableLotsQuery,
) ([]GetAvailableLotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []availableLotRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.lot_number,
			l.order_id,
			o.order_number,
			o.type AS order_type,
			l.pallet_number,
			l.status,
			l.picker_id,
			COUNT(i.id) AS item_count,
			COALESCE(SUM(CASE
				WHEN i.is_weight_based THEN i.quantity
				ELSE CEIL(i.quantity::numeric / GREATEST(i.multiplicity, 1))
			END), 0)::int AS box_count
		FROM order_lots l
		JOIN orders o ON o.id = l.order_id
		LEFT JOIN order_items i ON i.order_id = l.order_id AND i.lot_number = l.lot_number
		WHERE l.status IN (?, ?)
		  AND o.status IN (?, ?)
		GROUP BY l.id, o.id
		ORDER BY o.created_at, o.order_number, l.pallet_number
	`, int(lot.Wait), int(lot.Start), int(order.Processing), int(order.Assembling)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lots := make([]GetAvailableLotsQueryResponse, 0, len(rows))
	for _, row := range rows {
		orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
		if err != nil {
			return nil, err
		}

		response := GetAvailableLotsQueryResponse{
			LotNumber:    row.LotNumber,
			OrderID:      orderID,
			OrderNumber:  row.OrderNumber,
			OrderType:    row.OrderType,
			PalletNumber: row.PalletNumber,
			Status:       lot.Status(row.Status).String(),
			ItemCount:    row.ItemCount,
			BoxCount:     row.BoxCount,
		}
		if row.PickerID != nil {
			pickerID, err := kernel.UUIDFromBytes(row.PickerID[:])
			if err != nil {
				return nil, err
			}
			response.PickerID = &pickerID
		}
		lots = append(lots, response)
	}

	return lots, nil
}
