package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingTransfersQueryHandler reads unconfirmed transfer requests, oldest first.
type GetPendingTransfersQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingTransfersQueryHandler(db *gorm.DB) GetPendingTransfersQueryHandler {
	return GetPendingTransfersQueryHandler{db: db}
}

func (h GetPendingTransfersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingTransfersQuery,
) ([]GetPendingTransfersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transfers := make([]GetPendingTransfersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sku,
			pallet_id,
			from_row, from_cell, from_level,
			to_row, to_cell, to_level,
			box_count,
			created_at
		FROM transfer_requests
		WHERE NOT confirmed
		  AND (? = '' OR sku = ?)
		ORDER BY created_at, pallet_id
	`, query.SKU(), query.SKU()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t                  GetPendingTransfersQueryResponse
			id                 uuid.UUID
			fromRow, fromCell  string
			toRow, toCell      string
			fromLevel, toLevel int
			createdAt          time.Time
		)

		err = rows.Scan(
			&id,
			&t.SKU,
			&t.PalletID,
			&fromRow, &fromCell, &fromLevel,
			&toRow, &toCell, &toLevel,
			&t.BoxCount,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if t.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if t.From, err = kernel.NewLocation(fromRow, fromCell, kernel.Level(fromLevel)); err != nil {
			return nil, err
		}
		if t.To, err = kernel.NewLocation(toRow, toCell, kernel.Level(toLevel)); err != nil {
			return nil, err
		}
		t.CreatedAt = createdAt.UTC()
		transfers = append(transfers, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transfers, nil
}
