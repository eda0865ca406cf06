package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/picking"
)

// LotRepository persists lots and their per-SKU summaries.
type LotRepository interface {
	Add(ctx context.Context, l *lot.Lot) error
	Update(ctx context.Context, l *lot.Lot) error
	GetByNumber(ctx context.Context, number string) (*lot.Lot, error)
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*lot.Lot, error)
}

// PickRepository appends picking audit records. Records are never updated.
type PickRepository interface {
	Add(ctx context.Context, record *picking.Record) error
	ListByLot(ctx context.Context, lotNumber string) ([]*picking.Record, error)
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Record, error)
}
