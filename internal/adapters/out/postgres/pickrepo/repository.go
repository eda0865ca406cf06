package pickrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"

	"gorm.io/gorm"
)

// GormPickRepository implements ports.PickRepository using GORM. Records are only inserted.
type GormPickRepository struct {
	db *gorm.DB
}

func NewGormPickRepository(db *gorm.DB) *GormPickRepository {
	return &GormPickRepository{db: db}
}

func (r *GormPickRepository) Add(ctx context.Context, record *picking.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPickRepository) ListByLot(ctx context.Context, lotNumber string) ([]*picking.Record, error) {
	return r.list(r.db.WithContext(ctx).Where("lot_number = ?", lotNumber))
}

func (r *GormPickRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.list(r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()))
}

func (r *GormPickRepository) list(query *gorm.DB) ([]*picking.Record, error) {
	var dtos []PickRecordDTO
	if err := query.Order("picked_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*picking.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
