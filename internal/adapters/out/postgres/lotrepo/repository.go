package lotrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLotRepository implements ports.LotRepository using GORM.
type GormLotRepository struct {
	db *gorm.DB
}

func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

func (r *GormLotRepository) Add(ctx context.Context, l *lot.Lot) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := fromDomain(l)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the lot and replaces its SKU summaries.
func (r *GormLotRepository) Update(ctx context.Context, l *lot.Lot) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := fromDomain(l)
	db := r.db.WithContext(ctx)
	result := db.Model(&LotDTO{}).Where("id = ?", dto.ID).Select("*").Omit("SKUs").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("lot", l.Number())
	}

	if err := db.Where("lot_id = ?", dto.ID).Delete(&LotSKUDTO{}).Error; err != nil {
		return err
	}
	if len(dto.SKUs) > 0 {
		return db.Create(&dto.SKUs).Error
	}
	return nil
}

// GetByNumber loads the lot with its SKU lines. Lots change only under their order's row lock.
func (r *GormLotRepository) GetByNumber(ctx context.Context, number string) (*lot.Lot, error) {
	var dto LotDTO
	err := r.db.WithContext(ctx).
		Preload("SKUs", func(db *gorm.DB) *gorm.DB { return db.Order("sku") }).
		First(&dto, "lot_number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("lot", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormLotRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*lot.Lot, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LotDTO
	err := r.db.WithContext(ctx).
		Preload("SKUs", func(db *gorm.DB) *gorm.DB { return db.Order("sku") }).
		Where("order_id = ?", orderID.Bytes()).
		Order("pallet_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	lots := make([]*lot.Lot, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, nil
}
