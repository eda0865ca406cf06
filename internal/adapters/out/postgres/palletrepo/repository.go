package palletrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPalletRepository implements ports.PalletRepository using GORM.
type GormPalletRepository struct {
	db *gorm.DB
}

func NewGormPalletRepository(db *gorm.DB) *GormPalletRepository {
	return &GormPalletRepository{db: db}
}

func (r *GormPalletRepository) Add(ctx context.Context, pallet *inventory.Pallet) error {
	if err := pallet.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pallet)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every column, zero box counts included.
func (r *GormPalletRepository) Update(ctx context.Context, pallet *inventory.Pallet) error {
	if err := pallet.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pallet)
	result := r.db.WithContext(ctx).Model(&PalletDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pallet", dto.ID)
	}
	return nil
}

func (r *GormPalletRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PalletDTO{}, "id = ?", id).Error
}

// Get loads the pallet. Callers hold the SKU ledger lock before trusting the contents.
func (r *GormPalletRepository) Get(ctx context.Context, id string) (*inventory.Pallet, error) {
	var dto PalletDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pallet", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPalletRepository) ListBySKU(ctx context.Context, sku string) ([]*inventory.Pallet, error) {
	var dtos []PalletDTO
	err := r.db.WithContext(ctx).
		Where("sku = ? AND box_count > 0", sku).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pallets := make([]*inventory.Pallet, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pallets = append(pallets, p)
	}
	return pallets, nil
}
