package transferrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/transfer"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransferRepository implements ports.TransferRepository using GORM.
type GormTransferRepository struct {
	db *gorm.DB
}

func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

func (r *GormTransferRepository) Add(ctx context.Context, request *transfer.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTransferRepository) Update(ctx context.Context, request *transfer.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	result := r.db.WithContext(ctx).Model(&TransferRequestDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transfer", request.ID().String())
	}
	return nil
}

// Get loads the request. Changes are made under the SKU ledger lock.
func (r *GormTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransferRequestDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormTransferRepository) ListUnconfirmedBySKU(ctx context.Context, sku string) ([]*transfer.Request, error) {
	var dtos []TransferRequestDTO
	err := r.db.WithContext(ctx).
		Where("sku = ? AND NOT confirmed", sku).
		Order("created_at, pallet_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*transfer.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *GormTransferRepository) AddHistory(ctx context.Context, history transfer.History) error {
	dto := historyFromDomain(history)
	return r.db.WithContext(ctx).Create(&dto).Error
}
