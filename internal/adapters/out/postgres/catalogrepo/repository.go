package catalogrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) Get(ctx context.Context, sku string) (*catalog.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", sku)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCatalogRepository) GetMany(ctx context.Context, skus []string) (map[string]*catalog.Product, error) {
	products := make(map[string]*catalog.Product, len(skus))
	if len(skus) == 0 {
		return products, nil
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("sku IN ?", skus).Find(&dtos).Error; err != nil {
		return nil, err
	}
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.SKU()] = p
	}
	return products, nil
}

// Save inserts the product or overwrites every column of the stored one.
func (r *GormCatalogRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := fromDomain(product)
	return r.db.WithContext(ctx).Save(&dto).Error
}
