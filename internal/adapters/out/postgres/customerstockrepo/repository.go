package customerstockrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/customerstock"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerStockRepository implements ports.CustomerStockRepository using GORM.
type GormCustomerStockRepository struct {
	db *gorm.DB
}

func NewGormCustomerStockRepository(db *gorm.DB) *GormCustomerStockRepository {
	return &GormCustomerStockRepository{db: db}
}

// Get loads and locks the customer's entry for the SKU.
func (r *GormCustomerStockRepository) Get(ctx context.Context, customerID kernel.UUID, sku string) (*customerstock.Entry, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerStockDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "customer_id = ? AND sku = ?", customerID.Bytes(), sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer stock", customerID.String()+"/"+sku)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCustomerStockRepository) Save(ctx context.Context, entry *customerstock.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_name", "kind", "quantity_units", "quantity_kg", "updated_at"}),
	}).Create(&dto).Error
}
