package stockrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements ports.StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// GetLedger takes the SKU's advisory lock and loads its rows. The lock also covers SKUs
// without rows yet, and guards the SKU's pallets and transfer requests until the
// transaction ends.
func (r *GormStockRepository) GetLedger(ctx context.Context, sku string) (*inventory.Ledger, error) {
	db := r.db.WithContext(ctx)
	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "stock:"+sku).Error; err != nil {
		return nil, err
	}

	var dtos []StockRecordDTO
	err := db.
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("sku = ?", sku).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*inventory.StockRecord, 0, len(dtos))
	for _, dto := range dtos {
		row, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return inventory.NewLedger(sku, rows)
}

// SaveLedger upserts the changed rows and deletes those left without boxes.
func (r *GormStockRepository) SaveLedger(ctx context.Context, ledger *inventory.Ledger) error {
	db := r.db.WithContext(ctx)
	for _, row := range ledger.Changed() {
		dto := fromDomain(row)
		if row.IsEmpty() {
			if err := db.Delete(&StockRecordDTO{}, "id = ?", dto.ID).Error; err != nil {
				return err
			}
			continue
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "reserved_quantity"}),
		}).Create(&dto).Error
		if err != nil {
			return err
		}
	}
	return nil
}
