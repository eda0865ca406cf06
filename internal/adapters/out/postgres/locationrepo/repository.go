package locationrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements ports.LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Ensure inserts the location unless its code is already known.
func (r *GormLocationRepository) Ensure(ctx context.Context, location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	dto := StorageLocationDTO{Code: location.Code(), Location: NewLocationDTO(location)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

func (r *GormLocationRepository) AssignedPickingLocation(ctx context.Context, sku string) (*kernel.Location, error) {
	var dto PickingLocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	location, err := dto.Location.ToDomain()
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *GormLocationRepository) AssignPickingLocation(ctx context.Context, sku string, location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	dto := PickingLocationDTO{SKU: sku, Location: NewLocationDTO(location)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"location_row", "location_cell", "location_level"}),
	}).Create(&dto).Error
}

// FindEmptyGroundLocation picks the first ground-tier position by code that holds no
// non-empty pallet and no ledger row.
func (r *GormLocationRepository) FindEmptyGroundLocation(ctx context.Context) (*kernel.Location, error) {
	var dto StorageLocationDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT l.code, l.location_row, l.location_cell, l.location_level
		FROM storage_locations l
		WHERE l.location_level = ?
		  AND NOT EXISTS (
			SELECT 1 FROM pallets p
			WHERE p.location_row = l.location_row
			  AND p.location_cell = l.location_cell
			  AND p.location_level = l.location_level
			  AND p.box_count > 0)
		  AND NOT EXISTS (
			SELECT 1 FROM stock_records s
			WHERE s.location_row = l.location_row
			  AND s.location_cell = l.location_cell
			  AND s.location_level = l.location_level)
		ORDER BY l.code
		LIMIT 1
	`, kernel.GroundLevel).Scan(&dto).Error
	if err != nil {
		return nil, err
	}
	if dto.Code == "" {
		return nil, nil
	}

	location, err := dto.Location.ToDomain()
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *GormLocationRepository) HeldByOtherSKU(ctx context.Context, location kernel.Location, sku string) (bool, error) {
	var held bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1 FROM pallets
			WHERE location_row = ? AND location_cell = ? AND location_level = ?
			  AND box_count > 0 AND sku <> ?)
		OR EXISTS (
			SELECT 1 FROM stock_records
			WHERE location_row = ? AND location_cell = ? AND location_level = ?
			  AND sku <> ?)
	`,
		location.Row(), location.Cell(), location.Level(), sku,
		location.Row(), location.Cell(), location.Level(), sku,
	).Scan(&held).Error
	return held, err
}

func (r *GormLocationRepository) RowTemperature(ctx context.Context, row string) (*kernel.TemperatureRange, error) {
	var dto StorageRowDTO
	if err := r.db.WithContext(ctx).First(&dto, "location_row = ?", row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	temperature, err := kernel.NewTemperatureRange(dto.TemperatureMin, dto.TemperatureMax)
	if err != nil {
		return nil, err
	}
	return &temperature, nil
}

func (r *GormLocationRepository) SetRowTemperature(ctx context.Context, row string, temperature kernel.TemperatureRange) error {
	dto := StorageRowDTO{Row: row, TemperatureMin: temperature.Lowest(), TemperatureMax: temperature.Highest()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_row"}},
		DoUpdates: clause.AssignmentColumns([]string{"temperature_min", "temperature_max"}),
	}).Create(&dto).Error
}
