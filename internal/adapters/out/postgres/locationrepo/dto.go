// Package locationrepo persists storage positions and the per-SKU picking assignment.
// It also owns LocationDTO, the embedded column triple every table uses for a position.
package locationrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// LocationDTO is a storage position embedded into a table, e.g. with embeddedPrefix:location_.
type LocationDTO struct {
	Row   string `gorm:"type:varchar(16)"`
	Cell  string `gorm:"type:varchar(16)"`
	Level int16  `gorm:"type:smallint"`
}

func NewLocationDTO(location kernel.Location) LocationDTO {
	return LocationDTO{
		Row:   location.Row(),
		Cell:  location.Cell(),
		Level: int16(location.Level()),
	}
}

// ToDomain rebuilds the validated location.
func (d LocationDTO) ToDomain() (kernel.Location, error) {
	return kernel.NewLocation(d.Row, d.Cell, kernel.Level(d.Level))
}

// StorageLocationDTO is a known storage position.
type StorageLocationDTO struct {
	Code     string      `gorm:"type:varchar(64);primaryKey"`
	Location LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
}

func (StorageLocationDTO) TableName() string {
	return "storage_locations"
}

// PickingLocationDTO assigns a SKU its ground-tier picking position.
type PickingLocationDTO struct {
	SKU      string      `gorm:"column:sku;type:varchar(64);primaryKey"`
	Location LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
}

func (PickingLocationDTO) TableName() string {
	return "sku_picking_locations"
}

// StorageRowDTO holds the climate of a rack row.
type StorageRowDTO struct {
	Row            string  `gorm:"column:location_row;type:varchar(16);primaryKey"`
	TemperatureMin float64 `gorm:"column:temperature_min"`
	TemperatureMax float64 `gorm:"column:temperature_max"`
}

func (StorageRowDTO) TableName() string {
	return "storage_rows"
}
