// Package catalogrepo persists the product master.
package catalogrepo

import (
	"fulfillment/internal/core/domain/model/catalog"
)

// ProductDTO is a catalog entry keyed by SKU.
type ProductDTO struct {
	SKU           string `gorm:"column:sku;type:varchar(64);primaryKey"`
	ProductName   string `gorm:"type:varchar(255)"`
	Length        float64
	Width         float64
	Height        float64
	Kind          string `gorm:"type:varchar(16)"`
	Multiplicity  int
	Temperature   *int
	ShelfLifeDays *int
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *catalog.Product) ProductDTO {
	d := p.Dimensions()
	return ProductDTO{
		SKU:           p.SKU(),
		ProductName:   p.Name(),
		Length:        d.Length,
		Width:         d.Width,
		Height:        d.Height,
		Kind:          string(p.Kind()),
		Multiplicity:  p.Multiplicity(),
		Temperature:   p.Temperature(),
		ShelfLifeDays: p.ShelfLifeDays(),
	}
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	return catalog.RestoreProduct(
		dto.SKU,
		dto.ProductName,
		catalog.Dimensions{Length: dto.Length, Width: dto.Width, Height: dto.Height},
		catalog.PackagingKind(dto.Kind),
		dto.Multiplicity,
		dto.Temperature,
		dto.ShelfLifeDays,
	)
}
