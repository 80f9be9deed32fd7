// Package productrepo provides the GORM-backed product repository and the
// stock ledger over product rows. All stock mutations are single guarded SQL
// statements so the availability check and the decrement can never be split
// by a concurrent writer.
package productrepo

import (
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the database representation of a product.
type ProductDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SKU             string          `gorm:"column:sku;uniqueIndex;not null"`
	Name            string          `gorm:"not null"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	QuantityInStock int             `gorm:"not null"`
	IsActive        bool            `gorm:"not null"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product entity to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:              aggregate.ID().Bytes(),
		SKU:             aggregate.SKU(),
		Name:            aggregate.Name(),
		Price:           aggregate.Price(),
		QuantityInStock: aggregate.QuantityInStock(),
		IsActive:        aggregate.IsActive(),
	}
}

// toDomain converts a database DTO back to a product entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.SKU, dto.Name, dto.Price, dto.QuantityInStock, dto.IsActive)
}
