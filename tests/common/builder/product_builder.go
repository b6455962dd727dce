//go:build unit || e2e

package builder

import (
	"shopcore/internal/domain/product"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductBuilder struct {
	ID            uuid.UUID
	Name          string
	Image         string
	Price         float64
	OriginalPrice *float64
	Stock         int
	InStock       bool
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:      uuid.New(),
		Name:    "Wireless Headphones",
		Image:   "/images/headphones.jpg",
		Price:   49.99,
		Stock:   10,
		InStock: true,
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.Price = price
	return b
}

func (b *ProductBuilder) WithStock(stock int) *ProductBuilder {
	b.Stock = stock
	b.InStock = stock > 0
	return b
}

func (b *ProductBuilder) WithOriginalPrice(price float64) *ProductBuilder {
	b.OriginalPrice = &price
	return b
}

func (b *ProductBuilder) BuildDomain() (*product.Product, error) {
	return product.NewProduct(b.ID, b.Name, b.Image, b.Price, b.OriginalPrice, b.Stock)
}

func (b *ProductBuilder) BuildReconstructed() *product.Product {
	return product.ReconstructProduct(b.ID, b.Name, b.Image, b.Price, b.OriginalPrice, b.Stock, b.InStock)
}

func (b *ProductBuilder) BuildSnapshot() *shared.ProductSnapshot {
	return &shared.ProductSnapshot{
		ID:            b.ID,
		Name:          b.Name,
		Image:         b.Image,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Stock:         b.Stock,
		InStock:       b.InStock,
	}
}
