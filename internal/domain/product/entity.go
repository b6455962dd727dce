package product

import (
	"errors"

	"shopcore/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// Product is a snapshot of a catalog record. The catalog itself is owned by an
// external store; this entity only guards the invariants the engine relies on.
type Product struct {
	id            uuid.UUID
	name          string
	image         string
	price         float64
	originalPrice *float64
	stock         int
	inStock       bool
}

func NewProduct(id uuid.UUID, name, image string, price float64, originalPrice *float64, stock int) (*Product, error) {
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Product{
		id:            id,
		name:          name,
		image:         image,
		price:         price,
		originalPrice: originalPrice,
		stock:         stock,
		inStock:       stock > 0,
	}, nil
}

// ReconstructProduct rehydrates a record as the store persisted it. The stored
// inStock flag is honored for availability checks until the first ledger
// operation recomputes it from stock.
func ReconstructProduct(id uuid.UUID, name, image string, price float64, originalPrice *float64, stock int, inStock bool) *Product {
	return &Product{
		id:            id,
		name:          name,
		image:         image,
		price:         price,
		originalPrice: originalPrice,
		stock:         stock,
		inStock:       inStock,
	}
}

func (p *Product) ID() uuid.UUID           { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) Image() string           { return p.image }
func (p *Product) Price() float64          { return p.price }
func (p *Product) OriginalPrice() *float64 { return p.originalPrice }
func (p *Product) Stock() int              { return p.stock }
func (p *Product) InStock() bool           { return p.inStock }

func (p *Product) IsOnSale() bool {
	return p.originalPrice != nil && *p.originalPrice > p.price
}

// HasStock reports whether quantity units can be deducted. A stored
// inStock=false short-circuits to unavailable regardless of count.
func (p *Product) HasStock(quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if !p.inStock {
		return false
	}
	return p.stock >= quantity
}

// DeductStock removes quantity units and recomputes availability. It refuses
// rather than clamping: stock never goes negative.
func (p *Product) DeductStock(quantity int) (int, error) {
	if quantity <= 0 {
		return p.stock, errs.ErrInvalidQuantity
	}
	if !p.HasStock(quantity) {
		return p.stock, errs.ErrInsufficientStock
	}

	p.stock -= quantity
	p.inStock = p.stock > 0
	return p.stock, nil
}

// RestoreStock returns quantity units. A restore always implies availability.
func (p *Product) RestoreStock(quantity int) (int, error) {
	if quantity <= 0 {
		return p.stock, errs.ErrInvalidQuantity
	}

	p.stock += quantity
	p.inStock = true
	return p.stock, nil
}
