//go:build unit || e2e

package builder

import (
	"shopcore/internal/domain/cart"
	"shopcore/internal/usecase/queries"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartItemSpec struct {
	ProductID uuid.UUID
	Quantity  int
	Price     float64
	Name      string
	Image     string
}

type CartBuilder struct {
	Key   uuid.UUID
	Items []CartItemSpec
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{
		Key: uuid.New(),
		Items: []CartItemSpec{
			{ProductID: uuid.New(), Quantity: 2, Price: 49.99, Name: "Wireless Headphones", Image: "/images/headphones.jpg"},
		},
	}
}

func (b *CartBuilder) With(mutate func(*CartBuilder)) *CartBuilder {
	mutate(b)
	return b
}

func (b *CartBuilder) Empty() *CartBuilder {
	b.Items = nil
	return b
}

func (b *CartBuilder) AddItem(productID uuid.UUID, quantity int, price float64) *CartBuilder {
	b.Items = append(b.Items, CartItemSpec{
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		Name:      "Item " + productID.String()[:8],
		Image:     "/images/item.jpg",
	})
	return b
}

func (b *CartBuilder) BuildLineItems() []cart.LineItem {
	items := make([]cart.LineItem, len(b.Items))
	for i, spec := range b.Items {
		items[i] = cart.ReconstructLineItem(spec.ProductID, spec.Quantity, spec.Price, spec.Name, spec.Image)
	}
	return items
}

func (b *CartBuilder) BuildDomain() *cart.Cart {
	return cart.ReconstructCart(b.BuildLineItems())
}

func (b *CartBuilder) BuildSnapshot() *shared.CartSnapshot {
	items := make([]shared.CartItemSnapshot, len(b.Items))
	for i, spec := range b.Items {
		items[i] = shared.CartItemSnapshot{
			ProductID: spec.ProductID,
			Quantity:  spec.Quantity,
			Price:     spec.Price,
			Name:      spec.Name,
			Image:     spec.Image,
		}
	}
	return &shared.CartSnapshot{Key: b.Key, Items: items}
}

func (b *CartBuilder) BuildView() *queries.CartView {
	items := make([]queries.CartItemView, len(b.Items))
	count := 0
	for i, spec := range b.Items {
		items[i] = queries.CartItemView{
			ProductID: spec.ProductID,
			Quantity:  spec.Quantity,
			Price:     spec.Price,
			Name:      spec.Name,
			Image:     spec.Image,
		}
		count += spec.Quantity
	}
	return &queries.CartView{Items: items, ItemCount: count}
}
