package cart

import (
	"shopcore/internal/domain/product"
	"shopcore/internal/pkg/errs"

	"github.com/google/uuid"
)

// LineItem is owned exclusively by the cart. The product id is immutable for
// the life of the item; price/name/image are a denormalized snapshot taken at
// add time so the cart stays renderable if the catalog record changes.
type LineItem struct {
	productID uuid.UUID
	quantity  int
	price     float64
	name      string
	image     string
}

func NewLineItem(p *product.Product, quantity int) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, errs.ErrInvalidQuantity
	}
	return LineItem{
		productID: p.ID(),
		quantity:  quantity,
		price:     p.Price(),
		name:      p.Name(),
		image:     p.Image(),
	}, nil
}

func ReconstructLineItem(productID uuid.UUID, quantity int, price float64, name, image string) LineItem {
	return LineItem{
		productID: productID,
		quantity:  quantity,
		price:     price,
		name:      name,
		image:     image,
	}
}

func (i LineItem) ProductID() uuid.UUID { return i.productID }
func (i LineItem) Quantity() int        { return i.quantity }
func (i LineItem) Price() float64       { return i.price }
func (i LineItem) Name() string         { return i.name }
func (i LineItem) Image() string        { return i.image }

// Cart keeps line items unique per product id. Persistence is handled by an
// external key-value collaborator; OnChange replaces the source UI's
// subscribe/notify mechanism with a plain hook.
type Cart struct {
	items    []LineItem
	onChange func(*Cart)
}

func NewCart() *Cart {
	return &Cart{}
}

func ReconstructCart(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, len(items))}
	copy(c.items, items)
	return c
}

func (c *Cart) SetOnChange(fn func(*Cart)) {
	c.onChange = fn
}

func (c *Cart) notify() {
	if c.onChange != nil {
		c.onChange(c)
	}
}

// Add merges quantity into an existing line item for the same product, or
// inserts a new one with a fresh snapshot.
func (c *Cart) Add(p *product.Product, quantity int) error {
	if quantity < 1 {
		return errs.ErrInvalidQuantity
	}

	for idx := range c.items {
		if c.items[idx].productID == p.ID() {
			c.items[idx].quantity += quantity
			c.notify()
			return nil
		}
	}

	item, err := NewLineItem(p, quantity)
	if err != nil {
		return err
	}
	c.items = append(c.items, item)
	c.notify()
	return nil
}

// UpdateQuantity sets the quantity in place; below 1 it removes the item.
// Absent product ids are a silent no-op — callers rely on idempotent updates.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}

	for idx := range c.items {
		if c.items[idx].productID == productID {
			c.items[idx].quantity = quantity
			c.notify()
			return
		}
	}
}

// Remove deletes the matching line item; absent ids are a silent no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	for idx := range c.items {
		if c.items[idx].productID == productID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			c.notify()
			return
		}
	}
}

func (c *Cart) Clear() {
	if len(c.items) == 0 {
		return
	}
	c.items = nil
	c.notify()
}

// Items returns a copy; the cart keeps exclusive ownership of its line items.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.quantity
	}
	return count
}

func (c *Cart) Find(productID uuid.UUID) (LineItem, bool) {
	for _, item := range c.items {
		if item.productID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}
