package pricing

import (
	"math"

	"shopcore/internal/domain/cart"
	"shopcore/internal/domain/coupon"

	"github.com/google/uuid"
)

// Config holds the pricing rules. Defaults mirror the storefront's.
type Config struct {
	TaxRate               float64
	FreeShippingThreshold float64
	ShippingRate          float64
}

func DefaultConfig() Config {
	return Config{
		TaxRate:               0.13,
		FreeShippingThreshold: 200,
		ShippingRate:          15,
	}
}

// Result is derived on every query and never persisted as a source of truth.
// All fields are non-negative and rounded to 2 decimal places.
type Result struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type Calculator interface {
	// ComputeTotal prices a set of line items. livePrices overrides the
	// denormalized snapshot price per product when the catalog record is at
	// hand; a nil map falls back to snapshots everywhere.
	ComputeTotal(items []cart.LineItem, livePrices map[uuid.UUID]float64, cpn *coupon.Coupon) Result
}

type DefaultCalculator struct {
	cfg Config
}

func NewDefaultCalculator(cfg Config) *DefaultCalculator {
	return &DefaultCalculator{cfg: cfg}
}

func (c *DefaultCalculator) ComputeTotal(items []cart.LineItem, livePrices map[uuid.UUID]float64, cpn *coupon.Coupon) Result {
	if len(items) == 0 {
		return Result{}
	}

	subtotal := 0.0
	for _, item := range items {
		price := item.Price()
		if live, ok := livePrices[item.ProductID()]; ok {
			price = live
		}
		subtotal += price * float64(item.Quantity())
	}
	// Cannot occur from valid line items, but the clamp keeps every
	// downstream step non-negative.
	if subtotal < 0 {
		subtotal = 0
	}
	subtotal = round2(subtotal)

	discount := 0.0
	if cpn != nil {
		discount = cpn.Discount(subtotal)
	}

	taxableAmount := round2(subtotal - discount)
	tax := round2(taxableAmount * c.cfg.TaxRate)

	// Shipping is evaluated on the post-discount amount: a coupon can push an
	// order back below the free-shipping threshold.
	shipping := c.shippingFor(taxableAmount)

	return Result{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		Total:    round2(taxableAmount + tax + shipping),
	}
}

// shippingFor applies the threshold test to the post-discount amount. A cart
// fully discounted to zero still ships, so zero is not special-cased here;
// the empty-cart case short-circuits before pricing starts.
func (c *DefaultCalculator) shippingFor(taxableAmount float64) float64 {
	if taxableAmount >= c.cfg.FreeShippingThreshold {
		return 0
	}
	return round2(c.cfg.ShippingRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
