package coupon

import "math"

// Coupon is immutable once issued; definitions come from an external catalog.
type Coupon struct {
	code        Code
	typ         Type
	value       float64
	minAmount   *float64
	maxDiscount *float64
}

func NewCoupon(code string, typ Type, value float64, minAmount, maxDiscount *float64) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	if !typ.IsValid() {
		return nil, ErrInvalidCouponType
	}
	if value <= 0 {
		return nil, ErrInvalidValue
	}
	if typ == TypePercentage && value > 100 {
		return nil, ErrInvalidPercentage
	}

	return &Coupon{
		code:        couponCode,
		typ:         typ,
		value:       value,
		minAmount:   minAmount,
		maxDiscount: maxDiscount,
	}, nil
}

func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Type() Type            { return c.typ }
func (c *Coupon) Value() float64        { return c.value }
func (c *Coupon) MinAmount() *float64   { return c.minAmount }
func (c *Coupon) MaxDiscount() *float64 { return c.maxDiscount }

// Discount returns the amount taken off a subtotal. Ineligibility (subtotal
// below the minimum) is a normal outcome surfaced as a zero discount, not an
// error, so checkout proceeds at full price. Invariant: 0 <= result <= subtotal.
func (c *Coupon) Discount(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	if c.minAmount != nil && subtotal < *c.minAmount {
		return 0
	}

	var discount float64
	switch c.typ {
	case TypePercentage:
		discount = subtotal * c.value / 100
		if c.maxDiscount != nil && discount > *c.maxDiscount {
			discount = *c.maxDiscount
		}
	case TypeFixed:
		discount = c.value
	}

	// A discount can never push the order negative.
	if discount > subtotal {
		discount = subtotal
	}

	return round2(discount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
