//go:build unit || e2e

package builder

import (
	"shopcore/internal/domain/coupon"
	"shopcore/internal/usecase/shared"
)

type CouponBuilder struct {
	Code        string
	Type        coupon.Type
	Value       float64
	MinAmount   *float64
	MaxDiscount *float64
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		Code:  "SAVE10",
		Type:  coupon.TypePercentage,
		Value: 10,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) WithFixed(value float64) *CouponBuilder {
	b.Type = coupon.TypeFixed
	b.Value = value
	return b
}

func (b *CouponBuilder) WithPercentage(value float64) *CouponBuilder {
	b.Type = coupon.TypePercentage
	b.Value = value
	return b
}

func (b *CouponBuilder) WithMinAmount(min float64) *CouponBuilder {
	b.MinAmount = &min
	return b
}

func (b *CouponBuilder) WithMaxDiscount(max float64) *CouponBuilder {
	b.MaxDiscount = &max
	return b
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(b.Code, b.Type, b.Value, b.MinAmount, b.MaxDiscount)
}

func (b *CouponBuilder) BuildSnapshot() *shared.CouponSnapshot {
	return &shared.CouponSnapshot{
		Code:        b.Code,
		Type:        string(b.Type),
		Value:       b.Value,
		MinAmount:   b.MinAmount,
		MaxDiscount: b.MaxDiscount,
	}
}
