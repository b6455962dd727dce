//go:build unit

package coupon_test

import (
	"testing"

	"shopcore/internal/domain/coupon"
	"shopcore/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constructionCase struct {
	name   string
	mutate func(*builder.CouponBuilder)
	errIs  error
}

func TestNewCoupon(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewCouponBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, "SAVE10", actual.Code().String())
		assert.Equal(t, coupon.TypePercentage, actual.Type())
		assert.Equal(t, 10.0, actual.Value())
	})

	t.Run("code normalization", func(t *testing.T) {
		actual, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) {
			b.Code = "  save10  "
		}).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "SAVE10", actual.Code().String())
	})

	t.Run("construction validation", func(t *testing.T) {
		runConstructionCases(t, []constructionCase{
			{
				name:   "code too short",
				mutate: func(b *builder.CouponBuilder) { b.Code = "AB" },
				errIs:  coupon.ErrInvalidCouponCode,
			},
			{
				name:   "code with punctuation",
				mutate: func(b *builder.CouponBuilder) { b.Code = "SAVE-10" },
				errIs:  coupon.ErrInvalidCouponCode,
			},
			{
				name:   "unknown type",
				mutate: func(b *builder.CouponBuilder) { b.Type = coupon.Type("bogo") },
				errIs:  coupon.ErrInvalidCouponType,
			},
			{
				name:   "zero value",
				mutate: func(b *builder.CouponBuilder) { b.Value = 0 },
				errIs:  coupon.ErrInvalidValue,
			},
			{
				name:   "negative value",
				mutate: func(b *builder.CouponBuilder) { b.Value = -5 },
				errIs:  coupon.ErrInvalidValue,
			},
			{
				name:   "percentage above 100",
				mutate: func(b *builder.CouponBuilder) { b.Value = 101 },
				errIs:  coupon.ErrInvalidPercentage,
			},
			{
				name:   "fixed value above 100 is fine",
				mutate: func(b *builder.CouponBuilder) { b.WithFixed(150) },
			},
			{
				name:   "maximum valid percentage",
				mutate: func(b *builder.CouponBuilder) { b.Value = 100 },
			},
		})
	})
}

func TestDiscount(t *testing.T) {
	testCases := []struct {
		name     string
		build    func() *builder.CouponBuilder
		subtotal float64
		want     float64
	}{
		{
			name:     "percentage of subtotal",
			build:    func() *builder.CouponBuilder { return builder.NewCouponBuilder().WithPercentage(10) },
			subtotal: 100,
			want:     10,
		},
		{
			name: "percentage capped by max discount",
			build: func() *builder.CouponBuilder {
				return builder.NewCouponBuilder().WithPercentage(50).WithMaxDiscount(20)
			},
			subtotal: 100,
			want:     20,
		},
		{
			name:     "fixed amount",
			build:    func() *builder.CouponBuilder { return builder.NewCouponBuilder().WithFixed(25) },
			subtotal: 100,
			want:     25,
		},
		{
			name:     "fixed amount clamped at subtotal",
			build:    func() *builder.CouponBuilder { return builder.NewCouponBuilder().WithFixed(500) },
			subtotal: 100,
			want:     100,
		},
		{
			name: "subtotal below minimum is ineligible, not an error",
			build: func() *builder.CouponBuilder {
				return builder.NewCouponBuilder().WithPercentage(10).WithMinAmount(50)
			},
			subtotal: 49.99,
			want:     0,
		},
		{
			name: "subtotal exactly at the minimum qualifies",
			build: func() *builder.CouponBuilder {
				return builder.NewCouponBuilder().WithPercentage(10).WithMinAmount(50)
			},
			subtotal: 50,
			want:     5,
		},
		{
			name:     "zero subtotal gets no discount",
			build:    func() *builder.CouponBuilder { return builder.NewCouponBuilder().WithPercentage(10) },
			subtotal: 0,
			want:     0,
		},
		{
			name:     "discount rounds to two decimals",
			build:    func() *builder.CouponBuilder { return builder.NewCouponBuilder().WithPercentage(15) },
			subtotal: 33.33,
			want:     5.00,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cpn, err := tc.build().BuildDomain()
			require.NoError(t, err)

			got := cpn.Discount(tc.subtotal)

			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, tc.subtotal)
		})
	}
}

func runConstructionCases(t *testing.T, cases []constructionCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCouponBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
