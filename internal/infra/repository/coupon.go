package repository

import (
	"context"
	"errors"
	"strings"

	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

// CouponRepository reads from the external coupon catalog. Coupons are
// immutable once issued, so there is no write side here.
type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

const findCouponByCodeQuery = `
	SELECT code, type, value, min_amount, max_discount
	FROM coupons
	WHERE code = $1
`

func (r *CouponRepository) FindByCode(ctx context.Context, dbtx db.DBTX, code string) (*shared.CouponSnapshot, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var snap shared.CouponSnapshot
	err := dbtx.QueryRow(ctx, findCouponByCodeQuery, normalized).Scan(
		&snap.Code,
		&snap.Type,
		&snap.Value,
		&snap.MinAmount,
		&snap.MaxDiscount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	return &snap, nil
}
