package readstore

import (
	"context"

	"shopcore/internal/infra/repository"
	"shopcore/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CouponReadStore struct {
	pool *pgxpool.Pool
	repo *repository.CouponRepository
}

func NewCouponReadStore(pool *pgxpool.Pool) *CouponReadStore {
	return &CouponReadStore{
		pool: pool,
		repo: repository.NewCouponRepository(),
	}
}

func (s *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	return s.repo.FindByCode(ctx, s.pool, code)
}
