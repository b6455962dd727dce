package readstore

import (
	"context"

	"shopcore/internal/infra/repository"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartReadStore struct {
	pool *pgxpool.Pool
	repo *repository.CartRepository
}

func NewCartReadStore(pool *pgxpool.Pool) *CartReadStore {
	return &CartReadStore{
		pool: pool,
		repo: repository.NewCartRepository(),
	}
}

func (s *CartReadStore) FindByKey(ctx context.Context, key uuid.UUID) (*shared.CartSnapshot, error) {
	return s.repo.FindByKey(ctx, s.pool, key)
}
