package readstore

import (
	"context"

	"shopcore/internal/infra/repository"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductReadStore struct {
	pool *pgxpool.Pool
	repo *repository.ProductRepository
}

func NewProductReadStore(pool *pgxpool.Pool) *ProductReadStore {
	return &ProductReadStore{
		pool: pool,
		repo: repository.NewProductRepository(),
	}
}

func (s *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	return s.repo.FindByID(ctx, s.pool, id)
}
