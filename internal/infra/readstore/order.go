package readstore

import (
	"context"

	"shopcore/internal/infra/repository"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderReadStore struct {
	pool *pgxpool.Pool
	repo *repository.OrderRepository
}

func NewOrderReadStore(pool *pgxpool.Pool) *OrderReadStore {
	return &OrderReadStore{
		pool: pool,
		repo: repository.NewOrderRepository(),
	}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	return s.repo.FindByID(ctx, s.pool, id)
}

func (s *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*shared.OrderSnapshot, error) {
	return s.repo.FindByUserID(ctx, s.pool, userID)
}
