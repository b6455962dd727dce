package queries

import (
	"context"
	"time"

	"shopcore/internal/infra"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type OrderView struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Items       []OrderItemView `json:"items"`
	TotalAmount float64         `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
}

type OrderListItem struct {
	ID          uuid.UUID `json:"id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*OrderView, error)
	// GetByIDSystem skips the ownership check; for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error)
}

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*shared.OrderSnapshot, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*OrderView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	// Ownership is enforced as not-found to avoid leaking order existence.
	if view.UserID != actor {
		return nil, errs.ErrOrderNotFound
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	snap, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return toOrderView(snap), nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error) {
	snaps, err := q.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items := make([]*OrderListItem, 0, len(snaps))
	for _, snap := range snaps {
		count := 0
		for _, item := range snap.Items {
			count += item.Quantity
		}
		items = append(items, &OrderListItem{
			ID:          snap.ID,
			TotalAmount: snap.TotalAmount,
			Status:      snap.Status,
			ItemCount:   count,
			CreatedAt:   snap.CreatedAt,
		})
	}
	return items, nil
}

func toOrderView(snap *shared.OrderSnapshot) *OrderView {
	items := make([]OrderItemView, len(snap.Items))
	for i, item := range snap.Items {
		items[i] = OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      item.Name,
			Image:     item.Image,
		}
	}

	return &OrderView{
		ID:          snap.ID,
		UserID:      snap.UserID,
		Items:       items,
		TotalAmount: snap.TotalAmount,
		Status:      snap.Status,
		CreatedAt:   snap.CreatedAt,
		UpdatedAt:   snap.UpdatedAt,
	}
}
