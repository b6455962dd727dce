//go:build unit || e2e

package builder

import (
	"time"

	"shopcore/internal/domain/order"
	"shopcore/internal/usecase/queries"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Cart        *CartBuilder
	TotalAmount float64
	Status      order.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Now()
	return &OrderBuilder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Cart:        NewCartBuilder(),
		TotalAmount: 127.98,
		Status:      order.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithStatus(s order.Status) *OrderBuilder {
	b.Status = s
	return b
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(b.UserID, b.Cart.BuildLineItems(), b.TotalAmount, b.CreatedAt)
}

func (b *OrderBuilder) BuildReconstructed() *order.Order {
	return order.ReconstructOrder(
		b.ID, b.UserID, b.Cart.BuildLineItems(), b.TotalAmount, b.Status, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *OrderBuilder) BuildSnapshot() *shared.OrderSnapshot {
	return &shared.OrderSnapshot{
		ID:          b.ID,
		UserID:      b.UserID,
		Items:       b.Cart.BuildSnapshot().Items,
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	snap := b.BuildSnapshot()
	items := make([]queries.OrderItemView, len(snap.Items))
	for i, item := range snap.Items {
		items[i] = queries.OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      item.Name,
			Image:     item.Image,
		}
	}
	return &queries.OrderView{
		ID:          snap.ID,
		UserID:      snap.UserID,
		Items:       items,
		TotalAmount: snap.TotalAmount,
		Status:      snap.Status,
		CreatedAt:   snap.CreatedAt,
		UpdatedAt:   snap.UpdatedAt,
	}
}
