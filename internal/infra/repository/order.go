package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// lineItemRecord is the JSONB shape shared by cart and order line items.
type lineItemRecord struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
}

func lineItemRecordsFromSnapshots(items []shared.CartItemSnapshot) []lineItemRecord {
	records := make([]lineItemRecord, len(items))
	for i, item := range items {
		records[i] = lineItemRecord{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      item.Name,
			Image:     item.Image,
		}
	}
	return records
}

func snapshotsFromLineItemRecords(records []lineItemRecord) []shared.CartItemSnapshot {
	items := make([]shared.CartItemSnapshot, len(records))
	for i, rec := range records {
		items[i] = shared.CartItemSnapshot{
			ProductID: rec.ProductID,
			Quantity:  rec.Quantity,
			Price:     rec.Price,
			Name:      rec.Name,
			Image:     rec.Image,
		}
	}
	return items
}

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const createOrderQuery = `
	INSERT INTO orders (id, user_id, items, total_amount, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
`

func (r *OrderRepository) Create(ctx context.Context, dbtx db.DBTX, o *order.Order) (uuid.UUID, error) {
	records := make([]lineItemRecord, 0, len(o.Items()))
	for _, item := range o.Items() {
		records = append(records, lineItemRecord{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
			Name:      item.Name(),
			Image:     item.Image(),
		})
	}

	itemsJSON, err := json.Marshal(records)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode order items", err)
	}

	var id uuid.UUID
	err = dbtx.QueryRow(ctx, createOrderQuery,
		o.ID(), o.UserID(), itemsJSON, o.TotalAmount(), o.Status().String(), o.CreatedAt(), o.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	return id, nil
}

// The WHERE clause on the expected status makes the transition a
// compare-and-set: a concurrent transition leaves zero rows matched.
const updateOrderStatusQuery = `
	UPDATE orders
	SET status = $3, updated_at = $4
	WHERE id = $1 AND status = $2
`

func (r *OrderRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, expected, next order.Status, updatedAt time.Time) error {
	tag, err := dbtx.Exec(ctx, updateOrderStatusQuery, orderID, expected.String(), next.String(), updatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}

	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}

	return nil
}

const findOrderByIDQuery = `
	SELECT id, user_id, items, total_amount, status, created_at, updated_at
	FROM orders
	WHERE id = $1
`

func (r *OrderRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.OrderSnapshot, error) {
	var (
		snap      shared.OrderSnapshot
		itemsJSON []byte
	)
	err := dbtx.QueryRow(ctx, findOrderByIDQuery, id).Scan(
		&snap.ID,
		&snap.UserID,
		&itemsJSON,
		&snap.TotalAmount,
		&snap.Status,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by id", err)
	}

	var records []lineItemRecord
	if err := json.Unmarshal(itemsJSON, &records); err != nil {
		return nil, infra.WrapRepoErr("failed to decode order items", err)
	}
	snap.Items = snapshotsFromLineItemRecords(records)

	return &snap, nil
}

const findOrdersByUserIDQuery = `
	SELECT id, user_id, items, total_amount, status, created_at, updated_at
	FROM orders
	WHERE user_id = $1
	ORDER BY created_at DESC
`

func (r *OrderRepository) FindByUserID(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*shared.OrderSnapshot, error) {
	rows, err := dbtx.Query(ctx, findOrdersByUserIDQuery, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by user", err)
	}
	defer rows.Close()

	var snaps []*shared.OrderSnapshot
	for rows.Next() {
		var (
			snap      shared.OrderSnapshot
			itemsJSON []byte
		)
		if err := rows.Scan(
			&snap.ID, &snap.UserID, &itemsJSON, &snap.TotalAmount, &snap.Status, &snap.CreatedAt, &snap.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}

		var records []lineItemRecord
		if err := json.Unmarshal(itemsJSON, &records); err != nil {
			return nil, infra.WrapRepoErr("failed to decode order items", err)
		}
		snap.Items = snapshotsFromLineItemRecords(records)
		snaps = append(snaps, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}

	return snaps, nil
}
