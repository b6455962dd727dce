package shared

import (
	"context"
	"time"

	"shopcore/internal/domain/order"
	"shopcore/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
	Carts() CartRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	CartByKey(ctx context.Context, key uuid.UUID) (*CartSnapshot, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

// Minimal snapshots for command read operations

type ProductSnapshot struct {
	ID            uuid.UUID
	Name          string
	Image         string
	Price         float64
	OriginalPrice *float64
	Stock         int
	InStock       bool
}

type CouponSnapshot struct {
	Code        string
	Type        string
	Value       float64
	MinAmount   *float64
	MaxDiscount *float64
}

type CartItemSnapshot struct {
	ProductID uuid.UUID
	Quantity  int
	Price     float64
	Name      string
	Image     string
}

type CartSnapshot struct {
	Key   uuid.UUID
	Items []CartItemSnapshot
}

type OrderSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Items       []CartItemSnapshot
	TotalAmount float64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

type ProductRepository interface {
	// DeductStock issues a conditional update guarded by the current stock
	// value, so concurrent checkouts can never oversell a product.
	DeductStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int) (int, error)
	RestoreStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int) (int, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	// UpdateStatus transitions only when the stored status still matches
	// expected (optimistic compare-and-transition).
	UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, expected, next order.Status, updatedAt time.Time) error
}

type CartRepository interface {
	Save(ctx context.Context, tx db.DBTX, snapshot *CartSnapshot) error
	Delete(ctx context.Context, tx db.DBTX, key uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key, reclaiming expired rows; it reports false
	// when a live key is already held.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, orderID uuid.UUID) error
	// Delete releases a claimed key after a failed attempt.
	Delete(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error
}
