//go:build unit

package commands_test

import (
	"context"
	"time"

	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Postgres-backed unit of work.
// fakeUoW snapshots it before every Within block and restores it on error,
// so the all-or-nothing behavior of the real transaction holds.
type fakeStore struct {
	products map[uuid.UUID]*shared.ProductSnapshot
	coupons  map[string]*shared.CouponSnapshot
	carts    map[uuid.UUID]*shared.CartSnapshot
	orders   map[uuid.UUID]*shared.OrderSnapshot
	keys     map[uuid.UUID]*shared.IdempotencyRecord

	// deductConflicts makes the conditional stock update lose for a product,
	// simulating a concurrent checkout winning the row.
	deductConflicts map[uuid.UUID]bool
	// statusConflict makes every status compare-and-transition match no row.
	statusConflict bool
	// restoreFailure makes stock restoration fail mid-transaction.
	restoreFailure bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:        make(map[uuid.UUID]*shared.ProductSnapshot),
		coupons:         make(map[string]*shared.CouponSnapshot),
		carts:           make(map[uuid.UUID]*shared.CartSnapshot),
		orders:          make(map[uuid.UUID]*shared.OrderSnapshot),
		keys:            make(map[uuid.UUID]*shared.IdempotencyRecord),
		deductConflicts: make(map[uuid.UUID]bool),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for code, cpn := range s.coupons {
		cc := *cpn
		c.coupons[code] = &cc
	}
	for key, cart := range s.carts {
		c.carts[key] = copyCartSnapshot(cart)
	}
	for id, o := range s.orders {
		c.orders[id] = copyOrderSnapshot(o)
	}
	for key, rec := range s.keys {
		cr := *rec
		c.keys[key] = &cr
	}
	c.deductConflicts = s.deductConflicts
	c.statusConflict = s.statusConflict
	c.restoreFailure = s.restoreFailure
	return c
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.coupons = from.coupons
	s.carts = from.carts
	s.orders = from.orders
	s.keys = from.keys
}

func copyCartSnapshot(snap *shared.CartSnapshot) *shared.CartSnapshot {
	c := *snap
	c.Items = append([]shared.CartItemSnapshot(nil), snap.Items...)
	return &c
}

func copyOrderSnapshot(snap *shared.OrderSnapshot) *shared.OrderSnapshot {
	c := *snap
	c.Items = append([]shared.CartItemSnapshot(nil), snap.Items...)
	return &c
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	saved := u.store.clone()
	if err := fn(ctx, &fakeTx{store: u.store}); err != nil {
		u.store.restore(saved)
		return err
	}
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Products() shared.ProductRepository       { return &fakeProducts{store: t.store} }
func (t *fakeTx) Orders() shared.OrderRepository           { return &fakeOrders{store: t.store} }
func (t *fakeTx) Carts() shared.CartRepository             { return &fakeCarts{store: t.store} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository { return &fakeIdempotency{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads               { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                              { return nil }

// fakeReads serves both the command-side reads and the read-store interfaces
// consumed by the queries layer.
type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	cpn, ok := r.store.coupons[code]
	if !ok {
		return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	cc := *cpn
	return &cc, nil
}

func (r *fakeReads) CartByKey(_ context.Context, key uuid.UUID) (*shared.CartSnapshot, error) {
	snap, ok := r.store.carts[key]
	if !ok {
		return nil, infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	return copyCartSnapshot(snap), nil
}

func (r *fakeReads) OrderByID(_ context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	snap, ok := r.store.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return copyOrderSnapshot(snap), nil
}

func (r *fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.store.keys[key]
	if !ok || rec.UserID != userID {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	if time.Now().After(rec.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}
	cr := *rec
	return &cr, nil
}

// Read-store views over the same state, for queries.New*Queries.

func (r *fakeReads) FindByKey(ctx context.Context, key uuid.UUID) (*shared.CartSnapshot, error) {
	return r.CartByKey(ctx, key)
}

func (r *fakeReads) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	return r.ProductByID(ctx, id)
}

func (r *fakeReads) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	return r.CouponByCode(ctx, code)
}

// fakeOrderViews backs queries.OrderViewRepo; it is a separate type because
// its FindByID returns order snapshots, not product snapshots.
type fakeOrderViews struct {
	store *fakeStore
}

func (r *fakeOrderViews) FindByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	return (&fakeReads{store: r.store}).OrderByID(ctx, id)
}

func (r *fakeOrderViews) FindByUserID(_ context.Context, userID uuid.UUID) ([]*shared.OrderSnapshot, error) {
	var snaps []*shared.OrderSnapshot
	for _, snap := range r.store.orders {
		if snap.UserID == userID {
			snaps = append(snaps, copyOrderSnapshot(snap))
		}
	}
	return snaps, nil
}

type fakeProducts struct {
	store *fakeStore
}

func (f *fakeProducts) DeductStock(_ context.Context, _ db.DBTX, productID uuid.UUID, quantity int) (int, error) {
	p, ok := f.store.products[productID]
	if !ok {
		return 0, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	if f.store.deductConflicts[productID] || !p.InStock || p.Stock < quantity {
		return 0, infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	p.Stock -= quantity
	p.InStock = p.Stock > 0
	return p.Stock, nil
}

func (f *fakeProducts) RestoreStock(_ context.Context, _ db.DBTX, productID uuid.UUID, quantity int) (int, error) {
	if f.store.restoreFailure {
		return 0, infra.WrapRepoErr("restore failed", nil, infra.KindDBFailure)
	}
	p, ok := f.store.products[productID]
	if !ok {
		return 0, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	p.Stock += quantity
	p.InStock = true
	return p.Stock, nil
}

type fakeOrders struct {
	store *fakeStore
}

func (f *fakeOrders) Create(_ context.Context, _ db.DBTX, o *order.Order) (uuid.UUID, error) {
	items := make([]shared.CartItemSnapshot, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, shared.CartItemSnapshot{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
			Name:      item.Name(),
			Image:     item.Image(),
		})
	}
	f.store.orders[o.ID()] = &shared.OrderSnapshot{
		ID:          o.ID(),
		UserID:      o.UserID(),
		Items:       items,
		TotalAmount: o.TotalAmount(),
		Status:      string(o.Status()),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
	return o.ID(), nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _ db.DBTX, orderID uuid.UUID, expected, next order.Status, updatedAt time.Time) error {
	o, ok := f.store.orders[orderID]
	if !ok {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	if f.store.statusConflict || o.Status != string(expected) {
		return infra.WrapRepoErr("status precondition no longer holds", nil, infra.KindConflict)
	}
	o.Status = string(next)
	o.UpdatedAt = updatedAt
	return nil
}

type fakeCarts struct {
	store *fakeStore
}

func (f *fakeCarts) Save(_ context.Context, _ db.DBTX, snapshot *shared.CartSnapshot) error {
	f.store.carts[snapshot.Key] = copyCartSnapshot(snapshot)
	return nil
}

func (f *fakeCarts) Delete(_ context.Context, _ db.DBTX, key uuid.UUID) error {
	delete(f.store.carts, key)
	return nil
}

type fakeIdempotency struct {
	store *fakeStore
}

func (f *fakeIdempotency) TryInsert(_ context.Context, _ db.DBTX, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	if rec, ok := f.store.keys[key]; ok && time.Now().Before(rec.ExpiresAt) {
		return false, nil
	}
	// Fresh insert, or reclaim of an expired row.
	f.store.keys[key] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (f *fakeIdempotency) UpdateStatusCompleted(_ context.Context, _ db.DBTX, key, _ uuid.UUID, _ string, orderID uuid.UUID) error {
	rec, ok := f.store.keys[key]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	resultID := orderID
	rec.Status = "completed"
	rec.ResultOrderID = &resultID
	return nil
}

func (f *fakeIdempotency) Delete(_ context.Context, _ db.DBTX, key, _ uuid.UUID) error {
	delete(f.store.keys, key)
	return nil
}
