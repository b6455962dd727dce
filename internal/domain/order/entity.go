package order

import (
	"time"

	"shopcore/internal/domain/cart"
	"shopcore/internal/pkg/errs"

	"github.com/google/uuid"
)

// Order is created at checkout confirmation from a cart and pricing snapshot.
// Items are a frozen copy; status only moves through lifecycle transitions
// and an order is never deleted, only terminally statused.
type Order struct {
	id          uuid.UUID
	userID      uuid.UUID
	items       []cart.LineItem
	totalAmount float64
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewOrder(userID uuid.UUID, items []cart.LineItem, totalAmount float64, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, errs.ErrEmptyCart
	}

	frozen := make([]cart.LineItem, len(items))
	copy(frozen, items)

	return &Order{
		id:          uuid.New(),
		userID:      userID,
		items:       frozen,
		totalAmount: totalAmount,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructOrder(id, userID uuid.UUID, items []cart.LineItem, totalAmount float64, status Status, createdAt, updatedAt time.Time) *Order {
	return &Order{
		id:          id,
		userID:      userID,
		items:       items,
		totalAmount: totalAmount,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) UserID() uuid.UUID    { return o.userID }
func (o *Order) TotalAmount() float64 { return o.totalAmount }
func (o *Order) Status() Status       { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) Items() []cart.LineItem {
	out := make([]cart.LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// Advance moves the order exactly one step along the fulfillment path.
// Transitions never skip states or move backward except into cancelled.
func (o *Order) Advance(now time.Time) (Status, error) {
	next, ok := o.status.Next()
	if !ok {
		return o.status, errs.ErrIllegalTransition
	}
	o.status = next
	o.updatedAt = now
	return next, nil
}

// Cancel is allowed from pending or processing only. Stock restoration for
// the order's line items is the caller's responsibility; the entity records
// the transition.
func (o *Order) Cancel(now time.Time) error {
	if !o.status.CanCancel() {
		return errs.ErrIllegalTransition
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

func (o *Order) IsCompleted() bool {
	return o.status.IsCompleted()
}
