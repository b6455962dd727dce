package commands

import (
	"context"

	"shopcore/internal/domain/cart"
	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/queries"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

// OrderCommands drives the fulfillment lifecycle. Status moves one step at a
// time along pending -> processing -> shipped -> delivered, with cancellation
// allowed from the first two states only.
type OrderCommands interface {
	AdvanceStatus(ctx context.Context, orderID uuid.UUID) (*queries.OrderView, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*queries.OrderView, error)
}

type orderCommandsImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
	clock        clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, orderQueries queries.OrderQueries, clock clock.Clock) OrderCommands {
	return &orderCommandsImpl{
		uow:          uow,
		orderQueries: orderQueries,
		clock:        clock,
	}
}

func (c *orderCommandsImpl) AdvanceStatus(ctx context.Context, orderID uuid.UUID) (*queries.OrderView, error) {
	snap, err := c.loadSnapshot(ctx, orderID)
	if err != nil {
		return nil, err
	}

	entity := orderFromSnapshot(snap)
	prev := entity.Status()
	next, err := entity.Advance(c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if uerr := tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, prev, next, entity.UpdatedAt()); uerr != nil {
			if infra.IsKind(uerr, infra.KindConflict) {
				return errs.Mark(uerr, errs.ErrIllegalTransition)
			}
			return errs.Mark(uerr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.orderQueries.GetByIDSystem(ctx, orderID)
}

func (c *orderCommandsImpl) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*queries.OrderView, error) {
	snap, err := c.loadSnapshot(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if snap.UserID != userID {
		// Treat other users' orders as nonexistent.
		return nil, errs.ErrOrderNotFound
	}

	entity := orderFromSnapshot(snap)
	prev := entity.Status()
	if err := entity.Cancel(c.clock.Now()); err != nil {
		return nil, err
	}

	// Stock restoration and the status flip commit together, so a lost race
	// against a concurrent advance leaves inventory untouched.
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if uerr := tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, prev, order.StatusCancelled, entity.UpdatedAt()); uerr != nil {
			if infra.IsKind(uerr, infra.KindConflict) {
				return errs.Mark(uerr, errs.ErrIllegalTransition)
			}
			return errs.Mark(uerr, errs.ErrDatabaseOperationFailed)
		}

		for _, item := range entity.Items() {
			if _, rerr := tx.Products().RestoreStock(ctx, tx.DB(), item.ProductID(), item.Quantity()); rerr != nil {
				return errs.Mark(rerr, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.orderQueries.GetByIDSystem(ctx, orderID)
}

func (c *orderCommandsImpl) loadSnapshot(ctx context.Context, orderID uuid.UUID) (*shared.OrderSnapshot, error) {
	snap, err := c.uow.CommandReads().OrderByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func orderFromSnapshot(snap *shared.OrderSnapshot) *order.Order {
	items := make([]cart.LineItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, cart.ReconstructLineItem(it.ProductID, it.Quantity, it.Price, it.Name, it.Image))
	}
	return order.ReconstructOrder(
		snap.ID, snap.UserID, items, snap.TotalAmount,
		order.Status(snap.Status), snap.CreatedAt, snap.UpdatedAt,
	)
}
