package commands

import (
	"context"

	"shopcore/internal/domain/cart"
	"shopcore/internal/domain/inventory"
	"shopcore/internal/domain/product"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/queries"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartCommands interface {
	AddItem(ctx context.Context, key, productID uuid.UUID, quantity int) (*queries.CartView, error)
	// UpdateItemQuantity mirrors the storefront contract: quantity below 1
	// removes the item, an absent product id is a silent no-op.
	UpdateItemQuantity(ctx context.Context, key, productID uuid.UUID, quantity int) (*queries.CartView, error)
	RemoveItem(ctx context.Context, key, productID uuid.UUID) (*queries.CartView, error)
	Clear(ctx context.Context, key uuid.UUID) error
}

type cartCommandsImpl struct {
	uow         shared.UnitOfWork
	cartQueries queries.CartQueries
	ledger      *inventory.Ledger
}

func NewCartCommands(uow shared.UnitOfWork, cartQueries queries.CartQueries, ledger *inventory.Ledger) CartCommands {
	return &cartCommandsImpl{
		uow:         uow,
		cartQueries: cartQueries,
		ledger:      ledger,
	}
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, key, productID uuid.UUID, quantity int) (*queries.CartView, error) {
	if quantity < 1 {
		return nil, errs.ErrInvalidQuantity
	}

	snap, err := c.uow.CommandReads().ProductByID(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	productEntity := product.ReconstructProduct(
		snap.ID, snap.Name, snap.Image, snap.Price, snap.OriginalPrice, snap.Stock, snap.InStock,
	)
	if !c.ledger.CheckStock(productEntity, quantity) {
		return nil, errs.ErrInsufficientStock
	}

	err = c.mutateCart(ctx, key, func(aggregate *cart.Cart) error {
		return aggregate.Add(productEntity, quantity)
	})
	if err != nil {
		return nil, err
	}

	return c.cartQueries.Get(ctx, key)
}

func (c *cartCommandsImpl) UpdateItemQuantity(ctx context.Context, key, productID uuid.UUID, quantity int) (*queries.CartView, error) {
	err := c.mutateCart(ctx, key, func(aggregate *cart.Cart) error {
		aggregate.UpdateQuantity(productID, quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.cartQueries.Get(ctx, key)
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, key, productID uuid.UUID) (*queries.CartView, error) {
	err := c.mutateCart(ctx, key, func(aggregate *cart.Cart) error {
		aggregate.Remove(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.cartQueries.Get(ctx, key)
}

func (c *cartCommandsImpl) Clear(ctx context.Context, key uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Carts().Delete(ctx, tx.DB(), key)
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// mutateCart runs a load-mutate-save cycle in one transaction so concurrent
// mutations of the same cart cannot lose updates.
func (c *cartCommandsImpl) mutateCart(ctx context.Context, key uuid.UUID, mutate func(*cart.Cart) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		aggregate, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}

		if err := mutate(aggregate); err != nil {
			return err
		}

		return tx.Carts().Save(ctx, tx.DB(), cartToSnapshot(key, aggregate))
	})
}

func loadCart(ctx context.Context, tx shared.Tx, key uuid.UUID) (*cart.Cart, error) {
	snap, err := tx.Reads().CartByKey(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return cart.NewCart(), nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snapshotToCart(snap), nil
}

func snapshotToCart(snap *shared.CartSnapshot) *cart.Cart {
	items := make([]cart.LineItem, len(snap.Items))
	for i, item := range snap.Items {
		items[i] = cart.ReconstructLineItem(item.ProductID, item.Quantity, item.Price, item.Name, item.Image)
	}
	return cart.ReconstructCart(items)
}

func cartToSnapshot(key uuid.UUID, aggregate *cart.Cart) *shared.CartSnapshot {
	lineItems := aggregate.Items()
	items := make([]shared.CartItemSnapshot, len(lineItems))
	for i, item := range lineItems {
		items[i] = shared.CartItemSnapshot{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
			Name:      item.Name(),
			Image:     item.Image(),
		}
	}
	return &shared.CartSnapshot{Key: key, Items: items}
}
