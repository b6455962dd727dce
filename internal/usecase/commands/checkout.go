package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"shopcore/internal/domain/cart"
	"shopcore/internal/domain/coupon"
	"shopcore/internal/domain/inventory"
	"shopcore/internal/domain/order"
	"shopcore/internal/domain/pricing"
	"shopcore/internal/domain/product"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/queries"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckoutResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

// CheckoutCommands turns a cart into a confirmed order. Stock deduction and
// order creation are transactional: either every line item deducts and the
// order exists, or nothing happened.
type CheckoutCommands interface {
	Checkout(ctx context.Context, userID uuid.UUID, couponCode *string, idempotencyKey uuid.UUID) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
	calculator   pricing.Calculator
	ledger       *inventory.Ledger
	clock        clock.Clock
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	orderQueries queries.OrderQueries,
	calculator pricing.Calculator,
	ledger *inventory.Ledger,
	clock clock.Clock,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:          uow,
		orderQueries: orderQueries,
		calculator:   calculator,
		ledger:       ledger,
		clock:        clock,
	}
}

func (c *checkoutCommandsImpl) Checkout(ctx context.Context, userID uuid.UUID, couponCode *string, idempotencyKey uuid.UUID) (*CheckoutResult, error) {
	requestHash := c.calculateRequestHash(userID, couponCode)
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CheckoutResult{Order: replayed, IsReplayed: true}, nil
	}

	orderView, err := c.confirmOrder(ctx, userID, couponCode, idempotencyKey)
	if err != nil {
		// Release the claim so the client can retry immediately instead of
		// waiting out the key expiry. Best effort: an expired leftover is
		// reclaimed by TryInsert anyway.
		c.releaseIdempotencyKey(ctx, idempotencyKey, userID)
		return nil, err
	}
	return &CheckoutResult{Order: orderView, IsReplayed: false}, nil
}

func (c *checkoutCommandsImpl) releaseIdempotencyKey(ctx context.Context, idempotencyKey, userID uuid.UUID) {
	_ = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Delete(ctx, tx.DB(), idempotencyKey, userID)
	})
}

func (c *checkoutCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.OrderView, error) {
	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ierr error
		inserted, ierr = tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, userID, "POST /checkout", requestHash, expiresAt)
		return ierr
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, userID)
	if err != nil {
		// The row expired or was released between the claim attempt and the
		// read; the client's retry will take it.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrIdempotencyInProgress
		}
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.RequestHash != requestHash {
			return nil, errs.ErrDuplicateCheckout
		}
		if existing.ResultOrderID == nil {
			return nil, errs.New("completed checkout missing result order id")
		}
		return c.orderQueries.GetByIDSystem(ctx, *existing.ResultOrderID)

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, errs.ErrDuplicateCheckout
		}
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *checkoutCommandsImpl) confirmOrder(
	ctx context.Context,
	userID uuid.UUID,
	couponCode *string,
	idempotencyKey uuid.UUID,
) (*queries.OrderView, error) {
	reads := c.uow.CommandReads()

	cartSnap, err := reads.CartByKey(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrEmptyCart
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(cartSnap.Items) == 0 {
		return nil, errs.ErrEmptyCart
	}

	// Order items are frozen from the live catalog record at confirmation,
	// not from the possibly stale cart snapshot.
	items := make([]cart.LineItem, 0, len(cartSnap.Items))
	livePrices := make(map[uuid.UUID]float64, len(cartSnap.Items))
	for _, cartItem := range cartSnap.Items {
		snap, perr := reads.ProductByID(ctx, cartItem.ProductID)
		if perr != nil {
			if infra.IsKind(perr, infra.KindNotFound) {
				return nil, errs.ErrProductNotFound
			}
			return nil, errs.Mark(perr, errs.ErrDatabaseOperationFailed)
		}

		productEntity := product.ReconstructProduct(
			snap.ID, snap.Name, snap.Image, snap.Price, snap.OriginalPrice, snap.Stock, snap.InStock,
		)
		// Domain-level deduction validates against the snapshot before the
		// transaction; the conditional update below is the final authority.
		if res := c.ledger.DeductStock(productEntity, cartItem.Quantity); !res.Success {
			return nil, errs.Mark(res.Err, errs.ErrInsufficientStock)
		}
		item, ierr := cart.NewLineItem(productEntity, cartItem.Quantity)
		if ierr != nil {
			return nil, errs.Mark(ierr, errs.ErrDomainValidation)
		}
		items = append(items, item)
		livePrices[snap.ID] = snap.Price
	}

	cpn, err := c.resolveCoupon(ctx, couponCode)
	if err != nil {
		return nil, err
	}

	quote := c.calculator.ComputeTotal(items, livePrices, cpn)

	now := c.clock.Now()
	orderEntity, err := order.NewOrder(userID, items, quote.Total, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, item := range orderEntity.Items() {
			if _, derr := tx.Products().DeductStock(ctx, tx.DB(), item.ProductID(), item.Quantity()); derr != nil {
				switch {
				case infra.IsKind(derr, infra.KindConflict):
					return errs.Mark(derr, errs.ErrInsufficientStock)
				case infra.IsKind(derr, infra.KindNotFound):
					return errs.Mark(derr, errs.ErrProductNotFound)
				default:
					return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
				}
			}
		}

		orderID, cerr := tx.Orders().Create(ctx, tx.DB(), orderEntity)
		if cerr != nil {
			return errs.Mark(cerr, errs.ErrDatabaseOperationFailed)
		}

		if derr := tx.Carts().Delete(ctx, tx.DB(), userID); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		resultHash := c.calculateIDHash(orderID)
		if uerr := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, resultHash, orderID); uerr != nil {
			return errs.Mark(uerr, errs.ErrDatabaseOperationFailed)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the committed view
	return c.orderQueries.GetByIDSystem(ctx, orderEntity.ID())
}

func (c *checkoutCommandsImpl) resolveCoupon(ctx context.Context, code *string) (*coupon.Coupon, error) {
	if code == nil {
		return nil, nil
	}

	snap, err := c.uow.CommandReads().CouponByCode(ctx, *code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCouponNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	cpn, err := coupon.NewCoupon(snap.Code, coupon.Type(snap.Type), snap.Value, snap.MinAmount, snap.MaxDiscount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCoupon)
	}
	return cpn, nil
}

func (c *checkoutCommandsImpl) calculateRequestHash(userID uuid.UUID, couponCode *string) string {
	payload := struct {
		UserID     uuid.UUID `json:"user_id"`
		CouponCode *string   `json:"coupon_code"`
	}{UserID: userID, CouponCode: couponCode}

	data, _ := json.Marshal(payload)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (c *checkoutCommandsImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
