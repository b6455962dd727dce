package queries

import (
	"context"

	"shopcore/internal/domain/cart"
	"shopcore/internal/domain/coupon"
	"shopcore/internal/domain/pricing"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartView struct {
	Items     []CartItemView `json:"items"`
	ItemCount int            `json:"item_count"`
	Pricing   pricing.Result `json:"pricing"`
}

type CartItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
}

type CartQueries interface {
	// Get returns the cart with an uncouponed quote. An absent cart reads as
	// an empty one.
	Get(ctx context.Context, key uuid.UUID) (*CartView, error)
	// Quote reprices the cart with an optional coupon code. The result is
	// recomputed on every call and never persisted.
	Quote(ctx context.Context, key uuid.UUID, couponCode *string) (*CartView, error)
}

type CartReadStore interface {
	FindByKey(ctx context.Context, key uuid.UUID) (*shared.CartSnapshot, error)
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error)
}

type CouponReadStore interface {
	FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error)
}

type cartQueriesImpl struct {
	carts      CartReadStore
	products   ProductReadStore
	coupons    CouponReadStore
	calculator pricing.Calculator
}

func NewCartQueries(carts CartReadStore, products ProductReadStore, coupons CouponReadStore, calculator pricing.Calculator) CartQueries {
	return &cartQueriesImpl{
		carts:      carts,
		products:   products,
		coupons:    coupons,
		calculator: calculator,
	}
}

func (q *cartQueriesImpl) Get(ctx context.Context, key uuid.UUID) (*CartView, error) {
	return q.Quote(ctx, key, nil)
}

func (q *cartQueriesImpl) Quote(ctx context.Context, key uuid.UUID, couponCode *string) (*CartView, error) {
	snap, err := q.carts.FindByKey(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &CartView{Items: []CartItemView{}}, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items := make([]cart.LineItem, len(snap.Items))
	views := make([]CartItemView, len(snap.Items))
	livePrices := make(map[uuid.UUID]float64, len(snap.Items))
	for i, item := range snap.Items {
		items[i] = cart.ReconstructLineItem(item.ProductID, item.Quantity, item.Price, item.Name, item.Image)
		views[i] = CartItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      item.Name,
			Image:     item.Image,
		}

		// Quotes prefer the live catalog price over the add-time snapshot;
		// a product gone from the catalog falls back to the snapshot.
		p, perr := q.products.FindByID(ctx, item.ProductID)
		if perr == nil {
			livePrices[item.ProductID] = p.Price
			views[i].Price = p.Price
		} else if !infra.IsKind(perr, infra.KindNotFound) {
			return nil, errs.Mark(perr, errs.ErrDatabaseOperationFailed)
		}
	}

	cpn, err := q.resolveCoupon(ctx, couponCode)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		Items:   views,
		Pricing: q.calculator.ComputeTotal(items, livePrices, cpn),
	}
	for _, item := range items {
		view.ItemCount += item.Quantity()
	}
	return view, nil
}

func (q *cartQueriesImpl) resolveCoupon(ctx context.Context, code *string) (*coupon.Coupon, error) {
	if code == nil {
		return nil, nil
	}

	snap, err := q.coupons.FindByCode(ctx, *code)
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
