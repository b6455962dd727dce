package repository

import (
	"context"
	"errors"

	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const findProductByIDQuery = `
	SELECT id, name, image, price, original_price, stock, in_stock
	FROM products
	WHERE id = $1
`

func (r *ProductRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var snap shared.ProductSnapshot
	err := dbtx.QueryRow(ctx, findProductByIDQuery, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.Image,
		&snap.Price,
		&snap.OriginalPrice,
		&snap.Stock,
		&snap.InStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by id", err)
	}

	return &snap, nil
}

// The guard `stock >= $2` makes check-and-deduct a single atomic statement;
// in_stock is recomputed from the post-deduction count, never hand-set.
const deductStockQuery = `
	UPDATE products
	SET stock = stock - $2,
	    in_stock = (stock - $2) > 0,
	    updated_at = now()
	WHERE id = $1 AND in_stock AND stock >= $2
	RETURNING stock
`

func (r *ProductRepository) DeductStock(ctx context.Context, dbtx db.DBTX, productID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, infra.WrapRepoErr("deduct quantity must be positive", nil, infra.KindConflict)
	}

	var stock int
	err := dbtx.QueryRow(ctx, deductStockQuery, productID, quantity).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing product from an insufficient one.
			if _, findErr := r.FindByID(ctx, dbtx, productID); infra.IsKind(findErr, infra.KindNotFound) {
				return 0, findErr
			}
			return 0, infra.WrapRepoErr("insufficient stock", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to deduct stock", err)
	}

	return stock, nil
}

const restoreStockQuery = `
	UPDATE products
	SET stock = stock + $2,
	    in_stock = TRUE,
	    updated_at = now()
	WHERE id = $1
	RETURNING stock
`

func (r *ProductRepository) RestoreStock(ctx context.Context, dbtx db.DBTX, productID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, infra.WrapRepoErr("restore quantity must be positive", nil, infra.KindConflict)
	}

	var stock int
	err := dbtx.QueryRow(ctx, restoreStockQuery, productID, quantity).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to restore stock", err)
	}

	return stock, nil
}
