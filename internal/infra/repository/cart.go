package repository

import (
	"context"
	"encoding/json"
	"errors"

	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CartRepository is the key-value collaborator for cart persistence: one row
// per cart key, line items as JSONB.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

const findCartByKeyQuery = `
	SELECT key, items
	FROM carts
	WHERE key = $1
`

func (r *CartRepository) FindByKey(ctx context.Context, dbtx db.DBTX, key uuid.UUID) (*shared.CartSnapshot, error) {
	var (
		snap      shared.CartSnapshot
		itemsJSON []byte
	)
	err := dbtx.QueryRow(ctx, findCartByKeyQuery, key).Scan(&snap.Key, &itemsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart by key", err)
	}

	var records []lineItemRecord
	if err := json.Unmarshal(itemsJSON, &records); err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart items", err)
	}
	snap.Items = snapshotsFromLineItemRecords(records)

	return &snap, nil
}

const saveCartQuery = `
	INSERT INTO carts (key, items, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE SET items = EXCLUDED.items, updated_at = now()
`

func (r *CartRepository) Save(ctx context.Context, dbtx db.DBTX, snapshot *shared.CartSnapshot) error {
	itemsJSON, err := json.Marshal(lineItemRecordsFromSnapshots(snapshot.Items))
	if err != nil {
		return infra.WrapRepoErr("failed to encode cart items", err)
	}

	if _, err := dbtx.Exec(ctx, saveCartQuery, snapshot.Key, itemsJSON); err != nil {
		return infra.WrapRepoErr("failed to save cart", err)
	}

	return nil
}

const deleteCartQuery = `
	DELETE FROM carts
	WHERE key = $1
`

func (r *CartRepository) Delete(ctx context.Context, dbtx db.DBTX, key uuid.UUID) error {
	// Deleting an absent cart is a no-op, matching the aggregate's clear.
	if _, err := dbtx.Exec(ctx, deleteCartQuery, key); err != nil {
		return infra.WrapRepoErr("failed to delete cart", err)
	}
	return nil
}
