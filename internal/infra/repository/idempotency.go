package repository

import (
	"context"
	"errors"
	"time"

	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

const tryInsertIdempotencyQuery = `
	INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, 'processing', $5, now(), now())
	ON CONFLICT (key, user_id) DO UPDATE
	SET endpoint = EXCLUDED.endpoint,
	    request_hash = EXCLUDED.request_hash,
	    status = 'processing',
	    result_hash = NULL,
	    result_order_id = NULL,
	    expires_at = EXCLUDED.expires_at,
	    updated_at = now()
	WHERE idempotency_keys.expires_at <= now()
`

// TryInsert claims the key for this request. An expired row is reclaimed as
// if it never existed. It returns false when a live key is already held,
// leaving the stored row untouched.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := dbtx.Exec(ctx, tryInsertIdempotencyQuery, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const getIdempotencyQuery = `
	SELECT key, user_id, status, request_hash, result_order_id, expires_at
	FROM idempotency_keys
	WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) Get(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := dbtx.QueryRow(ctx, getIdempotencyQuery, key, userID).Scan(
		&rec.Key,
		&rec.UserID,
		&rec.Status,
		&rec.RequestHash,
		&rec.ResultOrderID,
		&rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	// Check if key has expired (treat as not found)
	if time.Now().After(rec.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return &rec, nil
}

const deleteIdempotencyQuery = `
	DELETE FROM idempotency_keys
	WHERE key = $1 AND user_id = $2
`

// Delete releases a claimed key so the client can retry immediately instead
// of waiting out the expiry.
func (r *IdempotencyRepository) Delete(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, deleteIdempotencyQuery, key, userID); err != nil {
		return infra.WrapRepoErr("failed to delete idempotency key", err)
	}
	return nil
}

const completeIdempotencyQuery = `
	UPDATE idempotency_keys
	SET status = 'completed', result_hash = $3, result_order_id = $4, updated_at = now()
	WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, resultHash string, orderID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, completeIdempotencyQuery, key, userID, resultHash, orderID); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}
