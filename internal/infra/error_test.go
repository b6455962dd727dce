//go:build unit

package infra_test

import (
	"testing"

	"shopcore/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	t.Run("defaults to DB_FAILURE", func(t *testing.T) {
		err := infra.WrapRepoErr("query products", pgx.ErrNoRows)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.False(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("explicit kind wins", func(t *testing.T) {
		err := infra.WrapRepoErr("product not found", nil, infra.KindNotFound)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("message includes kind and cause", func(t *testing.T) {
		err := infra.WrapRepoErr("fetch cart", pgx.ErrNoRows, infra.KindNotFound)

		assert.Contains(t, err.Error(), "NOT_FOUND")
		assert.Contains(t, err.Error(), "fetch cart")
		assert.Contains(t, err.Error(), pgx.ErrNoRows.Error())
	})

	t.Run("nil cause still carries the kind", func(t *testing.T) {
		err := infra.WrapRepoErr("stock conflict", nil, infra.KindConflict)

		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.Equal(t, "CONFLICT: stock conflict", err.Error())
	})
}

func TestIsKind(t *testing.T) {
	t.Run("plain errors match nothing", func(t *testing.T) {
		assert.False(t, infra.IsKind(pgx.ErrNoRows, infra.KindNotFound))
	})

	t.Run("nil matches nothing", func(t *testing.T) {
		assert.False(t, infra.IsKind(nil, infra.KindDBFailure))
	})
}
