//go:build unit

package commands_test

import (
	"context"
	"testing"

	"shopcore/internal/domain/inventory"
	"shopcore/internal/domain/pricing"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"
	"shopcore/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	store *fakeStore
	cmds  commands.CartCommands
}

func newCartFixture() *cartFixture {
	store := newFakeStore()
	uow := &fakeUoW{store: store}
	reads := &fakeReads{store: store}
	cartQueries := queries.NewCartQueries(reads, reads, reads, pricing.NewDefaultCalculator(pricing.DefaultConfig()))
	return &cartFixture{
		store: store,
		cmds:  commands.NewCartCommands(uow, cartQueries, inventory.NewLedger()),
	}
}

func (f *cartFixture) seedProduct(price float64, stock int) uuid.UUID {
	snap := builder.NewProductBuilder().WithPrice(price).WithStock(stock).BuildSnapshot()
	f.store.products[snap.ID] = snap
	return snap.ID
}

func TestCartAddItem(t *testing.T) {
	t.Run("creates the cart on first add", func(t *testing.T) {
		f := newCartFixture()
		key := uuid.New()
		productID := f.seedProduct(49.99, 10)

		view, err := f.cmds.AddItem(context.Background(), key, productID, 2)
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.ItemCount)
		assert.Equal(t, 99.98, view.Pricing.Subtotal)
		assert.Contains(t, f.store.carts, key)
	})

	t.Run("merges quantity for a repeated product", func(t *testing.T) {
		f := newCartFixture()
		key := uuid.New()
		productID := f.seedProduct(49.99, 10)

		_, err := f.cmds.AddItem(context.Background(), key, productID, 2)
		require.NoError(t, err)
		view, err := f.cmds.AddItem(context.Background(), key, productID, 3)
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, 5, view.ItemCount)
	})

	t.Run("error: unknown product", func(t *testing.T) {
		f := newCartFixture()

		_, err := f.cmds.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
		require.ErrorIs(t, err, errs.ErrProductNotFound)
	})

	t.Run("error: quantity beyond available stock", func(t *testing.T) {
		f := newCartFixture()
		key := uuid.New()
		productID := f.seedProduct(49.99, 1)

		_, err := f.cmds.AddItem(context.Background(), key, productID, 2)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.NotContains(t, f.store.carts, key)
	})

	t.Run("error: quantity below one", func(t *testing.T) {
		f := newCartFixture()

		_, err := f.cmds.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
		require.ErrorIs(t, err, errs.ErrInvalidQuantity)
	})
}

func TestCartUpdateItemQuantity(t *testing.T) {
	t.Run("quantity below one removes the line", func(t *testing.T) {
		f := newCartFixture()
		key := uuid.New()
		productID := f.seedProduct(49.99, 10)
		_, err := f.cmds.AddItem(context.Background(), key, productID, 2)
		require.NoError(t, err)

		view, err := f.cmds.UpdateItemQuantity(context.Background(), key, productID, 0)
		require.NoError(t, err)

		assert.Empty(t, view.Items)
	})

	t.Run("absent product is a silent no-op", func(t *testing.T) {
		f := newCartFixture()
		key := uuid.New()
		productID := f.seedProduct(49.99, 10)
		_, err := f.cmds.AddItem(context.Background(), key, productID, 2)
		require.NoError(t, err)

		view, err := f.cmds.UpdateItemQuantity(context.Background(), key, uuid.New(), 5)
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.ItemCount)
	})
}

func TestCartClear(t *testing.T) {
	f := newCartFixture()
	key := uuid.New()
	productID := f.seedProduct(49.99, 10)
	_, err := f.cmds.AddItem(context.Background(), key, productID, 2)
	require.NoError(t, err)

	require.NoError(t, f.cmds.Clear(context.Background(), key))
	assert.NotContains(t, f.store.carts, key)
}
