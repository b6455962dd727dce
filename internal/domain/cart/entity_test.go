//go:build unit

package cart_test

import (
	"testing"

	"shopcore/internal/domain/cart"
	"shopcore/internal/pkg/errs"
	"shopcore/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Add(t *testing.T) {
	t.Run("new product inserts a snapshot line item", func(t *testing.T) {
		c := cart.NewCart()
		p := builder.NewProductBuilder().BuildReconstructed()

		require.NoError(t, c.Add(p, 2))

		item, found := c.Find(p.ID())
		require.True(t, found)
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, p.Price(), item.Price())
		assert.Equal(t, p.Name(), item.Name())
		assert.Equal(t, 1, len(c.Items()))
	})

	t.Run("same product merges quantity into the existing line", func(t *testing.T) {
		c := cart.NewCart()
		p := builder.NewProductBuilder().BuildReconstructed()

		require.NoError(t, c.Add(p, 2))
		require.NoError(t, c.Add(p, 3))

		item, _ := c.Find(p.ID())
		assert.Equal(t, 5, item.Quantity())
		assert.Equal(t, 1, len(c.Items()))
	})

	t.Run("merge keeps the original price snapshot", func(t *testing.T) {
		c := cart.NewCart()
		b := builder.NewProductBuilder()

		require.NoError(t, c.Add(b.BuildReconstructed(), 1))
		require.NoError(t, c.Add(b.WithPrice(99.99).BuildReconstructed(), 1))

		item, _ := c.Find(b.ID)
		assert.Equal(t, 49.99, item.Price())
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		c := cart.NewCart()
		p := builder.NewProductBuilder().BuildReconstructed()

		assert.ErrorIs(t, c.Add(p, 0), errs.ErrInvalidQuantity)
		assert.ErrorIs(t, c.Add(p, -1), errs.ErrInvalidQuantity)
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("sets quantity in place", func(t *testing.T) {
		p := builder.NewProductBuilder().BuildReconstructed()
		c := cart.NewCart()
		require.NoError(t, c.Add(p, 2))

		c.UpdateQuantity(p.ID(), 7)

		item, _ := c.Find(p.ID())
		assert.Equal(t, 7, item.Quantity())
	})

	t.Run("quantity below one removes the line", func(t *testing.T) {
		p := builder.NewProductBuilder().BuildReconstructed()
		c := cart.NewCart()
		require.NoError(t, c.Add(p, 2))

		c.UpdateQuantity(p.ID(), 0)

		assert.True(t, c.IsEmpty())
	})

	t.Run("absent product id is a silent no-op", func(t *testing.T) {
		c := builder.NewCartBuilder().BuildDomain()
		before := c.Items()

		c.UpdateQuantity(uuid.New(), 5)

		assert.Equal(t, before, c.Items())
	})
}

func TestCart_Remove(t *testing.T) {
	t.Run("removes only the matching line", func(t *testing.T) {
		first := builder.NewProductBuilder().BuildReconstructed()
		second := builder.NewProductBuilder().BuildReconstructed()
		c := cart.NewCart()
		require.NoError(t, c.Add(first, 1))
		require.NoError(t, c.Add(second, 1))

		c.Remove(first.ID())

		_, found := c.Find(first.ID())
		assert.False(t, found)
		_, found = c.Find(second.ID())
		assert.True(t, found)
	})

	t.Run("absent product id is a silent no-op", func(t *testing.T) {
		c := builder.NewCartBuilder().BuildDomain()
		before := c.Items()

		c.Remove(uuid.New())

		assert.Equal(t, before, c.Items())
	})
}

func TestCart_Clear(t *testing.T) {
	c := builder.NewCartBuilder().BuildDomain()
	require.False(t, c.IsEmpty())

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_ItemCount(t *testing.T) {
	c := builder.NewCartBuilder().
		Empty().
		AddItem(uuid.New(), 2, 10).
		AddItem(uuid.New(), 3, 20).
		BuildDomain()

	assert.Equal(t, 5, c.ItemCount())
}

func TestCart_OnChange(t *testing.T) {
	p := builder.NewProductBuilder().BuildReconstructed()
	c := cart.NewCart()

	notified := 0
	c.SetOnChange(func(*cart.Cart) { notified++ })

	require.NoError(t, c.Add(p, 1))
	c.UpdateQuantity(p.ID(), 3)
	c.Remove(p.ID())
	c.Clear() // already empty, must not notify

	assert.Equal(t, 3, notified)
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c := builder.NewCartBuilder().BuildDomain()

	items := c.Items()
	items[0] = cart.ReconstructLineItem(uuid.New(), 99, 0, "mutated", "")

	fresh := c.Items()
	assert.NotEqual(t, 99, fresh[0].Quantity())
}
