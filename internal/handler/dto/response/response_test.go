//go:build unit

package response_test

import (
	"testing"
	"time"

	"shopcore/internal/domain/pricing"
	"shopcore/internal/handler/dto/response"
	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCartView(t *testing.T) {
	t.Run("maps every field", func(t *testing.T) {
		productID := uuid.New()
		view := &queries.CartView{
			Items: []queries.CartItemView{
				{ProductID: productID, Quantity: 2, Price: 49.99, Name: "Wireless Headphones", Image: "headphones.jpg"},
			},
			ItemCount: 2,
			Pricing:   pricing.Result{Subtotal: 99.98, Discount: 10, Tax: 11.70, Shipping: 15, Total: 116.68},
		}

		resp, err := response.FromCartView(view)
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, productID, resp.Items[0].ProductID)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.Equal(t, 49.99, resp.Items[0].Price)
		assert.Equal(t, 2, resp.ItemCount)
		assert.Equal(t, 116.68, resp.Pricing.Total)
	})

	t.Run("empty cart keeps a non-nil items slice", func(t *testing.T) {
		resp, err := response.FromCartView(&queries.CartView{})
		require.NoError(t, err)

		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
	})
}

func TestFromOrderView(t *testing.T) {
	now := time.Now()
	view := &queries.OrderView{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Items: []queries.OrderItemView{
			{ProductID: uuid.New(), Quantity: 1, Price: 150, Name: "Mechanical Keyboard", Image: "keyboard.jpg"},
		},
		TotalAmount: 184.50,
		Status:      "pending",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	resp, err := response.FromOrderView(view)
	require.NoError(t, err)

	assert.Equal(t, view.ID, resp.ID)
	assert.Equal(t, view.UserID, resp.UserID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, view.Items[0].ProductID, resp.Items[0].ProductID)
	assert.Equal(t, 184.50, resp.TotalAmount)
	assert.Equal(t, "pending", resp.Status)
}

func TestFromOrderList(t *testing.T) {
	t.Run("maps every item", func(t *testing.T) {
		items := []*queries.OrderListItem{
			{ID: uuid.New(), TotalAmount: 339, Status: "pending", ItemCount: 2, CreatedAt: time.Now()},
			{ID: uuid.New(), TotalAmount: 54.99, Status: "delivered", ItemCount: 1, CreatedAt: time.Now()},
		}

		resp, err := response.FromOrderList(items)
		require.NoError(t, err)

		require.Len(t, resp, 2)
		assert.Equal(t, items[0].ID, resp[0].ID)
		assert.Equal(t, "delivered", resp[1].Status)
	})

	t.Run("empty input yields a non-nil empty slice", func(t *testing.T) {
		resp, err := response.FromOrderList(nil)
		require.NoError(t, err)

		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})
}
