package request

import (
	"strings"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	// Quantities below 1 remove the line instead of erroring.
	Quantity int `json:"quantity"`
}

type QuoteCartRequest struct {
	CouponCode *string `json:"coupon_code,omitempty"`
}

func (r QuoteCartRequest) GetCouponCode() *string {
	return normalizeCouponCode(r.CouponCode)
}

func normalizeCouponCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
