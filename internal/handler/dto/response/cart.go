package response

import (
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Pricing   PricingResponse    `json:"pricing"`
}

type CartItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
}

type PricingResponse struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

func FromCartView(view *queries.CartView) (*CartResponse, error) {
	resp := &CartResponse{Items: []CartItemResponse{}}
	if err := copier.Copy(resp, view); err != nil {
		return nil, errs.Wrap(err, "failed to map cart view")
	}
	return resp, nil
}
