package response

import (
	"time"

	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"userId"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount float64             `json:"totalAmount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type OrderItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
}

type OrderListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromOrderView(view *queries.OrderView) (*OrderResponse, error) {
	resp := &OrderResponse{Items: []OrderItemResponse{}}
	if err := copier.Copy(resp, view); err != nil {
		return nil, errs.Wrap(err, "failed to map order view")
	}
	return resp, nil
}

func FromOrderList(items []*queries.OrderListItem) ([]*OrderListItemResponse, error) {
	resp := make([]*OrderListItemResponse, len(items))
	for i, item := range items {
		r := &OrderListItemResponse{}
		if err := copier.Copy(r, item); err != nil {
			return nil, errs.Wrap(err, "failed to map order list item")
		}
		resp[i] = r
	}
	return resp, nil
}
