package request

type CheckoutRequest struct {
	CouponCode *string `json:"coupon_code,omitempty"`
}

func (r CheckoutRequest) GetCouponCode() *string {
	return normalizeCouponCode(r.CouponCode)
}
