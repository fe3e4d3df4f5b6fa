package state

import (
	"github.com/example/storefront-core/internal/action"
	"github.com/example/storefront-core/internal/model"
)

// CouponEntry holds the outcome of resolving an entered code. At most one of
// Valid and Invalid is set at any time.
type CouponEntry struct {
	Valid   *model.Coupon `json:"valid,omitempty"`
	Invalid string        `json:"invalid,omitempty"`
}

type CheckoutState struct {
	Coupon      CouponEntry  `json:"coupon"`
	CouponError string       `json:"coupon_error,omitempty"` // apply/remove failure message
	Order       *model.Order `json:"order,omitempty"`
}

func NewCheckoutState() CheckoutState {
	return CheckoutState{}
}

// ReduceCheckout returns the next checkout slice.
func ReduceCheckout(s CheckoutState, a action.Action) CheckoutState {
	switch a := a.(type) {
	case action.GotCoupon:
		if a.Valid != nil {
			s.Coupon = CouponEntry{Valid: a.Valid}
		} else {
			s.Coupon = CouponEntry{Invalid: a.Invalid}
		}
		s.CouponError = ""
		return s
	case action.GotCouponData:
		if a.Coupon != nil {
			s.Coupon = CouponEntry{Valid: a.Coupon}
		}
		return s
	case action.CouponStatus:
		s.CouponError = a.Message
		return s
	case action.GotOrderData:
		s.Order = a.Order
		return s
	}
	return s
}
