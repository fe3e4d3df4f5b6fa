package state

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/storefront-core/internal/action"
	"github.com/example/storefront-core/internal/model"
)

func save10() *model.Coupon {
	return &model.Coupon{Code: "SAVE10", DiscountType: "percent", Amount: decimal.NewFromInt(10)}
}

// ============================================
// Checkout Reducer Tests
// ============================================

func TestReduceCheckout_GotCouponValid(t *testing.T) {
	s := NewCheckoutState()
	s.Coupon = CouponEntry{Invalid: "WRONG"}
	s.CouponError = "previous failure"

	next := ReduceCheckout(s, action.GotCoupon{Valid: save10()})

	assert.NotNil(t, next.Coupon.Valid)
	assert.Equal(t, "SAVE10", next.Coupon.Valid.Code)
	assert.Empty(t, next.Coupon.Invalid)
	assert.Empty(t, next.CouponError)
}

func TestReduceCheckout_GotCouponInvalid(t *testing.T) {
	s := NewCheckoutState()
	s.Coupon = CouponEntry{Valid: save10()}

	next := ReduceCheckout(s, action.GotCoupon{Invalid: "EXPIRED5"})

	assert.Nil(t, next.Coupon.Valid)
	assert.Equal(t, "EXPIRED5", next.Coupon.Invalid)
}

// At most one of Valid/Invalid is ever set, no matter the action sequence.
func TestReduceCheckout_CouponExclusivityInvariant(t *testing.T) {
	sequences := [][]action.Action{
		{action.GotCoupon{Valid: save10()}, action.GotCoupon{Invalid: "NOPE"}},
		{action.GotCoupon{Invalid: "NOPE"}, action.GotCoupon{Valid: save10()}},
		{action.GotCoupon{Valid: save10()}, action.GotCouponData{Coupon: save10()}, action.GotCoupon{Invalid: "X"}},
		{action.GotCoupon{Invalid: "X"}, action.CouponStatus{Message: "failed"}, action.GotCouponData{Coupon: save10()}},
		{action.GotCoupon{}, action.GotCoupon{Valid: save10()}, action.GotCoupon{}},
	}

	for _, seq := range sequences {
		s := NewCheckoutState()
		for _, a := range seq {
			s = ReduceCheckout(s, a)
			if s.Coupon.Valid != nil {
				assert.Empty(t, s.Coupon.Invalid, "both coupon fields set after %T", a)
			}
		}
	}
}

func TestReduceCheckout_GotCouponDataNilIsNoop(t *testing.T) {
	s := NewCheckoutState()
	s.Coupon = CouponEntry{Invalid: "WRONG"}

	next := ReduceCheckout(s, action.GotCouponData{})

	assert.Equal(t, "WRONG", next.Coupon.Invalid)
}

func TestReduceCheckout_CouponStatusKeepsCouponEntry(t *testing.T) {
	s := NewCheckoutState()
	s.Coupon = CouponEntry{Valid: save10()}

	next := ReduceCheckout(s, action.CouponStatus{Message: "coupon rejected"})

	assert.Equal(t, "coupon rejected", next.CouponError)
	assert.NotNil(t, next.Coupon.Valid)
}

func TestReduceCheckout_GotOrderData(t *testing.T) {
	s := NewCheckoutState()

	order := &model.Order{ID: 99, OrderKey: "wc_order_abc", CreatedAt: time.Now()}
	next := ReduceCheckout(s, action.GotOrderData{Order: order})

	assert.Equal(t, int64(99), next.Order.ID)

	// Non-fatal empty result clears the hydrated order
	next = ReduceCheckout(next, action.GotOrderData{})
	assert.Nil(t, next.Order)
}

func TestReduceCheckout_UnknownActionPassesThrough(t *testing.T) {
	s := NewCheckoutState()
	s.Coupon = CouponEntry{Valid: save10()}

	next := ReduceCheckout(s, action.StopSpinner{Label: "buy"})

	assert.Equal(t, s, next)
}
