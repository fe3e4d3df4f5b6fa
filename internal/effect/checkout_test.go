package effect

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront-core/internal/action"
	"github.com/example/storefront-core/internal/infrastructure/backend"
	"github.com/example/storefront-core/internal/model"
)

func (r *recorder) snapshot() []action.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]action.Action(nil), r.actions...)
}

func (r *recorder) indexOf(match func(a action.Action) bool) int {
	for i, a := range r.snapshot() {
		if match(a) {
			return i
		}
	}
	return -1
}

var checkoutNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newCheckoutFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.checkout.now = func() time.Time { return checkoutNow }
	return f
}

func catalogCoupons() []backend.WireCoupon {
	future := checkoutNow.Add(30 * 24 * time.Hour)
	past := checkoutNow.Add(-24 * time.Hour)
	return []backend.WireCoupon{
		{Code: "SAVE10", DiscountType: "percent", Amount: decimal.NewFromInt(10), Expiry: &future},
		{Code: "EXPIRED5", DiscountType: "fixed_cart", Amount: decimal.NewFromInt(5), Expiry: &past},
		{Code: "FOREVER", DiscountType: "percent", Amount: decimal.NewFromInt(2)},
	}
}

// ============================================
// Coupon Lookup Tests
// ============================================

func TestCheckoutEffect_FetchCouponsValidCode(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.Coupons = catalogCoupons()

	f.st.Dispatch(context.Background(), action.FetchCoupons{Code: "SAVE10"})
	f.wait()

	entry := f.st.Coupon()
	require.NotNil(t, entry.Valid)
	assert.Equal(t, "SAVE10", entry.Valid.Code)
	assert.Empty(t, entry.Invalid)
	assert.False(t, f.st.CouponLoading())

	// The loading indicator drops before the result lands
	stopIdx := f.rec.indexOf(func(a action.Action) bool {
		l, ok := a.(action.SetCouponLoading)
		return ok && !l.Loading
	})
	resultIdx := f.rec.indexOf(func(a action.Action) bool {
		_, ok := a.(action.GotCoupon)
		return ok
	})
	require.NotEqual(t, -1, stopIdx)
	require.NotEqual(t, -1, resultIdx)
	assert.Less(t, stopIdx, resultIdx)
}

func TestCheckoutEffect_FetchCouponsExpiredCodeIsInvalid(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.Coupons = catalogCoupons()

	f.st.Dispatch(context.Background(), action.FetchCoupons{Code: "EXPIRED5"})
	f.wait()

	entry := f.st.Coupon()
	assert.Nil(t, entry.Valid)
	assert.Equal(t, "EXPIRED5", entry.Invalid)
	assert.False(t, f.st.CouponLoading())
}

func TestCheckoutEffect_FetchCouponsNoExpiryIsValid(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.Coupons = catalogCoupons()

	f.st.Dispatch(context.Background(), action.FetchCoupons{Code: "FOREVER"})
	f.wait()

	require.NotNil(t, f.st.Coupon().Valid)
	assert.Equal(t, "FOREVER", f.st.Coupon().Valid.Code)
}

func TestCheckoutEffect_FetchCouponsUnknownCodeIsInvalid(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.Coupons = catalogCoupons()

	f.st.Dispatch(context.Background(), action.FetchCoupons{Code: "NOPE"})
	f.wait()

	entry := f.st.Coupon()
	assert.Nil(t, entry.Valid)
	assert.Equal(t, "NOPE", entry.Invalid)
	assert.False(t, f.st.CouponLoading())
}

func TestCheckoutEffect_FetchCouponsCatalogFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.CouponErr = &backend.APIError{StatusCode: 503, Message: "catalog unavailable"}

	f.st.Dispatch(context.Background(), action.FetchCoupons{Code: "SAVE10"})
	f.wait()

	assert.Equal(t, []string{"catalog unavailable"}, f.notifier.Messages())
	assert.False(t, f.st.CouponLoading())
	assert.Equal(t, 0, f.rec.count(action.KindGotCoupon))
}

// ============================================
// Coupon Apply / Remove Tests
// ============================================

func TestCheckoutEffect_ApplyKnownInvalidSkipsNetwork(t *testing.T) {
	f := newCheckoutFixture(t)

	f.st.Dispatch(context.Background(), action.ApplyCoupon{Invalid: "BOGUS"})
	f.wait()

	assert.Empty(t, f.api.Calls)
	assert.Equal(t, `Coupon "BOGUS" does not exist`, f.st.CouponError())
}

func TestCheckoutEffect_ApplyValidCoupon(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	require.NoError(t, f.resolver.RememberGuestCart(ctx, "gc-1"))

	resp := cartResp("gc-1", 42)
	resp.Coupons = map[string]backend.WireCoupon{
		"SAVE10": {Code: "SAVE10", DiscountType: "percent", Amount: decimal.NewFromInt(10)},
	}
	f.api.CartResp = resp

	f.st.Dispatch(ctx, action.ApplyCoupon{Valid: &model.Coupon{Code: "SAVE10"}})
	f.wait()

	calls := f.api.CallsFor("CartCoupon")
	require.Len(t, calls, 1)
	assert.Equal(t, "gc-1", calls[0].GuestCartID)
	assert.Equal(t, "SAVE10", calls[0].Code)
	assert.Equal(t, backend.CouponApply, calls[0].CouponAction)

	require.NotNil(t, f.st.Coupon().Valid)
	assert.Equal(t, "SAVE10", f.st.Coupon().Valid.Code)
	assert.Len(t, f.st.CartItems(), 1)
	assert.False(t, f.st.CouponLoading())
}

func TestCheckoutEffect_ApplyFailureSurfacesNestedReason(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	require.NoError(t, f.resolver.RememberGuestCart(ctx, "gc-1"))
	f.st.Dispatch(ctx, action.GotUserCart{
		Items: []model.CartLineItem{{ProductID: 1, Quantity: 1}},
	})

	f.api.CartErr = &backend.APIError{
		StatusCode: 400,
		Message:    "Bad request",
		Data:       &backend.ErrData{Data: &backend.ErrDetail{Reason: "Coupon usage limit has been reached"}},
	}
	f.st.Dispatch(ctx, action.ApplyCoupon{Valid: &model.Coupon{Code: "SAVE10"}})
	f.wait()

	// The deepest reason wins over the top-level message
	assert.Equal(t, "Coupon usage limit has been reached", f.st.CouponError())
	assert.False(t, f.st.CouponLoading())
	// Inline status only, no toast, cart untouched
	assert.Empty(t, f.notifier.Messages())
	assert.Len(t, f.st.CartItems(), 1)
}

func TestCheckoutEffect_RemoveCouponClearsEntry(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	require.NoError(t, f.resolver.RememberGuestCart(ctx, "gc-1"))

	f.st.Dispatch(ctx, action.GotCoupon{Valid: &model.Coupon{Code: "SAVE10"}})
	require.NotNil(t, f.st.Coupon().Valid)

	f.api.CartResp = cartResp("gc-1", 42)
	f.st.Dispatch(ctx, action.RemoveCoupon{Code: "SAVE10"})
	f.wait()

	calls := f.api.CallsFor("CartCoupon")
	require.Len(t, calls, 1)
	assert.Equal(t, backend.CouponRemove, calls[0].CouponAction)

	entry := f.st.Coupon()
	assert.Nil(t, entry.Valid)
	assert.Empty(t, entry.Invalid)
	assert.Len(t, f.st.CartItems(), 1)
}

// ============================================
// Order Tests
// ============================================

func TestCheckoutEffect_CreateOrderSuccess(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.OrderResp = &backend.OrderCreated{ID: 7, OrderKey: "wc_order_abc"}
	f.api.GetOrderResp = &model.Order{ID: 7, OrderKey: "wc_order_abc", Status: "processing"}

	f.st.Dispatch(context.Background(), action.CreateOrder{
		Order: model.OrderRequest{PaymentMethod: "cod"},
	})
	f.wait()

	require.Len(t, f.api.CallsFor("CreateOrder"), 1)
	getCalls := f.api.CallsFor("GetOrder")
	require.Len(t, getCalls, 1)
	assert.Equal(t, int64(7), getCalls[0].OrderID)
	assert.Equal(t, "wc_order_abc", getCalls[0].OrderKey)

	require.NotNil(t, f.st.OrderData())
	assert.Equal(t, int64(7), f.st.OrderData().ID)
	assert.False(t, f.st.OrderLoading())
	assert.Equal(t, []string{"/order-received/7?key=wc_order_abc"}, f.nav.Paths())
}

func TestCheckoutEffect_CreateOrderFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.OrderErr = &backend.APIError{StatusCode: 402, Message: "Payment declined"}

	f.st.Dispatch(context.Background(), action.CreateOrder{
		Order: model.OrderRequest{PaymentMethod: "card"},
	})
	f.wait()

	assert.Equal(t, []string{"Payment declined"}, f.notifier.Messages())
	assert.False(t, f.st.OrderLoading())
	assert.Empty(t, f.nav.Paths())
	assert.Empty(t, f.api.CallsFor("GetOrder"))
	assert.Nil(t, f.st.OrderData())
}

func TestCheckoutEffect_FetchOrderDataFailureIsNonFatal(t *testing.T) {
	f := newCheckoutFixture(t)
	f.api.GetOrderErr = &backend.APIError{StatusCode: 404, Message: "not found"}

	f.st.Dispatch(context.Background(), action.FetchOrderData{OrderID: 9, OrderKey: "k"})
	f.wait()

	assert.Empty(t, f.notifier.Messages())
	assert.Nil(t, f.st.OrderData())
	assert.Equal(t, 1, f.rec.count(action.KindGotOrderData))
}
