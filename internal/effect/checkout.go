package effect

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/example/storefront-core/internal/action"
	"github.com/example/storefront-core/internal/infrastructure/backend"
	"github.com/example/storefront-core/internal/model"
	"github.com/example/storefront-core/internal/ui"
)

const (
	genericCouponError = "Could not apply the coupon"
	genericOrderError  = "Could not place your order"
)

// CheckoutEffect drives the coupon lifecycle and order creation.
type CheckoutEffect struct {
	api        backend.API
	resolver   Resolver
	dispatcher Dispatcher
	notifier   ui.Notifier
	nav        ui.Navigator
	track      *tracker
	wg         sync.WaitGroup
	now        func() time.Time
}

func NewCheckoutEffect(api backend.API, resolver Resolver, dispatcher Dispatcher, notifier ui.Notifier, nav ui.Navigator) *CheckoutEffect {
	return &CheckoutEffect{
		api:        api,
		resolver:   resolver,
		dispatcher: dispatcher,
		notifier:   notifier,
		nav:        nav,
		track:      newTracker(),
		now:        time.Now,
	}
}

// Wait blocks until all in-flight operations have finished.
func (e *CheckoutEffect) Wait() {
	e.wg.Wait()
}

func (e *CheckoutEffect) HandleAction(ctx context.Context, a action.Action) {
	switch a := a.(type) {
	case action.FetchCoupons:
		gen := e.track.begin(categoryCoupons)
		e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: true})
		e.spawn(func() { e.fetchCoupons(ctx, a, gen) })

	case action.ApplyCoupon:
		// A code already known invalid never earns a round-trip.
		if a.Invalid != "" {
			e.dispatcher.Dispatch(ctx, action.CouponStatus{
				Message: fmt.Sprintf("Coupon %q does not exist", a.Invalid),
			})
			return
		}
		e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: true})
		e.spawn(func() { e.applyCoupon(ctx, a) })

	case action.RemoveCoupon:
		e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: true})
		e.spawn(func() { e.removeCoupon(ctx, a) })

	case action.CreateOrder:
		e.dispatcher.Dispatch(ctx, action.SetOrderLoading{Loading: true})
		e.spawn(func() { e.createOrder(ctx, a) })

	case action.FetchOrderData:
		e.spawn(func() { e.fetchOrderData(ctx, a) })
	}
}

func (e *CheckoutEffect) spawn(fn func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn()
	}()
}

// fetchCoupons consults the first page of the published catalog (capped at
// 100 entries server-side; later pages are out of scope) and filters locally
// for an exact, unexpired match of the entered code.
func (e *CheckoutEffect) fetchCoupons(ctx context.Context, a action.FetchCoupons, gen uint64) {
	coupons, err := e.api.ListCoupons(ctx)
	if err != nil {
		if !e.track.current(categoryCoupons, gen) {
			return
		}
		log.Printf("[Checkout] Coupon catalog fetch failed: %v", err)
		e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: false})
		e.notifier.Notify(backend.Reason(err, genericCouponError))
		return
	}

	var match *model.Coupon
	now := e.now()
	for _, c := range coupons {
		normalized := normalizeCoupon(c)
		if normalized.Code == a.Code && !normalized.Expired(now) {
			match = normalized
			break
		}
	}

	if !e.track.current(categoryCoupons, gen) {
		log.Printf("[Checkout] Discarding superseded coupon lookup for %q", a.Code)
		return
	}

	// The spinner drops the moment the result is known, before the result
	// itself is delivered.
	e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: false})
	if match == nil {
		e.dispatcher.Dispatch(ctx, action.GotCoupon{Invalid: a.Code})
		return
	}
	e.dispatcher.Dispatch(ctx, action.GotCoupon{Valid: match})
}

func (e *CheckoutEffect) applyCoupon(ctx context.Context, a action.ApplyCoupon) {
	ident, err := e.resolver.Resolve(ctx, a.IsLoggedIn, a.Token)
	if err != nil {
		e.couponFailed(ctx, err)
		return
	}

	resp, err := e.api.CartCoupon(ctx, ident.Token, ident.GuestCartID, a.Valid.Code, backend.CouponApply)
	if err != nil {
		e.couponFailed(ctx, err)
		return
	}

	e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: false})
	if c := firstCoupon(resp); c != nil {
		e.dispatcher.Dispatch(ctx, action.GotCouponData{Coupon: c})
	}
	e.dispatcher.Dispatch(ctx, action.GotUserCart{
		Items:  normalizeItems(resp.Items),
		Totals: normalizeTotals(resp.Totals),
	})
}

func (e *CheckoutEffect) removeCoupon(ctx context.Context, a action.RemoveCoupon) {
	ident, err := e.resolver.Resolve(ctx, a.IsLoggedIn, a.Token)
	if err != nil {
		e.couponFailed(ctx, err)
		return
	}

	resp, err := e.api.CartCoupon(ctx, ident.Token, ident.GuestCartID, a.Code, backend.CouponRemove)
	if err != nil {
		e.couponFailed(ctx, err)
		return
	}

	e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: false})
	e.dispatcher.Dispatch(ctx, action.GotCoupon{})
	e.dispatcher.Dispatch(ctx, action.GotUserCart{
		Items:  normalizeItems(resp.Items),
		Totals: normalizeTotals(resp.Totals),
	})
}

// couponFailed surfaces an apply/remove failure as inline coupon status.
// The cart slice is never touched.
func (e *CheckoutEffect) couponFailed(ctx context.Context, err error) {
	msg := backend.Reason(err, genericCouponError)
	log.Printf("[Checkout] Coupon operation failed: %v", err)
	e.dispatcher.Dispatch(ctx, action.SetCouponLoading{Loading: false})
	e.dispatcher.Dispatch(ctx, action.CouponStatus{Message: msg})
}

func (e *CheckoutEffect) createOrder(ctx context.Context, a action.CreateOrder) {
	ident, err := e.resolver.Resolve(ctx, a.IsLoggedIn, a.Token)
	if err != nil {
		e.orderFailed(ctx, err)
		return
	}

	resp, err := e.api.CreateOrder(ctx, ident.Token, a.Order)
	if err != nil {
		e.orderFailed(ctx, err)
		return
	}

	e.dispatcher.Dispatch(ctx, action.SetOrderLoading{Loading: false})
	e.dispatcher.Dispatch(ctx, action.FetchOrderData{OrderID: resp.ID, OrderKey: resp.OrderKey})
	e.nav.NavigateTo("/order-received/" + strconv.FormatInt(resp.ID, 10) + "?key=" + resp.OrderKey)
}

func (e *CheckoutEffect) orderFailed(ctx context.Context, err error) {
	msg := backend.Reason(err, genericOrderError)
	log.Printf("[Checkout] Order creation failed: %v", err)
	e.dispatcher.Dispatch(ctx, action.SetOrderLoading{Loading: false})
	e.notifier.Notify(msg)
}

// fetchOrderData hydrates the confirmation view. Failures are non-fatal: the
// order was already created, so an empty result is delivered instead of an
// error.
func (e *CheckoutEffect) fetchOrderData(ctx context.Context, a action.FetchOrderData) {
	order, err := e.api.GetOrder(ctx, "", a.OrderID, a.OrderKey)
	if err != nil {
		log.Printf("[Checkout] Order %d lookup failed (non-fatal): %v", a.OrderID, err)
		e.dispatcher.Dispatch(ctx, action.GotOrderData{})
		return
	}
	e.dispatcher.Dispatch(ctx, action.GotOrderData{Order: order})
}
