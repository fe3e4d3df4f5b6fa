package effect

import (
	"context"
	"log"
	"sync"

	"github.com/example/storefront-core/internal/action"
	"github.com/example/storefront-core/internal/infrastructure/backend"
	"github.com/example/storefront-core/internal/model"
	"github.com/example/storefront-core/internal/session"
	"github.com/example/storefront-core/internal/ui"
)

const (
	genericCartError = "Something went wrong while updating your cart"
	genericLoadError = "Could not load your cart"
	genericSyncError = "Could not sync your cart"
)

// Dispatcher is how asynchronous results re-enter the system.
type Dispatcher interface {
	Dispatch(ctx context.Context, a action.Action)
}

// CartView is the read access the cart effect needs; the store satisfies it.
type CartView interface {
	CartItems() []model.CartLineItem
}

// CartEffect translates cart-intent actions into backend calls and reconciles
// the results. It never mutates state directly: every outcome re-enters the
// store as a result action.
type CartEffect struct {
	api        backend.API
	resolver   Resolver
	dispatcher Dispatcher
	view       CartView
	notifier   ui.Notifier
	nav        ui.Navigator
	panel      ui.SidePanel
	track      *tracker
	wg         sync.WaitGroup
}

// Resolver is the session resolver surface the effects depend on.
type Resolver interface {
	Resolve(ctx context.Context, isLoggedIn bool, token string) (session.Identity, error)
	RememberGuestCart(ctx context.Context, id string) error
	ForgetGuestCart(ctx context.Context) error
}

func NewCartEffect(api backend.API, resolver Resolver, dispatcher Dispatcher, view CartView, notifier ui.Notifier, nav ui.Navigator, panel ui.SidePanel) *CartEffect {
	return &CartEffect{
		api:        api,
		resolver:   resolver,
		dispatcher: dispatcher,
		view:       view,
		notifier:   notifier,
		nav:        nav,
		panel:      panel,
		track:      newTracker(),
	}
}

// Wait blocks until all in-flight operations have finished. Used by tests and
// graceful shutdown.
func (e *CartEffect) Wait() {
	e.wg.Wait()
}

// HandleAction runs synchronously on the dispatch path: it claims a
// generation, dispatches the operation's loading action, and starts the
// network work in the background.
func (e *CartEffect) HandleAction(ctx context.Context, a action.Action) {
	switch a := a.(type) {
	case action.AddToCart:
		gen := e.track.begin(categoryAdd)
		e.dispatcher.Dispatch(ctx, action.StartSpinner{Label: a.Label})
		e.spawn(func() { e.addToCart(ctx, a, gen) })

	case action.UpdateQuantity:
		gen := e.track.begin(categoryUpdate)
		e.dispatcher.Dispatch(ctx, action.SetCartStatus{SideCartLoading: true})
		e.spawn(func() { e.updateQuantity(ctx, a, gen) })

	case action.RemoveItem:
		gen := e.track.begin(categoryRemove)
		e.dispatcher.Dispatch(ctx, action.SetCartStatus{SideCartLoading: true})
		e.spawn(func() { e.removeItem(ctx, a, gen) })

	case action.LoadCart:
		gen := e.track.begin(categoryLoad)
		e.dispatcher.Dispatch(ctx, action.SetCartStatus{
			MainPageLoading: a.Surface == action.SurfaceMain,
			SideCartLoading: a.Surface == action.SurfaceSide,
		})
		e.spawn(func() { e.loadCart(ctx, a, gen) })

	case action.SyncCart:
		gen := e.track.begin(categorySync)
		e.spawn(func() { e.syncCart(ctx, a, gen) })

	case action.ClearCart:
		gen := e.track.begin(categoryClear)
		e.spawn(func() { e.clearCart(ctx, a, gen) })
	}
}

func (e *CartEffect) spawn(fn func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn()
	}()
}

func (e *CartEffect) addToCart(ctx context.Context, a action.AddToCart, gen uint64) {
	ident, err := e.resolver.Resolve(ctx, a.IsLoggedIn, a.Token)
	if err != nil {
		e.fail(ctx, categoryAdd, gen, a.Label, err, genericCartError)
		return
	}

	resp, err := e.api.AddToCart(ctx, ident.Token, ident.GuestCartID, a.Product)
	if err != nil {
		e.fail(ctx, categoryAdd, gen, a.Label, err, genericCartError)
		return
	}

	// A first guest add creates the cart server-side; persist its id even if
	// this response ends up superseded — the cart is real either way.
	createdGuestCart := !ident.Authenticated && ident.GuestCartID == "" && resp.CartID != ""
	if createdGuestCart {
		if err := e.resolver.RememberGuestCart(ctx, resp.CartID); err != nil {
			log.Printf("[CartEffect] Failed to persist guest cart id: %v", err)
		}
	}

	if !e.track.current(categoryAdd, gen) {
		log.Printf("[CartEffect] Discarding superseded add-to-cart response")
		return
	}

	if createdGuestCart {
		e.dispatcher.Dispatch(ctx, action.SetCartIdentity{GuestCartID: resp.CartID})
	}

	e.deliver(ctx, resp, a.Label)
	e.panel.CloseQuickAdd()
	if a.BuyNow {
		e.nav.NavigateTo("/checkout")
	} else {
		e.panel.OpenMiniCart()
	}
}

func (e *CartEffect) updateQuantity(ctx context.Context, a action.UpdateQuantity, gen uint64) {
	ident, err := e.resolver.Resolve(ctx, a.IsLoggedIn, a.Token)
	if err != nil {
		e.fail(ctx, categoryUpdate, gen, "", err, genericCartError)
		return
	}

	resp, err := e.api.UpdateQuantity(ctx, ident.Token, ident.GuestCartID, a.ProductID, a.VariationID, a.Quantity)
	if err != nil {
		e.fail(ctx, categoryUpdate, gen, "", err, genericCartError)
		return
	}
	if !e.track.current(categoryUpdate, gen) {
		log.Printf("[CartEffect] Discarding superseded quantity-update response")
		return
	}

	e.deliver(ctx, resp, "")
	e.panel.CloseQuickAdd()
}

func (e *CartEffect) removeItem(ctx context.Context, a action.RemoveItem, gen uint64) {
	ident, err := e.resolver.Resolve(ctx, a.IsLoggedIn, a.Token)
	if err != nil {
		e.fail(ctx, categoryRemove, gen, "", err, genericCartError)
		return
	}

	resp, err := e.api.RemoveItem(ctx, ident.Token, ident.GuestCartID, a.ProductID, a.VariationID)
	if err != nil {
		e.fail(ctx, categoryRemove, gen, "", err, genericCartError)
		return
	}
	if !e.track.current(categoryRemove, gen) {
		log.Printf("[CartEffect] Discarding superseded remove-item response")
		return
	}

	e.deliver(ctx, resp, "")
	e.panel.CloseQuickAdd()
}

func (e *CartEffect) loadCart(ctx context.Context, a action.LoadCart, gen uint64) {
	ident, err := e.resolver.Resolve(ctx, a.IsLoggedIn, a.Token)
	if err != nil {
		e.fail(ctx, categoryLoad, gen, "", err, genericLoadError)
		return
	}

	// A guest with no persisted cart id has an empty cart; no network call.
	if !ident.Authenticated && ident.GuestCartID == "" {
		if !e.track.current(categoryLoad, gen) {
			return
		}
		e.dispatcher.Dispatch(ctx, action.SetCartStatus{})
		e.dispatcher.Dispatch(ctx, action.GotUserCart{Items: []model.CartLineItem{}})
		return
	}

	resp, err := e.api.LoadCart(ctx, ident.Token, ident.GuestCartID)
	if err != nil {
		e.fail(ctx, categoryLoad, gen, "", err, genericLoadError)
		return
	}
	if !e.track.current(categoryLoad, gen) {
		log.Printf("[CartEffect] Discarding superseded load-cart response")
		return
	}

	e.deliver(ctx, resp, "")
}

// syncCart merges the guest cart into the authenticated user's cart after
// login. On failure the guest identifier is retained so the merge can be
// retried; on success it is discarded.
func (e *CartEffect) syncCart(ctx context.Context, a action.SyncCart, gen uint64) {
	ident, err := e.resolver.Resolve(ctx, false, "")
	if err != nil {
		e.fail(ctx, categorySync, gen, "", err, genericSyncError)
		return
	}

	if ident.GuestCartID == "" {
		// Nothing to merge; switch identity and fetch the user's cart.
		if !e.track.current(categorySync, gen) {
			return
		}
		e.dispatcher.Dispatch(ctx, action.SetCartIdentity{Authenticated: true})
		e.dispatcher.Dispatch(ctx, action.LoadCart{Surface: action.SurfaceMain, IsLoggedIn: true, Token: a.Token})
		return
	}

	items := e.view.CartItems()
	bulk := make([]backend.BulkItem, 0, len(items))
	for _, item := range items {
		bulk = append(bulk, backend.BulkItem{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
		})
	}

	resp, err := e.api.BulkAdd(ctx, a.Token, bulk)
	if err != nil {
		e.fail(ctx, categorySync, gen, "", err, genericSyncError)
		return
	}

	if err := e.resolver.ForgetGuestCart(ctx); err != nil {
		log.Printf("[CartEffect] Failed to discard guest cart id after sync: %v", err)
	}

	if !e.track.current(categorySync, gen) {
		return
	}
	e.dispatcher.Dispatch(ctx, action.SetCartIdentity{Authenticated: true})
	e.deliver(ctx, resp, "")
	e.panel.CloseQuickAdd()
}

// clearCart empties the cart, then re-triggers a fresh load. For guests this
// is purely local: the persisted identifier is discarded and the reload
// resolves to an empty cart without a network call.
func (e *CartEffect) clearCart(ctx context.Context, a action.ClearCart, gen uint64) {
	if !a.IsLoggedIn {
		if err := e.resolver.ForgetGuestCart(ctx); err != nil {
			log.Printf("[CartEffect] Failed to discard guest cart id: %v", err)
		}
		if !e.track.current(categoryClear, gen) {
			return
		}
		e.dispatcher.Dispatch(ctx, action.SetCartIdentity{})
		e.dispatcher.Dispatch(ctx, action.LoadCart{Surface: action.SurfaceMain})
		return
	}

	if err := e.api.ClearCart(ctx, a.Token); err != nil {
		e.fail(ctx, categoryClear, gen, "", err, genericCartError)
		return
	}
	if !e.track.current(categoryClear, gen) {
		return
	}
	e.dispatcher.Dispatch(ctx, action.LoadCart{Surface: action.SurfaceMain, IsLoggedIn: true, Token: a.Token})
}

// deliver pushes a successful cart snapshot into the store: applied coupon
// first, then loading flags down, then the snapshot itself.
func (e *CartEffect) deliver(ctx context.Context, resp *backend.CartResponse, label string) {
	if c := firstCoupon(resp); c != nil {
		e.dispatcher.Dispatch(ctx, action.GotCouponData{Coupon: c})
	}
	if label != "" {
		e.dispatcher.Dispatch(ctx, action.StopSpinner{Label: label})
	}
	e.dispatcher.Dispatch(ctx, action.SetCartStatus{})
	e.dispatcher.Dispatch(ctx, action.GotUserCart{
		Items:  normalizeItems(resp.Items),
		Totals: normalizeTotals(resp.Totals),
	})
}

// fail runs the one failure path every operation shares: stop the loading
// indicators this operation set, surface exactly one notification, record the
// error in the status projection. The cart slice is never touched. Superseded
// failures are discarded like superseded successes — the newer operation owns
// the loading flags by then.
func (e *CartEffect) fail(ctx context.Context, category string, gen uint64, label string, err error, generic string) {
	if !e.track.current(category, gen) {
		log.Printf("[CartEffect] Discarding superseded %s failure: %v", category, err)
		return
	}
	msg := backend.Reason(err, generic)
	log.Printf("[CartEffect] %s failed: %v", category, err)
	if label != "" {
		e.dispatcher.Dispatch(ctx, action.StopSpinner{Label: label})
	}
	e.notifier.Notify(msg)
	e.dispatcher.Dispatch(ctx, action.SetCartStatus{Error: msg})
}
