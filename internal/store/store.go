package store

import (
	"context"
	"sync"

	"github.com/example/storefront-core/internal/action"
	"github.com/example/storefront-core/internal/state"
)

// Listener receives every dispatched action after the reducers have run.
// Effect handlers implement this; asynchronous work they start re-enters the
// store through Dispatch.
type Listener interface {
	HandleAction(ctx context.Context, a action.Action)
}

// Tap observes dispatched actions without participating in state. Used by the
// action journal.
type Tap func(a action.Action)

// Store owns the three state slices. All writes go through Dispatch; reducers
// run under a single lock so every reducer sees the cumulative effect of all
// earlier actions, in dispatch order.
type Store struct {
	mu       sync.Mutex
	cart     state.CartState
	checkout state.CheckoutState
	ui       state.UiState

	listeners []Listener
	taps      []Tap
}

func New() *Store {
	return &Store{
		cart:     state.NewCartState(),
		checkout: state.NewCheckoutState(),
		ui:       state.NewUiState(),
	}
}

// Subscribe registers an effect handler. Listeners are notified in
// registration order.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Use registers an observation tap.
func (s *Store) Use(t Tap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taps = append(s.taps, t)
}

// Dispatch reduces the action into every slice, then hands it to every tap
// and listener. The call returns once all consumers have seen the action;
// work the listeners start runs independently. Listeners may re-enter
// Dispatch — the lock is released before notification.
func (s *Store) Dispatch(ctx context.Context, a action.Action) {
	s.mu.Lock()
	s.cart = state.ReduceCart(s.cart, a)
	s.checkout = state.ReduceCheckout(s.checkout, a)
	s.ui = state.ReduceUI(s.ui, a)
	taps := s.taps
	listeners := s.listeners
	s.mu.Unlock()

	for _, t := range taps {
		t(a)
	}
	for _, l := range listeners {
		l.HandleAction(ctx, a)
	}
}
