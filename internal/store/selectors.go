package store

import (
	"github.com/example/storefront-core/internal/model"
	"github.com/example/storefront-core/internal/state"
)

// Selectors are the only sanctioned reads. Each returns a copy so no caller
// holds a reference into live state.

func (s *Store) CartItems() []model.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.CartLineItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items
}

func (s *Store) CartTotals() model.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals
}

func (s *Store) CartIdentity() state.CartIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Identity
}

// CartCount is the total quantity across line items.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.cart.Items {
		n += item.Quantity
	}
	return n
}

func (s *Store) Coupon() state.CouponEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Coupon
}

func (s *Store) CouponError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.CouponError
}

func (s *Store) OrderData() *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Order
}

func (s *Store) CartStatus() state.CartStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.CartStatus
}

// Spinner reports whether the named button is busy.
func (s *Store) Spinner(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.Spinner[label]
}

func (s *Store) CouponLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.CouponLoading
}

func (s *Store) OrderLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.OrderLoading
}
