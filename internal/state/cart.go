package state

import (
	"github.com/example/storefront-core/internal/action"
	"github.com/example/storefront-core/internal/model"
)

// Identity modes. Exactly one is active at a time.
const (
	IdentityGuest         = "guest"
	IdentityAuthenticated = "authenticated"
)

type CartIdentity struct {
	Mode        string `json:"mode"`
	GuestCartID string `json:"guest_cart_id,omitempty"` // empty until the first guest add
}

// CartState always mirrors a real server snapshot: it is replaced wholesale
// on every successful cart-bearing response, never partially patched.
type CartState struct {
	Items    []model.CartLineItem `json:"items"`
	Totals   model.CartTotals     `json:"totals"`
	Identity CartIdentity         `json:"identity"`
}

func NewCartState() CartState {
	return CartState{Identity: CartIdentity{Mode: IdentityGuest}}
}

// ReduceCart returns the next cart slice. Unrecognized actions pass through
// unchanged.
func ReduceCart(s CartState, a action.Action) CartState {
	switch a := a.(type) {
	case action.GotUserCart:
		s.Items = a.Items
		s.Totals = a.Totals
		return s
	case action.SetCartIdentity:
		if a.Authenticated {
			s.Identity = CartIdentity{Mode: IdentityAuthenticated}
		} else {
			s.Identity = CartIdentity{Mode: IdentityGuest, GuestCartID: a.GuestCartID}
		}
		return s
	}
	return s
}
