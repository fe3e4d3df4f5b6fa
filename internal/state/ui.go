package state

import (
	"github.com/example/storefront-core/internal/action"
)

// CartStatus is a composite projection written by many unrelated operations.
// It is replaced as a whole on every SetCartStatus.
type CartStatus struct {
	MainPageLoading bool   `json:"main_page_loading"`
	SideCartLoading bool   `json:"side_cart_loading"`
	Error           string `json:"error,omitempty"`
}

type UiState struct {
	Spinner       map[string]bool `json:"spinner"` // per-button busy flags
	CouponLoading bool            `json:"coupon_loading"`
	OrderLoading  bool            `json:"order_loading"`
	CartStatus    CartStatus      `json:"cart_status"`
}

// NewUiState assumes the first cart load is already pending at first paint.
func NewUiState() UiState {
	return UiState{
		Spinner:    map[string]bool{},
		CartStatus: CartStatus{MainPageLoading: true},
	}
}

// ReduceUI returns the next UI slice. Spinner maps are copied on write so a
// previously returned slice is never mutated.
func ReduceUI(s UiState, a action.Action) UiState {
	switch a := a.(type) {
	case action.StartSpinner:
		s.Spinner = withSpinner(s.Spinner, a.Label, true)
		return s
	case action.StopSpinner:
		s.Spinner = withSpinner(s.Spinner, a.Label, false)
		return s
	case action.SetCartStatus:
		s.CartStatus = CartStatus{
			MainPageLoading: a.MainPageLoading,
			SideCartLoading: a.SideCartLoading,
			Error:           a.Error,
		}
		return s
	case action.SetCouponLoading:
		s.CouponLoading = a.Loading
		return s
	case action.SetOrderLoading:
		s.OrderLoading = a.Loading
		return s
	}
	return s
}

func withSpinner(m map[string]bool, label string, on bool) map[string]bool {
	next := make(map[string]bool, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	if on {
		next[label] = true
	} else {
		delete(next, label)
	}
	return next
}
