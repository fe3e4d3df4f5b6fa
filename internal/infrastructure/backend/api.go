package backend

import (
	"context"

	"github.com/example/storefront-core/internal/model"
)

// Coupon actions accepted by the cart-coupon endpoint.
const (
	CouponApply  = "apply"
	CouponRemove = "remove"
)

// API is the commerce backend surface the effect handlers call. A non-empty
// token selects the authenticated endpoint and payload shape; otherwise the
// guest shape (guestCartID in the body) is used.
type API interface {
	// AddToCart posts an add. For guests with no cart id yet, the backend
	// creates a cart and returns its id in the response.
	AddToCart(ctx context.Context, token, guestCartID string, p model.SelectedProduct) (*CartResponse, error)

	// LoadCart fetches the current cart snapshot.
	LoadCart(ctx context.Context, token, guestCartID string) (*CartResponse, error)

	// UpdateQuantity sets the quantity of one line.
	UpdateQuantity(ctx context.Context, token, guestCartID string, productID, variationID int64, quantity int) (*CartResponse, error)

	// RemoveItem removes one line.
	RemoveItem(ctx context.Context, token, guestCartID string, productID, variationID int64) (*CartResponse, error)

	// ClearCart empties the authenticated user's cart. Auth only.
	ClearCart(ctx context.Context, token string) error

	// BulkAdd merges guest cart contents into the authenticated cart.
	BulkAdd(ctx context.Context, token string, items []BulkItem) (*CartResponse, error)

	// CartCoupon applies or removes a coupon on the cart.
	CartCoupon(ctx context.Context, token, guestCartID, code, couponAction string) (*CartResponse, error)

	// ListCoupons fetches the first page of the published coupon catalog.
	ListCoupons(ctx context.Context) ([]WireCoupon, error)

	// CreateOrder posts the full order payload.
	CreateOrder(ctx context.Context, token string, req model.OrderRequest) (*OrderCreated, error)

	// GetOrder fetches an order by id; orderKey authorizes guest lookups.
	GetOrder(ctx context.Context, token string, id int64, orderKey string) (*model.Order, error)
}
