package action

import (
	"github.com/example/storefront-core/internal/model"
)

// Action is an immutable tagged intent or result flowing through the store.
// Every variant is a concrete struct; payloads are typed per kind.
type Action interface {
	Kind() string
}

const (
	KindAddToCart       = "AddToCart"
	KindUpdateQuantity  = "UpdateCartQuantity"
	KindRemoveItem      = "RemoveCartItem"
	KindLoadCart        = "LoadCart"
	KindSyncCart        = "SyncCart"
	KindClearCart       = "ClearCart"
	KindGotUserCart     = "GotUserCart"
	KindGotCouponData   = "GotCouponData"
	KindSetCartIdentity = "SetCartIdentity"
	KindStartSpinner    = "StartSpinner"
	KindStopSpinner     = "StopSpinner"
	KindSetCartStatus   = "SetCartStatus"
	KindFetchCoupons    = "FetchCoupons"
	KindGotCoupon       = "GotCoupon"
	KindSetCouponLoad   = "SetCouponLoading"
	KindApplyCoupon     = "ApplyCoupon"
	KindRemoveCoupon    = "RemoveCoupon"
	KindCouponStatus    = "CouponStatus"
	KindSetOrderLoad    = "SetOrderLoading"
	KindCreateOrder     = "CreateOrder"
	KindFetchOrderData  = "FetchOrderData"
	KindGotOrderData    = "GotOrderData"
)

// Surfaces a cart load can be triggered from; each drives its own loading flag.
const (
	SurfaceMain = "main"
	SurfaceSide = "side"
)

// Cart intents

type AddToCart struct {
	Product    model.SelectedProduct `json:"product"`
	Label      string                `json:"label"` // spinner key, e.g. "add" or "buy"
	BuyNow     bool                  `json:"buy_now"`
	IsLoggedIn bool                  `json:"is_logged_in"`
	Token      string                `json:"-"`
}

func (AddToCart) Kind() string { return KindAddToCart }

type UpdateQuantity struct {
	ProductID   int64  `json:"product_id"`
	VariationID int64  `json:"variation_id,omitempty"`
	Quantity    int    `json:"quantity"`
	IsLoggedIn  bool   `json:"is_logged_in"`
	Token       string `json:"-"`
}

func (UpdateQuantity) Kind() string { return KindUpdateQuantity }

type RemoveItem struct {
	ProductID   int64  `json:"product_id"`
	VariationID int64  `json:"variation_id,omitempty"`
	IsLoggedIn  bool   `json:"is_logged_in"`
	Token       string `json:"-"`
}

func (RemoveItem) Kind() string { return KindRemoveItem }

type LoadCart struct {
	Surface    string `json:"surface"`
	IsLoggedIn bool   `json:"is_logged_in"`
	Token      string `json:"-"`
}

func (LoadCart) Kind() string { return KindLoadCart }

// SyncCart merges the guest cart into the authenticated user's server-side
// cart. Dispatched once, on login.
type SyncCart struct {
	Token string `json:"-"`
}

func (SyncCart) Kind() string { return KindSyncCart }

type ClearCart struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	Token      string `json:"-"`
}

func (ClearCart) Kind() string { return KindClearCart }

// Cart results

// GotUserCart is the only action the cart reducer accepts for populating
// items and totals. The payload is always a complete server snapshot.
type GotUserCart struct {
	Items  []model.CartLineItem `json:"items"`
	Totals model.CartTotals     `json:"totals"`
}

func (GotUserCart) Kind() string { return KindGotUserCart }

// GotCouponData carries the coupon already applied to a server cart snapshot.
type GotCouponData struct {
	Coupon *model.Coupon `json:"coupon"`
}

func (GotCouponData) Kind() string { return KindGotCouponData }

type SetCartIdentity struct {
	Authenticated bool   `json:"authenticated"`
	GuestCartID   string `json:"guest_cart_id,omitempty"`
}

func (SetCartIdentity) Kind() string { return KindSetCartIdentity }

// UI status

type StartSpinner struct {
	Label string `json:"label"`
}

func (StartSpinner) Kind() string { return KindStartSpinner }

type StopSpinner struct {
	Label string `json:"label"`
}

func (StopSpinner) Kind() string { return KindStopSpinner }

// SetCartStatus replaces the whole composite status projection.
type SetCartStatus struct {
	MainPageLoading bool   `json:"main_page_loading"`
	SideCartLoading bool   `json:"side_cart_loading"`
	Error           string `json:"error,omitempty"`
}

func (SetCartStatus) Kind() string { return KindSetCartStatus }

type SetCouponLoading struct {
	Loading bool `json:"loading"`
}

func (SetCouponLoading) Kind() string { return KindSetCouponLoad }

type SetOrderLoading struct {
	Loading bool `json:"loading"`
}

func (SetOrderLoading) Kind() string { return KindSetOrderLoad }

// Checkout intents and results

type FetchCoupons struct {
	Code       string `json:"code"`
	IsLoggedIn bool   `json:"is_logged_in"`
	Token      string `json:"-"`
}

func (FetchCoupons) Kind() string { return KindFetchCoupons }

// GotCoupon resolves an entered code: either a confirmed valid coupon or a
// rejected code string, never both.
type GotCoupon struct {
	Valid   *model.Coupon `json:"valid,omitempty"`
	Invalid string        `json:"invalid,omitempty"`
}

func (GotCoupon) Kind() string { return KindGotCoupon }

type ApplyCoupon struct {
	Valid      *model.Coupon `json:"valid,omitempty"`
	Invalid    string        `json:"invalid,omitempty"`
	IsLoggedIn bool          `json:"is_logged_in"`
	Token      string        `json:"-"`
}

func (ApplyCoupon) Kind() string { return KindApplyCoupon }

type RemoveCoupon struct {
	Code       string `json:"code"`
	IsLoggedIn bool   `json:"is_logged_in"`
	Token      string `json:"-"`
}

func (RemoveCoupon) Kind() string { return KindRemoveCoupon }

// CouponStatus carries a human-readable apply/remove failure message. It
// never touches cart state.
type CouponStatus struct {
	Message string `json:"message"`
}

func (CouponStatus) Kind() string { return KindCouponStatus }

type CreateOrder struct {
	Order      model.OrderRequest `json:"order"`
	IsLoggedIn bool               `json:"is_logged_in"`
	Token      string             `json:"-"`
}

func (CreateOrder) Kind() string { return KindCreateOrder }

type FetchOrderData struct {
	OrderID  int64  `json:"order_id"`
	OrderKey string `json:"order_key,omitempty"` // guest order lookup
}

func (FetchOrderData) Kind() string { return KindFetchOrderData }

type GotOrderData struct {
	Order *model.Order `json:"order,omitempty"`
}

func (GotOrderData) Kind() string { return KindGotOrderData }
