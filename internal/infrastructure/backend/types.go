package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Image as nested by authenticated cart responses.
type Image struct {
	Src string `json:"src"`
}

// LineItem is the wire shape of a cart line. Guest and authenticated
// responses nest the item image differently: authenticated responses carry a
// single `image` object, guest responses a list under `images`.
type LineItem struct {
	ProductID   int64           `json:"product_id"`
	VariationID int64           `json:"variation_id,omitempty"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	StockStatus string          `json:"stock_status"`
	Image       *Image          `json:"image,omitempty"`
	Images      []Image         `json:"images,omitempty"`
}

// ImageSrc resolves the image reference regardless of nesting.
func (li LineItem) ImageSrc() string {
	if li.Image != nil {
		return li.Image.Src
	}
	if len(li.Images) > 0 {
		return li.Images[0].Src
	}
	return ""
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// WireCoupon is a catalog or applied-coupon entry on the wire.
type WireCoupon struct {
	Code         string          `json:"code"`
	DiscountType string          `json:"discount_type"`
	Amount       decimal.Decimal `json:"amount"`
	Expiry       *time.Time      `json:"date_expires,omitempty"`
}

// CartResponse is the server's cart snapshot, returned by every cart-bearing
// operation for both identity modes.
type CartResponse struct {
	CartID  string                `json:"cart_id,omitempty"`
	Items   []LineItem            `json:"items"`
	Totals  Totals                `json:"totals"`
	Coupons map[string]WireCoupon `json:"coupons,omitempty"`
}

// OrderCreated is the creation response; OrderKey supports guest order lookup.
type OrderCreated struct {
	ID       int64  `json:"id"`
	OrderKey string `json:"order_key"`
}

// BulkItem is one entry of the guest-to-authenticated merge payload.
type BulkItem struct {
	ProductID   int64 `json:"product_id"`
	VariationID int64 `json:"variation_id,omitempty"`
	Quantity    int   `json:"quantity"`
}
