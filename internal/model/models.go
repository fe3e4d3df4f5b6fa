package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineItem is the canonical in-memory line item shape. Server responses
// carry more fields than this; everything else is discarded on normalization.
type CartLineItem struct {
	ProductID   int64           `json:"product_id"`
	VariationID int64           `json:"variation_id,omitempty"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	InStock     bool            `json:"in_stock"`
	ImageURL    string          `json:"image_url"`
}

// CartTotals mirrors the last successful server response. It is never
// recomputed locally.
type CartTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Coupon is an entry from the published coupon catalog.
type Coupon struct {
	Code         string          `json:"code"`
	DiscountType string          `json:"discount_type"`
	Amount       decimal.Decimal `json:"amount"`
	Expiry       *time.Time      `json:"expiry,omitempty"`
}

// Expired reports whether the coupon is past its expiry at the given time.
// A nil expiry never expires.
func (c Coupon) Expired(now time.Time) bool {
	return c.Expiry != nil && !c.Expiry.After(now)
}

// SelectedProduct is the user's pick on a product surface: base product plus
// an optional variation.
type SelectedProduct struct {
	ProductID   int64 `json:"product_id"`
	VariationID int64 `json:"variation_id,omitempty"`
	Quantity    int   `json:"quantity"`
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type OrderLineItem struct {
	ProductID   int64 `json:"product_id"`
	VariationID int64 `json:"variation_id,omitempty"`
	Quantity    int   `json:"quantity"`
}

// OrderRequest is the full payload posted to create an order.
type OrderRequest struct {
	Billing       Address         `json:"billing"`
	Shipping      Address         `json:"shipping"`
	LineItems     []OrderLineItem `json:"line_items"`
	PaymentMethod string          `json:"payment_method"`
	CustomerNote  string          `json:"customer_note,omitempty"`
	CouponCode    string          `json:"coupon_code,omitempty"`
}

// Order hydrates the confirmation view after creation.
type Order struct {
	ID        int64           `json:"id"`
	OrderKey  string          `json:"order_key"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Billing   Address         `json:"billing"`
	Shipping  Address         `json:"shipping"`
	LineItems []OrderLineItem `json:"line_items"`
	CreatedAt time.Time       `json:"created_at"`
}
