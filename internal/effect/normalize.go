package effect

import (
	"sort"

	"github.com/example/storefront-core/internal/infrastructure/backend"
	"github.com/example/storefront-core/internal/model"
)

// normalizeItems maps wire line items to the canonical shape, discarding
// server fields outside the data model and flattening the per-identity image
// nesting.
func normalizeItems(items []backend.LineItem) []model.CartLineItem {
	out := make([]model.CartLineItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.CartLineItem{
			ProductID:   it.ProductID,
			VariationID: it.VariationID,
			Name:        it.Name,
			Quantity:    it.Quantity,
			Price:       it.Price,
			InStock:     it.StockStatus != "outofstock",
			ImageURL:    it.ImageSrc(),
		})
	}
	return out
}

func normalizeTotals(t backend.Totals) model.CartTotals {
	return model.CartTotals{
		Subtotal:    t.Subtotal,
		ShippingFee: t.ShippingFee,
		TotalPrice:  t.TotalPrice,
	}
}

func normalizeCoupon(c backend.WireCoupon) *model.Coupon {
	return &model.Coupon{
		Code:         c.Code,
		DiscountType: c.DiscountType,
		Amount:       c.Amount,
		Expiry:       c.Expiry,
	}
}

// firstCoupon extracts the first coupon from a response's coupon map. Keys
// are sorted so the pick is deterministic.
func firstCoupon(resp *backend.CartResponse) *model.Coupon {
	if len(resp.Coupons) == 0 {
		return nil
	}
	keys := make([]string, 0, len(resp.Coupons))
	for k := range resp.Coupons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return normalizeCoupon(resp.Coupons[keys[0]])
}
