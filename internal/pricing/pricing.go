// Package pricing computes order-summary totals and coupon discounts. Coupons
// are transient and total-level: applying one never mutates stored unit
// prices, so reapplying cannot compound.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/avelune/storefront/internal/model"
)

var ErrInvalidCoupon = errors.New("invalid coupon code")

const couponCode = "DISCOUNT20"

var (
	shippingCost    = decimal.NewFromInt(10)
	taxAmount       = decimal.NewFromFloat(2.99)
	discountPercent = decimal.NewFromFloat(0.20)
)

type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Subtotal is the sum of price x quantity over the items.
func Subtotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Summarize builds the order summary for the given items. A recognized coupon
// code deducts its share of the pre-discount subtotal; an unrecognized
// non-empty code returns ErrInvalidCoupon alongside the undiscounted summary,
// so callers can surface a notification and still render unchanged totals.
func Summarize(items []model.CartItem, coupon string) (Summary, error) {
	subtotal := Subtotal(items)
	summary := Summary{
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Shipping: shippingCost,
		Tax:      taxAmount,
	}

	var err error
	switch coupon {
	case "":
	case couponCode:
		summary.Discount = subtotal.Mul(discountPercent)
	default:
		err = ErrInvalidCoupon
	}

	summary.Total = subtotal.Sub(summary.Discount).Add(summary.Shipping).Add(summary.Tax)
	return summary, err
}
