// Package pricing computes the priced breakdown of a cart. Calculation is
// pure: the same inputs always yield the same breakdown, and nothing here
// touches storage or the network.
package pricing

import "toyshop/internal/domain"

// Defaults for the storefront's pricing rules; overridable via config.
const (
	DefaultFreeShippingThreshold int64 = 5000
	DefaultGiftWrapFee           int64 = 50
)

// Rules carries the configurable amounts the calculator applies.
type Rules struct {
	FreeShippingThreshold int64
	GiftWrapFee           int64
}

// DefaultRules returns the storefront defaults.
func DefaultRules() Rules {
	return Rules{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		GiftWrapFee:           DefaultGiftWrapFee,
	}
}

// Input is everything a breakdown depends on.
type Input struct {
	Lines    []domain.CartLine
	Delivery domain.DeliverySelection
	GiftWrap bool
	Coupon   *domain.CouponResult
}

// Breakdown is the derived price summary. It is recomputed from its inputs on
// every request and never stored on its own.
type Breakdown struct {
	Subtotal       int64 `json:"subtotal"`
	DeliveryCharge int64 `json:"deliveryCharge"`
	GiftWrapCharge int64 `json:"giftWrapCharge"`
	Discount       int64 `json:"discount"`
	Total          int64 `json:"total"`
	FreeShipping   bool  `json:"freeShipping"`
}

// LineTotal prices one line: effective unit price times quantity.
func LineTotal(line domain.CartLine) int64 {
	return line.UnitPrice() * int64(line.Quantity)
}

// Subtotal sums line totals. Order of lines does not matter.
func Subtotal(lines []domain.CartLine) int64 {
	var sum int64
	for _, line := range lines {
		sum += LineTotal(line)
	}
	return sum
}

// Calculate produces the breakdown for in under rules.
//
// The free-shipping override zeroes the delivery charge whenever the subtotal
// reaches the threshold, regardless of the selected method's listed price.
// The discount is clamped so the total never goes below zero.
func Calculate(rules Rules, in Input) Breakdown {
	out := Breakdown{Subtotal: Subtotal(in.Lines)}

	if opt, ok := domain.LookupDelivery(in.Delivery.Region, in.Delivery.Method); ok {
		out.DeliveryCharge = opt.Price
	}
	if out.Subtotal >= rules.FreeShippingThreshold {
		out.DeliveryCharge = 0
		out.FreeShipping = true
	}

	if in.GiftWrap {
		out.GiftWrapCharge = rules.GiftWrapFee
	}

	gross := out.Subtotal + out.DeliveryCharge + out.GiftWrapCharge
	if in.Coupon != nil && in.Coupon.Valid {
		out.Discount = in.Coupon.Discount
		if out.Discount > gross {
			out.Discount = gross
		}
	}

	out.Total = gross - out.Discount
	return out
}
