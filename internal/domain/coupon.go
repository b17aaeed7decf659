package domain

// Coupon is one promo code and its fixed discount amount.
type Coupon struct {
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
	Message  string `json:"message,omitempty"`
}

// CouponResult is the outcome of a resolution attempt. An unknown code is a
// normal invalid result, not an error.
type CouponResult struct {
	Code     string `json:"code"`
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discountAmount"`
	Message  string `json:"message"`
	// CartRevision records the cart revision the result was computed
	// against; a result for an older revision is stale and dropped.
	CartRevision int `json:"cartRevision,omitempty"`
}
