package domain

import "time"

// CartLine is one product selection. Display fields are snapshotted at add
// time and never re-fetched from the catalog.
type CartLine struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Image        string `json:"image,omitempty"`
	Category     string `json:"category,omitempty"`
	Slug         string `json:"slug,omitempty"`
	RegularPrice int64  `json:"regularPrice"`
	SalePrice    int64  `json:"salePrice,omitempty"`
	Quantity     int    `json:"quantity"`
}

// UnitPrice returns the effective unit price: the sale price when one is set,
// the regular price otherwise.
func (l CartLine) UnitPrice() int64 {
	if l.SalePrice > 0 {
		return l.SalePrice
	}
	return l.RegularPrice
}

// Cart holds the session's selected lines, at most one per product.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Lines     []CartLine `json:"lines"`
	// Revision increments on every mutation; a coupon result computed
	// against an older revision is discarded rather than applied.
	Revision  int           `json:"revision"`
	Coupon    *CouponResult `json:"coupon,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Line returns the line for productID, or nil when absent.
func (c *Cart) Line(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity sums quantities across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// SavedItems is the wishlist-style set of product IDs moved out of the cart.
type SavedItems struct {
	SessionID  string    `json:"sessionId"`
	ProductIDs []string  `json:"productIds"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Contains reports whether productID is in the saved set.
func (s *SavedItems) Contains(productID string) bool {
	for _, id := range s.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
