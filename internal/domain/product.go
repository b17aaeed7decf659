package domain

// Product is the catalog service's view of a product, as consumed when a
// cart line snapshot is built.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Category     string   `json:"category"`
	RegularPrice int64    `json:"price"`
	SalePrice    int64    `json:"salePrice,omitempty"`
	Images       []string `json:"images,omitempty"`
	InStock      bool     `json:"inStock"`
}

// Image returns the first catalog image, or empty when the product has none.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
