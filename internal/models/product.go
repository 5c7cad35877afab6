package models

import "github.com/shopspring/decimal"

// Product is a catalog entry as seen by this service. The catalog is owned
// upstream; products are never mutated by the storefront core.
type Product struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Category  string          `json:"category,omitempty"`
}

// DisplayImage prefers the explicit image and falls back to the thumbnail,
// since upstream catalog entries are inconsistent about which field they set.
func (p Product) DisplayImage() string {
	if p.Image != "" {
		return p.Image
	}
	return p.Thumbnail
}
