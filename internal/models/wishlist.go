package models

import "time"

// Wishlist is the customer's set of favorited products. Items are catalog
// snapshots; a product appears in the list at most once.
type Wishlist struct {
	OwnerID   string    `json:"ownerId"`
	Items     []Product `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmpty reports whether the wishlist has no items.
func (w Wishlist) IsEmpty() bool {
	return len(w.Items) == 0
}
