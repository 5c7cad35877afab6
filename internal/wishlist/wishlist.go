package wishlist

import (
	"time"

	"backend/internal/models"
)

// Wishlist operations follow the same value semantics as the cart ledger:
// total functions returning the new state, inputs left untouched. Membership
// is keyed by product id.

// Toggle flips the product's membership: an absent product is appended, a
// present one is removed. The second return reports whether the product is in
// the list afterwards.
func Toggle(w models.Wishlist, p models.Product) (models.Wishlist, bool) {
	out := clone(w)
	for i := range out.Items {
		if out.Items[i].ID == p.ID {
			out.Items = append(out.Items[:i], out.Items[i+1:]...)
			return out, false
		}
	}
	out.Items = append(out.Items, p)
	return out, true
}

// Find returns the stored snapshot for the product id.
func Find(w models.Wishlist, productID string) (models.Product, bool) {
	for _, p := range w.Items {
		if p.ID == productID {
			return p, true
		}
	}
	return models.Product{}, false
}

// Remove drops the product when present. No-op when it is absent.
func Remove(w models.Wishlist, productID string) models.Wishlist {
	out := clone(w)
	items := make([]models.Product, 0, len(out.Items))
	for _, p := range out.Items {
		if p.ID != productID {
			items = append(items, p)
		}
	}
	out.Items = items
	return out
}

func clone(w models.Wishlist) models.Wishlist {
	out := w
	out.Items = make([]models.Product, len(w.Items))
	copy(out.Items, w.Items)
	out.UpdatedAt = time.Now()
	return out
}
