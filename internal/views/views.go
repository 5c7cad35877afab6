package views

import "backend/internal/models"

// recentViewsCap bounds the per-customer browsing history.
const recentViewsCap = 10

// Push records a product view: any earlier entry for the same product is
// dropped, the product moves to the front, and the list is trimmed to the
// cap. Newest first.
func Push(list []models.Product, p models.Product) []models.Product {
	out := make([]models.Product, 0, len(list)+1)
	out = append(out, p)
	for _, v := range list {
		if v.ID != p.ID {
			out = append(out, v)
		}
	}
	if len(out) > recentViewsCap {
		out = out[:recentViewsCap]
	}
	return out
}
