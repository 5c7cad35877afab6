package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product+quantity pair in a customer's working cart.
// Invariant: a cart never holds two lines for the same product id.
type CartLine struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Cart is the mutable working set owned by a single customer (or anonymous
// session). It is a value: ledger operations return a new cart rather than
// mutating in place, so persistence and UI layers always see consistent
// snapshots.
type Cart struct {
	OwnerID   string     `json:"ownerId"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
