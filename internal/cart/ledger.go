package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/internal/models"
)

// Ledger operations are total functions over cart values: an empty cart or a
// missing product id is never an error, because the cart is a UI-facing
// working set, not a ledger of record. Every operation returns the new cart
// state and leaves its input untouched.

// AddItem merges the product into the cart: an existing line for the same
// product id gets its quantity incremented, otherwise a new line is appended.
// Quantities below 1 are treated as 1.
func AddItem(c models.Cart, p models.Product, qty int) models.Cart {
	if qty < 1 {
		qty = 1
	}

	out := clone(c)
	for i := range out.Lines {
		if out.Lines[i].ProductID == p.ID {
			out.Lines[i].Quantity += qty
			return out
		}
	}

	out.Lines = append(out.Lines, models.CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		UnitPrice: p.Price,
		Image:     p.DisplayImage(),
		Quantity:  qty,
	})
	return out
}

// Increase bumps the matching line's quantity by one. No-op when the line is
// absent.
func Increase(c models.Cart, productID string) models.Cart {
	out := clone(c)
	for i := range out.Lines {
		if out.Lines[i].ProductID == productID {
			out.Lines[i].Quantity++
			break
		}
	}
	return out
}

// Decrease lowers the matching line's quantity by one, floored at 1. It never
// removes the line; use Remove for that.
func Decrease(c models.Cart, productID string) models.Cart {
	out := clone(c)
	for i := range out.Lines {
		if out.Lines[i].ProductID == productID && out.Lines[i].Quantity > 1 {
			out.Lines[i].Quantity--
			break
		}
	}
	return out
}

// Remove deletes the line entirely, regardless of quantity.
func Remove(c models.Cart, productID string) models.Cart {
	out := clone(c)
	lines := make([]models.CartLine, 0, len(out.Lines))
	for _, line := range out.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	out.Lines = lines
	return out
}

// Subtotal is the sum of unitPrice x quantity over all lines, at the prices
// currently known to the cart.
func Subtotal(c models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Clear returns the cart with all lines removed.
func Clear(c models.Cart) models.Cart {
	out := c
	out.Lines = nil
	out.UpdatedAt = time.Now()
	return out
}

func clone(c models.Cart) models.Cart {
	out := c
	out.Lines = make([]models.CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	out.UpdatedAt = time.Now()
	return out
}
