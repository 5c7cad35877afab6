package coupon

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"backend/internal/models"
)

var (
	ErrNotFound     = errors.New("coupon not found")
	ErrExpired      = errors.New("coupon has expired")
	ErrLimitReached = errors.New("coupon usage limit reached")
)

var oneHundred = decimal.NewFromInt(100)

// Evaluate decides whether the code is applicable right now. Lookup is an
// exact match on the trimmed code, case-insensitive. Pure: recording a
// redemption is the caller's decision, and discarding an applied coupon never
// touches UsedCount.
func Evaluate(code string, catalog []models.Coupon, now time.Time) (models.Coupon, error) {
	trimmed := strings.TrimSpace(code)

	for _, c := range catalog {
		if !strings.EqualFold(c.Code, trimmed) {
			continue
		}
		if now.After(c.ExpiryDate) {
			return models.Coupon{}, ErrExpired
		}
		if c.UsedCount >= c.UsageLimit {
			return models.Coupon{}, ErrLimitReached
		}
		return c, nil
	}

	return models.Coupon{}, ErrNotFound
}

// Discount computes the coupon's value against a subtotal. Fixed coupons are
// capped at the subtotal; percentage coupons stay below it by construction
// for values up to 100.
func Discount(c models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case models.DiscountFixed:
		if c.DiscountValue.GreaterThan(subtotal) {
			return subtotal
		}
		return c.DiscountValue
	case models.DiscountPercentage:
		return subtotal.Mul(c.DiscountValue).Div(oneHundred)
	default:
		return decimal.Zero
	}
}

// Apply bundles a validated coupon with its priced amount for the current
// subtotal.
func Apply(c models.Coupon, subtotal decimal.Decimal) models.AppliedDiscount {
	return models.AppliedDiscount{Coupon: c, Amount: Discount(c, subtotal)}
}
