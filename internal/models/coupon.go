package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Coupon is reference data. UsedCount is advisory: it is only incremented
// through the store's RecordRedemption hook, never by the validator.
type Coupon struct {
	Code          string          `json:"code"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	ExpiryDate    time.Time       `json:"expiryDate"`
	UsageLimit    int             `json:"usageLimit"`
	UsedCount     int             `json:"usedCount"`
	Description   string          `json:"description,omitempty"`
}

// AppliedDiscount is the transient result of pricing a coupon against a cart
// subtotal. It lives on a checkout session only; orders keep a denormalized
// snapshot (code + amount), not the coupon itself.
type AppliedDiscount struct {
	Coupon Coupon          `json:"coupon"`
	Amount decimal.Decimal `json:"amount"`
}
