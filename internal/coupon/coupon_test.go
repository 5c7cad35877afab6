package coupon

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"backend/internal/models"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testCatalog() []models.Coupon {
	return []models.Coupon{
		{
			Code:          "FLAT100",
			DiscountType:  models.DiscountFixed,
			DiscountValue: decimal.NewFromInt(100),
			ExpiryDate:    testNow.Add(24 * time.Hour),
			UsageLimit:    50,
		},
		{
			Code:          "NEWUSER10",
			DiscountType:  models.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			ExpiryDate:    testNow.Add(24 * time.Hour),
			UsageLimit:    100,
		},
	}
}

func TestEvaluateLookupIsCaseInsensitiveAndTrimmed(t *testing.T) {
	for _, code := range []string{"flat100", "FLAT100", "  Flat100  "} {
		c, err := Evaluate(code, testCatalog(), testNow)
		if err != nil {
			t.Fatalf("Evaluate(%q) returned error: %v", code, err)
		}
		if c.Code != "FLAT100" {
			t.Fatalf("Evaluate(%q) matched %q", code, c.Code)
		}
	}
}

func TestEvaluateUnknownCode(t *testing.T) {
	_, err := Evaluate("NOPE", testCatalog(), testNow)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEvaluateExpired(t *testing.T) {
	catalog := testCatalog()
	catalog[0].ExpiryDate = testNow.Add(-time.Hour)

	_, err := Evaluate("FLAT100", catalog, testNow)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestEvaluateLimitReached(t *testing.T) {
	catalog := testCatalog()
	catalog[0].UsedCount = catalog[0].UsageLimit

	_, err := Evaluate("FLAT100", catalog, testNow)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestFixedDiscountCappedAtSubtotal(t *testing.T) {
	flat := testCatalog()[0]

	tests := []struct {
		subtotal int64
		want     int64
	}{
		{1000, 100},
		{100, 100},
		{50, 50},
		{0, 0},
	}
	for _, tt := range tests {
		got := Discount(flat, decimal.NewFromInt(tt.subtotal))
		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Fatalf("Discount(fixed 100, %d) = %s, want %d", tt.subtotal, got, tt.want)
		}
	}
}

func TestPercentageDiscountNeverExceedsSubtotal(t *testing.T) {
	pct := testCatalog()[1]

	for _, subtotal := range []int64{0, 50, 999, 100000} {
		s := decimal.NewFromInt(subtotal)
		got := Discount(pct, s)
		if got.GreaterThan(s) {
			t.Fatalf("percentage discount %s exceeds subtotal %s", got, s)
		}
	}

	if got := Discount(pct, decimal.NewFromInt(1000)); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("10%% of 1000 = %s, want 100", got)
	}
}

func TestApplyAttachesAmount(t *testing.T) {
	applied := Apply(testCatalog()[0], decimal.NewFromInt(1000))
	if applied.Coupon.Code != "FLAT100" || !applied.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected applied discount: %+v", applied)
	}
}
