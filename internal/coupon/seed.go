package coupon

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/internal/models"
)

// DefaultCatalog is the launch coupon set. Inserted once at startup when the
// coupons collection is empty; after that the collection is the source of
// truth.
func DefaultCatalog() []models.Coupon {
	return []models.Coupon{
		{
			Code:          "NEWUSER10",
			DiscountType:  models.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			ExpiryDate:    time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			UsageLimit:    100,
			Description:   "10% off for new users",
		},
		{
			Code:          "FLAT100",
			DiscountType:  models.DiscountFixed,
			DiscountValue: decimal.NewFromInt(100),
			ExpiryDate:    time.Date(2025, time.November, 30, 23, 59, 59, 0, time.UTC),
			UsageLimit:    50,
			Description:   "₹100 off on orders above ₹999",
		},
	}
}
