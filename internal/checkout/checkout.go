package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"

	"backend/internal/cart"
	"backend/internal/models"
	"backend/internal/tracking"
)

// Store is the slice of persistence checkout needs. CreateTracking must be
// idempotent (create-if-absent), which makes the compensating retries safe.
type Store interface {
	CreateOrder(ctx context.Context, o models.Order) error
	CreateTracking(ctx context.Context, rec models.TrackingRecord) error
	SaveCart(ctx context.Context, c models.Cart) error
}

// Notifier delivers the order confirmation. Best effort: failures are logged
// and never escalate into a checkout failure.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, o models.Order) error
}

// ShippingInfo is the customer-entered checkout form. The phone number is a
// country calling code plus a local number; it is validated and stored in
// international format.
type ShippingInfo struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	CountryCode   string `json:"countryCode" binding:"required"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

// Input is everything PlaceOrder needs. Discount is optional; CustomerID and
// CustomerEmail are empty for guest checkout.
type Input struct {
	Cart          models.Cart
	Shipping      ShippingInfo
	Discount      *models.AppliedDiscount
	CustomerID    string
	CustomerEmail string
}

const trackingCreateAttempts = 3

// Orchestrator converts a cart into an immutable order plus its initial
// tracking record.
type Orchestrator struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func NewOrchestrator(store Store, notifier Notifier) *Orchestrator {
	return &Orchestrator{store: store, notifier: notifier, now: time.Now}
}

// PlaceOrder validates the input (first failing check wins), snapshots the
// cart into an order, persists order and tracking, clears the cart, and fires
// the confirmation notification. The cart is cleared only after both records
// exist; a persistence failure leaves it intact so nothing the customer built
// up is lost.
func (o *Orchestrator) PlaceOrder(ctx context.Context, in Input) (models.Order, error) {
	if in.Cart.IsEmpty() {
		return models.Order{}, ErrEmptyCart
	}
	if !in.Shipping.AgreedToTerms {
		return models.Order{}, ErrTermsNotAccepted
	}

	formattedPhone, err := validatePhone(in.Shipping.CountryCode, in.Shipping.Phone)
	if err != nil {
		return models.Order{}, ErrInvalidPhone
	}

	subtotal := cart.Subtotal(in.Cart)

	discountAmount := decimal.Zero
	couponCode := ""
	if in.Discount != nil {
		// Re-check against the live subtotal: the cart may have shrunk since
		// the coupon was applied.
		if in.Discount.Amount.GreaterThan(subtotal) {
			return models.Order{}, ErrInvalidDiscount
		}
		discountAmount = in.Discount.Amount
		couponCode = in.Discount.Coupon.Code
	}

	now := o.now()
	total := subtotal.Sub(discountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	order := models.Order{
		OrderID:       newOrderID(len(in.Cart.Lines), now),
		CustomerID:    in.CustomerID,
		CustomerEmail: in.CustomerEmail,
		Customer: models.CustomerInfo{
			Name:        strings.TrimSpace(in.Shipping.Name),
			Address:     strings.TrimSpace(in.Shipping.Address),
			Phone:       formattedPhone,
			CountryCode: in.Shipping.CountryCode,
		},
		Items:          snapshotLines(in.Cart.Lines),
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		CouponCode:     couponCode,
		TotalPrice:     total,
		CreatedAt:      now,
	}

	if err := o.store.CreateOrder(ctx, order); err != nil {
		return models.Order{}, &PersistenceError{Op: "createOrder", Err: err}
	}

	if err := o.createTrackingWithRetry(ctx, order.OrderID, now); err != nil {
		// The order exists; never roll it back. The caller repairs the missing
		// tracking record via EnsureTracking instead of re-placing the order.
		return models.Order{}, &PersistenceError{Op: "createTracking", OrderID: order.OrderID, Err: err}
	}

	cleared := cart.Clear(in.Cart)
	if err := o.store.SaveCart(ctx, cleared); err != nil {
		log.Printf("[CHECKOUT] [WARN] cart clear failed for %s after order %s: %v", in.Cart.OwnerID, order.OrderID, err)
	}

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := o.notifier.SendOrderConfirmation(notifyCtx, order); err != nil {
			log.Printf("[CHECKOUT] [WARN] confirmation for order %s failed: %v", order.OrderID, err)
		}
	}()

	return order, nil
}

// EnsureTracking repairs an order that was created without its tracking
// record. Safe to call repeatedly; creation is an upsert.
func (o *Orchestrator) EnsureTracking(ctx context.Context, orderID string) error {
	rec := tracking.NewRecord(orderID, o.now())
	if err := o.store.CreateTracking(ctx, rec); err != nil {
		return &PersistenceError{Op: "createTracking", OrderID: orderID, Err: err}
	}
	return nil
}

func (o *Orchestrator) createTrackingWithRetry(ctx context.Context, orderID string, now time.Time) error {
	rec := tracking.NewRecord(orderID, now)

	var lastErr error
	for attempt := 1; attempt <= trackingCreateAttempts; attempt++ {
		lastErr = o.store.CreateTracking(ctx, rec)
		if lastErr == nil {
			return nil
		}
		log.Printf("[CHECKOUT] [WARN] createTracking attempt %d for %s failed: %v", attempt, orderID, lastErr)
	}
	return lastErr
}

// newOrderID combines the cart size and timestamp (the scheme the order ids
// have always used) with a random suffix for collision resistance.
func newOrderID(cartSize int, now time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("order_%d_%d_%s", cartSize, now.UnixMilli(), suffix)
}

func snapshotLines(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}
	return items
}

func validatePhone(countryCode, local string) (string, error) {
	full := strings.ReplaceAll(countryCode+local, " ", "")
	num, err := phonenumbers.Parse(full, "")
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL), nil
}
