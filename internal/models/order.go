package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a cart line frozen at purchase time. UnitPrice is the price
// the customer actually paid; later catalog changes never touch it.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

// CustomerInfo is the shipping contact snapshot stored on an order.
type CustomerInfo struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
}

// Order is the immutable record created at successful checkout. Once created,
// Items and TotalPrice never change; the only way an order goes away is
// customer-initiated cancellation before shipment.
type Order struct {
	OrderID        string          `json:"orderId"`
	CustomerID     string          `json:"customerId,omitempty"`
	CustomerEmail  string          `json:"customerEmail,omitempty"`
	Customer       CustomerInfo    `json:"customer"`
	Items          []OrderItem     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	CouponCode     string          `json:"couponCode,omitempty"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	CreatedAt      time.Time       `json:"createdAt"`
}
