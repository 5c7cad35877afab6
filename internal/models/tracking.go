package models

import "time"

type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "Pending"
	ReturnApproved ReturnStatus = "Approved"
	ReturnRejected ReturnStatus = "Rejected"
)

// ReturnRequest is the customer-initiated return sub-flow. At most one open
// (Pending or Approved) request exists per order.
type ReturnRequest struct {
	Reason      string       `json:"reason"`
	Status      ReturnStatus `json:"status"`
	RequestedAt time.Time    `json:"requestedAt"`
}

// StageFlags mirror the delivery pipeline. Each flag becomes true in the
// fixed order Ordered, Shipped, OutForDelivery, Delivered and never reverts.
type StageFlags struct {
	Ordered        bool `json:"ordered"`
	Shipped        bool `json:"shipped"`
	OutForDelivery bool `json:"outForDelivery"`
	Delivered      bool `json:"delivered"`
}

// TrackingRecord pairs 1:1 with an order. It is created alongside the order
// with Ordered=true and advanced only by the fulfillment side; the customer
// touches it only through the return-request flow.
type TrackingRecord struct {
	OrderID       string         `json:"orderId"`
	Status        StageFlags     `json:"status"`
	ReturnRequest *ReturnRequest `json:"returnRequest,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
