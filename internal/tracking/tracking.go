package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/internal/models"
)

// Stage is one of the four monotonic delivery states.
type Stage string

const (
	StageOrdered        Stage = "Ordered"
	StageShipped        Stage = "Shipped"
	StageOutForDelivery Stage = "OutForDelivery"
	StageDelivered      Stage = "Delivered"
)

var (
	ErrNotDelivered     = errors.New("order has not been delivered yet")
	ErrReturnOpen       = errors.New("a return request is already open for this order")
	ErrEmptyReason      = errors.New("return reason must not be empty")
	ErrAlreadyDelivered = errors.New("delivered orders cannot be cancelled")
	ErrUnknownStage     = errors.New("unknown tracking stage")
)

// IllegalTransitionError rejects out-of-order stage writes. The delivery
// pipeline is strictly sequential; skipping a stage is a contract violation
// by the fulfillment caller, not something to silently repair.
type IllegalTransitionError struct {
	From Stage
	To   Stage
}

func (e IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal tracking transition from %s to %s", e.From, e.To)
}

// NewRecord is the tracking record created atomically alongside an order:
// Ordered is already true, everything else false.
func NewRecord(orderID string, now time.Time) models.TrackingRecord {
	return models.TrackingRecord{
		OrderID:   orderID,
		Status:    models.StageFlags{Ordered: true},
		UpdatedAt: now,
	}
}

// Current returns the highest stage that is currently true.
func Current(f models.StageFlags) Stage {
	switch {
	case f.Delivered:
		return StageDelivered
	case f.OutForDelivery:
		return StageOutForDelivery
	case f.Shipped:
		return StageShipped
	default:
		return StageOrdered
	}
}

// ParseStage maps the wire value onto a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(strings.TrimSpace(s)) {
	case StageOrdered:
		return StageOrdered, nil
	case StageShipped:
		return StageShipped, nil
	case StageOutForDelivery:
		return StageOutForDelivery, nil
	case StageDelivered:
		return StageDelivered, nil
	default:
		return "", ErrUnknownStage
	}
}

func successor(s Stage) Stage {
	switch s {
	case StageOrdered:
		return StageShipped
	case StageShipped:
		return StageOutForDelivery
	case StageOutForDelivery:
		return StageDelivered
	default:
		return ""
	}
}

// Advance moves the record to next, which must be the immediate successor of
// the highest currently-true stage. Delivered is terminal.
func Advance(rec models.TrackingRecord, next Stage, now time.Time) (models.TrackingRecord, error) {
	current := Current(rec.Status)
	if successor(current) != next {
		return models.TrackingRecord{}, IllegalTransitionError{From: current, To: next}
	}

	switch next {
	case StageShipped:
		rec.Status.Shipped = true
	case StageOutForDelivery:
		rec.Status.OutForDelivery = true
	case StageDelivered:
		rec.Status.Delivered = true
	}
	rec.UpdatedAt = now
	return rec, nil
}

// RequestReturn opens the customer return sub-flow. Only delivered orders
// qualify, at most one open (Pending or Approved) request exists at a time,
// and the reason must survive trimming.
func RequestReturn(rec models.TrackingRecord, reason string, now time.Time) (models.TrackingRecord, error) {
	if !rec.Status.Delivered {
		return models.TrackingRecord{}, ErrNotDelivered
	}
	if rr := rec.ReturnRequest; rr != nil && (rr.Status == models.ReturnPending || rr.Status == models.ReturnApproved) {
		return models.TrackingRecord{}, ErrReturnOpen
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.TrackingRecord{}, ErrEmptyReason
	}

	rec.ReturnRequest = &models.ReturnRequest{
		Reason:      reason,
		Status:      models.ReturnPending,
		RequestedAt: now,
	}
	rec.UpdatedAt = now
	return rec, nil
}

// ResolveReturn moves a pending request to Approved or Rejected.
func ResolveReturn(rec models.TrackingRecord, approve bool, now time.Time) (models.TrackingRecord, error) {
	if rec.ReturnRequest == nil || rec.ReturnRequest.Status != models.ReturnPending {
		return models.TrackingRecord{}, errors.New("no pending return request")
	}

	rr := *rec.ReturnRequest
	if approve {
		rr.Status = models.ReturnApproved
	} else {
		rr.Status = models.ReturnRejected
	}
	rec.ReturnRequest = &rr
	rec.UpdatedAt = now
	return rec, nil
}

// CanCancel is the cancellation policy: an order may be cancelled (deleted
// together with its tracking record) only while it has not been delivered.
func CanCancel(rec models.TrackingRecord) error {
	if rec.Status.Delivered {
		return ErrAlreadyDelivered
	}
	return nil
}
