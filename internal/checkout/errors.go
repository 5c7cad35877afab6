package checkout

import (
	"errors"
	"fmt"
)

// Validation errors are caller-correctable: the customer fixes the input and
// resubmits. They never touch persisted state.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrTermsNotAccepted = errors.New("terms and conditions were not accepted")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrInvalidDiscount  = errors.New("discount exceeds cart subtotal")
)

// PersistenceError wraps a failed store call. Retryable by resubmission when
// OrderID is empty; when OrderID is set the order itself was created and only
// the tracking record is missing — repair with EnsureTracking, do not place
// the order again.
type PersistenceError struct {
	Op      string
	OrderID string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("checkout %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
