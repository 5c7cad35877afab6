package notify

import (
	"context"
	"log"

	"backend/internal/models"
)

// Notifier sends the order confirmation. Strictly best-effort: checkout never
// waits on a notifier beyond its own timeout and never fails because of one.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, o models.Order) error
}

// Log is the notifier used when no broker is configured.
type Log struct{}

func (Log) SendOrderConfirmation(_ context.Context, o models.Order) error {
	log.Printf("[NOTIFY] [INFO] order %s confirmed for %s, total %s", o.OrderID, o.CustomerEmail, o.TotalPrice.String())
	return nil
}
