package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"backend/internal/models"
)

// orderConfirmedEvent is the payload published to the confirmation topic.
// Downstream consumers (mail, invoicing) pick it up from there.
type orderConfirmedEvent struct {
	OrderID       string    `json:"orderId"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CustomerName  string    `json:"customerName"`
	ItemCount     int       `json:"itemCount"`
	TotalPrice    string    `json:"totalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (k *Kafka) SendOrderConfirmation(ctx context.Context, o models.Order) error {
	event := orderConfirmedEvent{
		OrderID:       o.OrderID,
		CustomerEmail: o.CustomerEmail,
		CustomerName:  o.Customer.Name,
		ItemCount:     len(o.Items),
		TotalPrice:    o.TotalPrice.String(),
		CreatedAt:     o.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
