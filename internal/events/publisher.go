package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
)

const (
	OrderPlacedQueue       = "checkout.order.placed"
	PaymentUnrecordedQueue = "checkout.payment.unrecorded"
)

// OrderPlaced is emitted after a purchase is recorded by the backend.
type OrderPlaced struct {
	EventType      string    `json:"eventType"`
	SubmissionID   string    `json:"submissionId"`
	TrackingNumber string    `json:"trackingNumber"`
	CustomerEmail  string    `json:"customerEmail"`
	TotalPrice     float64   `json:"totalPrice"`
	TotalQuantity  int       `json:"totalQuantity"`
	Timestamp      time.Time `json:"timestamp"`
}

// PaymentUnrecorded is emitted when a payment was captured but placing
// the order failed. It exists so that inconsistency is reconciled by an
// operator instead of disappearing into a user-facing alert.
type PaymentUnrecorded struct {
	EventType     string            `json:"eventType"`
	SubmissionID  string            `json:"submissionId"`
	CustomerEmail string            `json:"customerEmail"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Purchase      checkout.Purchase `json:"purchase"`
	Error         string            `json:"error"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Publisher writes checkout outcomes to RabbitMQ. Publishing is best
// effort from the checkout flow's point of view: failures are logged,
// never surfaced to the shopper.
type Publisher struct {
	ch  *amqp.Channel
	log *zap.Logger
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues so publish never fails due to missing infra
	for _, q := range []string{OrderPlacedQueue, PaymentUnrecordedQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", q, err)
		}
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{ch: ch, log: log}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) OrderPlaced(ctx context.Context, submissionID, trackingNumber string, purchase checkout.Purchase) {
	ev := OrderPlaced{
		EventType:      "OrderPlaced",
		SubmissionID:   submissionID,
		TrackingNumber: trackingNumber,
		CustomerEmail:  purchase.Customer.Email,
		TotalPrice:     purchase.Order.TotalPrice,
		TotalQuantity:  purchase.Order.TotalQuantity,
		Timestamp:      time.Now().UTC(),
	}
	if err := p.publishJSON(ctx, OrderPlacedQueue, ev); err != nil {
		p.log.Warn("publish OrderPlaced failed",
			zap.String("submissionId", submissionID), zap.Error(err))
	}
}

func (p *Publisher) PaymentUnrecorded(ctx context.Context, submissionID string, info checkout.PaymentInfo, purchase checkout.Purchase, placeOrderErr error) {
	ev := PaymentUnrecorded{
		EventType:     "PaymentUnrecorded",
		SubmissionID:  submissionID,
		CustomerEmail: purchase.Customer.Email,
		Amount:        info.Amount,
		Currency:      info.Currency,
		Purchase:      purchase,
		Error:         placeOrderErr.Error(),
		Timestamp:     time.Now().UTC(),
	}
	if err := p.publishJSON(ctx, PaymentUnrecordedQueue, ev); err != nil {
		p.log.Error("publish PaymentUnrecorded failed",
			zap.String("submissionId", submissionID), zap.Error(err))
	}
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, ev any) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
