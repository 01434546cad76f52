package integration

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/testutil"
)

func TestPublisher_PaymentUnrecordedRoundTrip(t *testing.T) {
	t.Parallel()

	conn := testutil.StartRabbitMQ(t)

	pub, err := events.NewPublisher(conn, nil)
	require.NoError(t, err)
	defer pub.Close()

	purchase := checkout.Purchase{
		Customer:   checkout.Customer{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		Order:      checkout.Order{TotalPrice: 49.99, TotalQuantity: 1},
		OrderItems: []checkout.OrderItem{{ProductID: "p1", UnitPrice: 49.99, Quantity: 1}},
	}
	info := checkout.PaymentInfo{Amount: 4999, Currency: "USD"}

	pub.PaymentUnrecorded(context.Background(), "sub-1", info, purchase,
		errors.New("order backend rejected the purchase"))

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	deliveries, err := ch.Consume(events.PaymentUnrecordedQueue, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var ev events.PaymentUnrecorded
		require.NoError(t, json.Unmarshal(d.Body, &ev))
		require.Equal(t, "PaymentUnrecorded", ev.EventType)
		require.Equal(t, "sub-1", ev.SubmissionID)
		require.Equal(t, int64(4999), ev.Amount)
		require.Equal(t, "order backend rejected the purchase", ev.Error)
	case <-time.After(10 * time.Second):
		t.Fatal("no PaymentUnrecorded event delivered")
	}
}

func TestPublisher_OrderPlacedRoundTrip(t *testing.T) {
	t.Parallel()

	conn := testutil.StartRabbitMQ(t)

	pub, err := events.NewPublisher(conn, nil)
	require.NoError(t, err)
	defer pub.Close()

	purchase := checkout.Purchase{
		Customer: checkout.Customer{Email: "jane@example.com"},
		Order:    checkout.Order{TotalPrice: 20, TotalQuantity: 2},
	}

	pub.OrderPlaced(context.Background(), "sub-2", "T123", purchase)

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	deliveries, err := ch.Consume(events.OrderPlacedQueue, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var ev events.OrderPlaced
		require.NoError(t, json.Unmarshal(d.Body, &ev))
		require.Equal(t, "T123", ev.TrackingNumber)
		require.Equal(t, "jane@example.com", ev.CustomerEmail)
	case <-time.After(10 * time.Second):
		t.Fatal("no OrderPlaced event delivered")
	}
}
