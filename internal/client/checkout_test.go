package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
)

func validPurchase() checkout.Purchase {
	return checkout.Purchase{
		Customer: checkout.Customer{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		ShippingAddress: checkout.Address{
			Street: "1 Main St", City: "Springfield", State: "California",
			Country: "United States", ZipCode: "12345",
		},
		BillingAddress: checkout.Address{
			Street: "1 Main St", City: "Springfield", State: "California",
			Country: "United States", ZipCode: "12345",
		},
		Order:      checkout.Order{TotalPrice: 20, TotalQuantity: 2},
		OrderItems: []checkout.OrderItem{{ProductID: "p1", UnitPrice: 10, Quantity: 2}},
	}
}

func newCheckoutClient(t *testing.T, srv *httptest.Server) *CheckoutClient {
	t.Helper()
	c, err := NewClient("order-backend", srv.URL, srv.Client())
	require.NoError(t, err)
	return NewCheckoutClient(c)
}

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/checkout/payment-intent", r.URL.Path)

		var info checkout.PaymentInfo
		require.NoError(t, json.NewDecoder(r.Body).Decode(&info))
		assert.Equal(t, int64(4999), info.Amount)
		assert.Equal(t, "USD", info.Currency)

		_, _ = w.Write([]byte(`{"client_secret":"pi_1_secret_2"}`))
	}))
	defer srv.Close()

	secret, err := newCheckoutClient(t, srv).CreatePaymentIntent(context.Background(),
		checkout.PaymentInfo{Amount: 4999, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_2", secret)
}

func TestCreatePaymentIntent_RejectsInvalidPayloadWithoutNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newCheckoutClient(t, srv).CreatePaymentIntent(context.Background(),
		checkout.PaymentInfo{Amount: 0, Currency: "US"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestPlaceOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/checkout/purchase", r.URL.Path)

		var p checkout.Purchase
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "United States", p.ShippingAddress.Country)
		require.Len(t, p.OrderItems, 1)

		_, _ = w.Write([]byte(`{"orderTrackingNumber":"T123"}`))
	}))
	defer srv.Close()

	tracking, err := newCheckoutClient(t, srv).PlaceOrder(context.Background(), validPurchase())
	require.NoError(t, err)
	assert.Equal(t, "T123", tracking)
}

func TestPlaceOrder_BackendErrorPropagatesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"inventory exhausted"}`))
	}))
	defer srv.Close()

	_, err := newCheckoutClient(t, srv).PlaceOrder(context.Background(), validPurchase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inventory exhausted")
}

func TestPlaceOrder_RejectsEmptyItemsWithoutNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := validPurchase()
	p.OrderItems = nil

	_, err := newCheckoutClient(t, srv).PlaceOrder(context.Background(), p)
	require.Error(t, err)
	assert.False(t, called)
}

func TestOrderHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/search/findByCustomerEmailOrderByDateCreatedDesc", r.URL.Path)
		require.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"_embedded":{"orders":[
			{"id":"o2","orderTrackingNumber":"T2","totalPrice":30,"totalQuantity":3,"dateCreated":"2026-02-01T00:00:00Z"},
			{"id":"o1","orderTrackingNumber":"T1","totalPrice":10,"totalQuantity":1,"dateCreated":"2026-01-01T00:00:00Z"}]}}`))
	}))
	defer srv.Close()

	c, err := NewClient("order-backend", srv.URL, srv.Client())
	require.NoError(t, err)

	orders, err := NewOrderHistoryClient(c).History(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Backend order is preserved as-is (newest first).
	assert.Equal(t, "T2", orders[0].OrderTrackingNumber)
	assert.Equal(t, "T1", orders[1].OrderTrackingNumber)
}
