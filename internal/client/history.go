package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// OrderHistory is one backend-recorded past order.
type OrderHistory struct {
	ID                  string    `json:"id"`
	OrderTrackingNumber string    `json:"orderTrackingNumber"`
	TotalPrice          float64   `json:"totalPrice"`
	TotalQuantity       int       `json:"totalQuantity"`
	DateCreated         time.Time `json:"dateCreated"`
}

// OrderHistoryClient fetches a customer's past orders. The backend
// sorts by creation date descending; the list is passed through
// untouched.
type OrderHistoryClient struct{ c *Client }

func NewOrderHistoryClient(c *Client) *OrderHistoryClient { return &OrderHistoryClient{c: c} }

func (oc *OrderHistoryClient) History(ctx context.Context, email string) ([]OrderHistory, error) {
	q := url.Values{"email": {email}}

	var resp struct {
		Embedded struct {
			Orders []OrderHistory `json:"orders"`
		} `json:"_embedded"`
	}
	err := oc.c.DoJSON(ctx, http.MethodGet,
		"/api/orders/search/findByCustomerEmailOrderByDateCreatedDesc", q.Encode(), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Embedded.Orders, nil
}
