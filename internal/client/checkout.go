package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
)

// validate checks outgoing payloads before any bytes leave the process.
var validate = validator.New()

// CheckoutClient wraps the two backend calls of the submission
// sequence.
type CheckoutClient struct{ c *Client }

func NewCheckoutClient(c *Client) *CheckoutClient { return &CheckoutClient{c: c} }

type paymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type placeOrderResponse struct {
	OrderTrackingNumber string `json:"orderTrackingNumber"`
}

// CreatePaymentIntent asks the backend for a payment intent covering
// info and returns its client secret.
func (cc *CheckoutClient) CreatePaymentIntent(ctx context.Context, info checkout.PaymentInfo) (string, error) {
	if err := validate.Struct(info); err != nil {
		return "", fmt.Errorf("payment info rejected: %w", err)
	}

	var resp paymentIntentResponse
	if err := cc.c.DoJSON(ctx, http.MethodPost, "/api/checkout/payment-intent", "", info, &resp); err != nil {
		return "", err
	}
	if resp.ClientSecret == "" {
		return "", fmt.Errorf("%s: payment intent response missing client secret", cc.c.Name)
	}
	return resp.ClientSecret, nil
}

// PlaceOrder records the purchase and returns the backend's tracking
// number.
func (cc *CheckoutClient) PlaceOrder(ctx context.Context, p checkout.Purchase) (string, error) {
	if err := validate.Struct(p); err != nil {
		return "", fmt.Errorf("purchase rejected: %w", err)
	}

	var resp placeOrderResponse
	if err := cc.c.DoJSON(ctx, http.MethodPost, "/api/checkout/purchase", "", p, &resp); err != nil {
		return "", err
	}
	if resp.OrderTrackingNumber == "" {
		return "", fmt.Errorf("%s: purchase response missing tracking number", cc.c.Name)
	}
	return resp.OrderTrackingNumber, nil
}
