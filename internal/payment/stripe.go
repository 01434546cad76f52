package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// Stripe confirms card payments against the Stripe API using the
// publishable key and the payment method reported by the card element.
// Redirect-based follow-up actions are disabled: a charge either
// completes in-line or fails.
type Stripe struct {
	key  string
	base *url.URL
	http *http.Client
	log  *zap.Logger

	mu       sync.Mutex
	element  string
	method   string
	handlers []func(ChangeEvent)
}

func NewStripe(publishableKey, baseURL string, httpClient *http.Client, log *zap.Logger) (*Stripe, error) {
	if baseURL == "" {
		baseURL = defaultStripeBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse stripe base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Stripe{key: publishableKey, base: u, http: httpClient, log: log}, nil
}

func (s *Stripe) Mount(elementID string) {
	s.mu.Lock()
	s.element = elementID
	s.mu.Unlock()
}

func (s *Stripe) OnChange(fn func(ChangeEvent)) {
	s.mu.Lock()
	s.handlers = append(s.handlers, fn)
	s.mu.Unlock()
}

// ReportChange feeds a widget change event in from the transport layer
// and fans it out to subscribers. The latest payment method reference
// is kept for Confirm.
func (s *Stripe) ReportChange(ev ChangeEvent) {
	s.mu.Lock()
	if ev.PaymentMethod != "" {
		s.method = ev.PaymentMethod
	}
	handlers := make([]func(ChangeEvent), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

func (s *Stripe) Confirm(ctx context.Context, clientSecret string) error {
	s.mu.Lock()
	method := s.method
	s.mu.Unlock()

	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return err
	}

	form := url.Values{
		"key":                      {s.key},
		"client_secret":            {clientSecret},
		"payment_method":           {method},
		"error_on_requires_action": {"true"},
	}

	u := s.base.ResolveReference(&url.URL{Path: "/v1/payment_intents/" + intentID + "/confirm"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode confirm response: %w", err)
	}

	if body.Error != nil {
		return fmt.Errorf("%s", body.Error.Message)
	}
	if body.Status != "succeeded" {
		return fmt.Errorf("payment not completed: status %q", body.Status)
	}

	s.log.Info("card payment confirmed", zap.String("paymentIntent", intentID))
	return nil
}

// intentIDFromSecret extracts the intent id from a client secret of the
// form pi_xxx_secret_yyy.
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}
