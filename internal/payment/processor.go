package payment

import "context"

// ChangeEvent is what the card input widget reports as the shopper
// types: whether the input is complete, the current validation message,
// and the payment method reference once the widget has one.
type ChangeEvent struct {
	Complete      bool   `json:"complete"`
	ErrorMessage  string `json:"errorMessage"`
	PaymentMethod string `json:"paymentMethod"`
}

// Processor is the card-payment capability the checkout flow depends
// on. The concrete processor lives outside this module; checkout only
// mounts the widget, listens for its change events and confirms the
// charge against a client secret.
type Processor interface {
	Mount(elementID string)
	OnChange(fn func(ChangeEvent))
	// Confirm completes the charge authorized by clientSecret using the
	// mounted widget's payment method. A non-nil error carries the
	// processor's message verbatim and means no charge was captured.
	Confirm(ctx context.Context, clientSecret string) error
}
