package checkout

import "context"

type Customer struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
}

// Address is the resolved shape sent to the backend: state and country
// are plain display names, not reference objects.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type Order struct {
	TotalPrice    float64 `json:"totalPrice" validate:"gte=0"`
	TotalQuantity int     `json:"totalQuantity" validate:"gte=0"`
}

// OrderItem captures one cart line at submission time. The fields are
// copies: clearing the cart afterwards does not touch a built purchase.
type OrderItem struct {
	ProductID string  `json:"productId" validate:"required"`
	ImageURL  string  `json:"imageUrl"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
}

// Purchase is the complete snapshot posted to the order backend.
type Purchase struct {
	Customer        Customer    `json:"customer" validate:"required"`
	ShippingAddress Address     `json:"shippingAddress" validate:"required"`
	BillingAddress  Address     `json:"billingAddress" validate:"required"`
	Order           Order       `json:"order" validate:"required"`
	OrderItems      []OrderItem `json:"orderItems" validate:"required,min=1,dive"`
}

// PaymentInfo is the amount in minor currency units handed to the
// payment processor.
type PaymentInfo struct {
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	Currency     string `json:"currency" validate:"required,iso4217"`
	ReceiptEmail string `json:"receiptEmail,omitempty"`
}

// OrderGateway is the backend pair of calls the submission sequence
// depends on, in strict order: create the payment intent, then place
// the order.
type OrderGateway interface {
	CreatePaymentIntent(ctx context.Context, info PaymentInfo) (clientSecret string, err error)
	PlaceOrder(ctx context.Context, p Purchase) (trackingNumber string, err error)
}

// Events receives checkout outcomes worth a durable record. Both calls
// are best effort: a publish failure never alters the checkout result.
type Events interface {
	OrderPlaced(ctx context.Context, submissionID, trackingNumber string, p Purchase)
	PaymentUnrecorded(ctx context.Context, submissionID string, info PaymentInfo, p Purchase, placeOrderErr error)
}

// Navigator abstracts the post-checkout redirect.
type Navigator interface {
	NavigateTo(path string)
}

// NopEvents satisfies Events when no broker is configured.
type NopEvents struct{}

func (NopEvents) OrderPlaced(context.Context, string, string, Purchase) {}
func (NopEvents) PaymentUnrecorded(context.Context, string, PaymentInfo, Purchase, error) {
}
