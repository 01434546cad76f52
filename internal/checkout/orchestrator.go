package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/reference"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSucceeded
	StatePaymentFailed
	StatePlacementFailed
	StateValidationFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StatePaymentFailed:
		return "payment_failed"
	case StatePlacementFailed:
		return "placement_failed"
	case StateValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// ErrSubmissionInFlight is returned by Submit while a previous
// submission has not finished. There is never more than one attempt
// running.
var ErrSubmissionInFlight = errors.New("checkout submission already in flight")

const (
	cardElementID = "card-element"
	currencyUSD   = "USD"
	productsPath  = "/products"
)

// SubmitResult reports the outcome of one submission attempt.
type SubmitResult struct {
	SubmissionID   string
	State          State
	Message        string
	TrackingNumber string
}

// Config carries the orchestrator's collaborators. Events, Navigator
// and Logger may be nil.
type Config struct {
	Cart      *cart.Service
	Reference reference.Provider
	Gateway   OrderGateway
	Processor payment.Processor
	Events    Events
	Navigator Navigator
	Sessions  session.Store
	SessionID string
	Logger    *zap.Logger
}

// Orchestrator drives one checkout visit: it owns the form tree,
// mirrors the cart totals and the widget's validation state, and runs
// the payment-then-order sequence on submit.
type Orchestrator struct {
	cfg Config
	log *zap.Logger

	mu    sync.Mutex
	state State

	form           *forms.Group
	totalPrice     float64
	totalQuantity  int
	countries      []reference.Country
	shippingStates []reference.State
	billingStates  []reference.State
	cardError      string

	unsubs []func()
}

func New(cfg Config) *Orchestrator {
	if cfg.Events == nil {
		cfg.Events = NopEvents{}
	}
	if cfg.Navigator == nil {
		cfg.Navigator = nopNavigator{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		cfg:   cfg,
		log:   log,
		state: StateEditing,
		form:  buildCheckoutForm(),
	}
}

// Initialize prepares a checkout visit: prefills the cached customer
// email, binds the cart totals, loads the country list and mounts the
// payment widget.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	if email, ok := o.cfg.Sessions.Email(ctx, o.cfg.SessionID); ok {
		o.form.Field("customer.email").SetValue(email)
	}

	o.unsubs = append(o.unsubs,
		o.cfg.Cart.TotalPrice.Subscribe(func(p float64) {
			o.mu.Lock()
			o.totalPrice = p
			o.mu.Unlock()
		}),
		o.cfg.Cart.TotalQuantity.Subscribe(func(q int) {
			o.mu.Lock()
			o.totalQuantity = q
			o.mu.Unlock()
		}),
	)

	countries, err := o.cfg.Reference.Countries(ctx)
	if err != nil {
		return fmt.Errorf("load countries: %w", err)
	}
	o.mu.Lock()
	o.countries = countries
	o.mu.Unlock()

	o.cfg.Processor.Mount(cardElementID)
	o.cfg.Processor.OnChange(func(ev payment.ChangeEvent) {
		o.mu.Lock()
		if ev.Complete {
			o.cardError = ""
		} else if ev.ErrorMessage != "" {
			o.cardError = ev.ErrorMessage
		}
		o.mu.Unlock()
	})

	return nil
}

// Close detaches the orchestrator from the cart totals.
func (o *Orchestrator) Close() {
	for _, u := range o.unsubs {
		u()
	}
	o.unsubs = nil
}

func (o *Orchestrator) Form() *forms.Group { return o.form }

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Countries() []reference.Country {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.countries)
}

// StatesFor returns the state list currently offered by the given
// address group's dropdown.
func (o *Orchestrator) StatesFor(groupName string) []reference.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if groupName == "billingAddress" {
		return slices.Clone(o.billingStates)
	}
	return slices.Clone(o.shippingStates)
}

func (o *Orchestrator) CardError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cardError
}

// ToggleBillingSameAsShipping copies the shipping group's current value
// into the billing group when checked, including the state list the
// billing dropdown offers. The copy is a snapshot: later shipping edits
// do not propagate. Unchecking clears the billing group and its states.
func (o *Orchestrator) ToggleBillingSameAsShipping(checked bool) {
	billing := o.form.Group("billingAddress")
	if checked {
		billing.SetValue(o.form.Group("shippingAddress").Value())
		o.mu.Lock()
		o.billingStates = slices.Clone(o.shippingStates)
		o.mu.Unlock()
		return
	}

	billing.Reset()
	o.mu.Lock()
	o.billingStates = nil
	o.mu.Unlock()
}

// OnCountrySelected loads the state list for the country selected in
// the named address group and defaults the group's state to the first
// entry. An empty list leaves the state cleared.
func (o *Orchestrator) OnCountrySelected(ctx context.Context, groupName string) error {
	grp := o.form.Group(groupName)
	if grp == nil {
		return fmt.Errorf("unknown address group %q", groupName)
	}

	country, _ := grp.Field("country").Value().(reference.Country)
	states, err := o.cfg.Reference.States(ctx, country.Code)
	if err != nil {
		return fmt.Errorf("load states for %s: %w", country.Code, err)
	}

	o.mu.Lock()
	if groupName == "billingAddress" {
		o.billingStates = states
	} else {
		o.shippingStates = states
	}
	o.mu.Unlock()

	if len(states) > 0 {
		grp.Field("state").SetValue(states[0])
	} else {
		grp.Field("state").SetValue(nil)
	}
	return nil
}

// Submit runs one submission attempt: validate, snapshot the cart,
// create the payment intent, confirm the card, place the order. Each
// step runs only after the previous one succeeded. A failed attempt
// returns the flow to editing with the cart and form intact.
func (o *Orchestrator) Submit(ctx context.Context) (*SubmitResult, error) {
	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	o.state = StateSubmitting
	o.mu.Unlock()

	res := o.submit(ctx)

	o.mu.Lock()
	if res.State == StateSucceeded {
		o.state = StateSucceeded
	} else {
		o.state = StateEditing
	}
	o.mu.Unlock()

	return res, nil
}

func (o *Orchestrator) submit(ctx context.Context) *SubmitResult {
	submissionID := uuid.NewString()
	log := o.log.With(zap.String("submissionId", submissionID))

	if !o.form.Valid() {
		o.form.MarkAllTouched()
		return &SubmitResult{
			SubmissionID: submissionID,
			State:        StateValidationFailed,
			Message:      "please correct the highlighted fields",
		}
	}

	o.mu.Lock()
	price := o.totalPrice
	qty := o.totalQuantity
	cardError := o.cardError
	o.mu.Unlock()

	items := o.cfg.Cart.Items()
	orderItems := make([]OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, OrderItem{
			ProductID: it.ProductID,
			ImageURL:  it.ImageURL,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	purchase := Purchase{
		Customer: Customer{
			FirstName: o.form.Field("customer.firstName").String(),
			LastName:  o.form.Field("customer.lastName").String(),
			Email:     o.form.Field("customer.email").String(),
		},
		ShippingAddress: resolveAddress(o.form.Group("shippingAddress")),
		BillingAddress:  resolveAddress(o.form.Group("billingAddress")),
		Order:           Order{TotalPrice: price, TotalQuantity: qty},
		OrderItems:      orderItems,
	}

	info := PaymentInfo{
		Amount:       int64(math.Round(price * 100)),
		Currency:     currencyUSD,
		ReceiptEmail: purchase.Customer.Email,
	}

	// Re-check right before going to the network: the widget may have
	// reported an error since the first validation pass.
	if !o.form.Valid() || cardError != "" {
		o.form.MarkAllTouched()
		msg := cardError
		if msg == "" {
			msg = "please correct the highlighted fields"
		}
		return &SubmitResult{
			SubmissionID: submissionID,
			State:        StateValidationFailed,
			Message:      msg,
		}
	}

	clientSecret, err := o.cfg.Gateway.CreatePaymentIntent(ctx, info)
	if err != nil {
		log.Warn("payment intent creation failed", zap.Error(err))
		return &SubmitResult{
			SubmissionID: submissionID,
			State:        StatePaymentFailed,
			Message:      err.Error(),
		}
	}

	if err := o.cfg.Processor.Confirm(ctx, clientSecret); err != nil {
		log.Warn("card confirmation failed", zap.Error(err))
		return &SubmitResult{
			SubmissionID: submissionID,
			State:        StatePaymentFailed,
			Message:      err.Error(),
		}
	}

	trackingNumber, err := o.cfg.Gateway.PlaceOrder(ctx, purchase)
	if err != nil {
		// Payment was captured but the order was not recorded. Keep the
		// cart, surface the error, and leave a durable trace for
		// reconciliation.
		log.Error("order placement failed after captured payment",
			zap.Int64("amount", info.Amount), zap.Error(err))
		o.cfg.Events.PaymentUnrecorded(ctx, submissionID, info, purchase, err)
		return &SubmitResult{
			SubmissionID: submissionID,
			State:        StatePlacementFailed,
			Message:      err.Error(),
		}
	}

	log.Info("order placed",
		zap.String("trackingNumber", trackingNumber),
		zap.Int64("amount", info.Amount),
		zap.Int("quantity", qty))
	o.cfg.Events.OrderPlaced(ctx, submissionID, trackingNumber, purchase)

	o.resetCart()

	return &SubmitResult{
		SubmissionID:   submissionID,
		State:          StateSucceeded,
		TrackingNumber: trackingNumber,
		Message:        fmt.Sprintf("Your order has been received.\nOrder tracking number: %s", trackingNumber),
	}
}

func (o *Orchestrator) resetCart() {
	o.cfg.Cart.Clear()
	o.form.Reset()
	o.cfg.Navigator.NavigateTo(productsPath)
}

// resolveAddress reads an address group and flattens its state and
// country reference objects to their display names.
func resolveAddress(grp *forms.Group) Address {
	return Address{
		Street:  grp.Field("street").String(),
		City:    grp.Field("city").String(),
		State:   stateName(grp.Field("state").Value()),
		Country: countryName(grp.Field("country").Value()),
		ZipCode: grp.Field("zipCode").String(),
	}
}

func stateName(v any) string {
	switch t := v.(type) {
	case reference.State:
		return t.Name
	case string:
		return t
	}
	return ""
}

func countryName(v any) string {
	switch t := v.(type) {
	case reference.Country:
		return t.Name
	case string:
		return t
	}
	return ""
}

type nopNavigator struct{}

func (nopNavigator) NavigateTo(string) {}
