package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/reference"
)

type startCheckoutResponse struct {
	Countries []reference.Country `json:"countries"`
	Email     string              `json:"email,omitempty"`
}

// StartCheckout opens a checkout visit: builds the form, prefills the
// cached email and returns the country list for the address dropdowns.
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))

	o := h.sessions.StartCheckout(s)
	if err := o.Initialize(r.Context()); err != nil {
		h.log.Error("checkout initialize failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "reference data unavailable")
		return
	}

	email, _ := o.Form().Field("customer.email").Value().(string)
	writeJSON(w, http.StatusOK, startCheckoutResponse{
		Countries: o.Countries(),
		Email:     email,
	})
}

func (h *Handler) BillingSameAsShipping(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))
	o := s.Orchestrator()
	if o == nil {
		writeError(w, http.StatusConflict, "checkout not started")
		return
	}

	var body struct {
		Checked bool `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o.ToggleBillingSameAsShipping(body.Checked)

	writeJSON(w, http.StatusOK, map[string]any{
		"billingStates": o.StatesFor("billingAddress"),
	})
}

type countrySelectedRequest struct {
	Group   string            `json:"group"`
	Country reference.Country `json:"country"`
}

func (h *Handler) CountrySelected(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))
	o := s.Orchestrator()
	if o == nil {
		writeError(w, http.StatusConflict, "checkout not started")
		return
	}

	var body countrySelectedRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Group != "shippingAddress" && body.Group != "billingAddress" {
		writeError(w, http.StatusBadRequest, "unknown address group")
		return
	}

	o.Form().Field(body.Group + ".country").SetValue(body.Country)
	if err := o.OnCountrySelected(r.Context(), body.Group); err != nil {
		h.log.Warn("state lookup failed", zap.String("group", body.Group), zap.Error(err))
		writeError(w, http.StatusBadGateway, "state lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"states":        o.StatesFor(body.Group),
		"selectedState": o.Form().Field(body.Group + ".state").Value(),
	})
}

// WidgetChange relays a card-widget change event reported by the
// shopper's browser into the session's processor.
func (h *Handler) WidgetChange(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))

	var ev payment.ChangeEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.Processor.ReportChange(ev)
	w.WriteHeader(http.StatusNoContent)
}

type addressPayload struct {
	Street  string            `json:"street"`
	City    string            `json:"city"`
	State   reference.State   `json:"state"`
	Country reference.Country `json:"country"`
	ZipCode string            `json:"zipCode"`
}

type submitRequest struct {
	Customer struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	} `json:"customer"`
	ShippingAddress addressPayload `json:"shippingAddress"`
	BillingAddress  addressPayload `json:"billingAddress"`
}

type submitResponse struct {
	State          string `json:"state"`
	Message        string `json:"message,omitempty"`
	TrackingNumber string `json:"orderTrackingNumber,omitempty"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))
	o := s.Orchestrator()
	if o == nil {
		writeError(w, http.StatusConflict, "checkout not started")
		return
	}

	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	form := o.Form()
	form.Field("customer.firstName").SetValue(body.Customer.FirstName)
	form.Field("customer.lastName").SetValue(body.Customer.LastName)
	form.Field("customer.email").SetValue(body.Customer.Email)
	applyAddress(form.Group("shippingAddress"), body.ShippingAddress)
	applyAddress(form.Group("billingAddress"), body.BillingAddress)

	res, err := o.Submit(r.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrSubmissionInFlight) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}

	status := http.StatusOK
	if res.State != checkout.StateSucceeded {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, submitResponse{
		State:          res.State.String(),
		Message:        res.Message,
		TrackingNumber: res.TrackingNumber,
	})
}

func applyAddress(grp *forms.Group, a addressPayload) {
	grp.Field("street").SetValue(a.Street)
	grp.Field("city").SetValue(a.City)
	grp.Field("zipCode").SetValue(a.ZipCode)
	if a.Country != (reference.Country{}) {
		grp.Field("country").SetValue(a.Country)
	}
	if a.State != (reference.State{}) {
		grp.Field("state").SetValue(a.State)
	}
}
