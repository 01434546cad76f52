package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

const HeaderSessionID = "X-Session-Id"

func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler)

	mux.HandleFunc("GET /api/cart/status", h.CartStatus)
	mux.HandleFunc("POST /api/cart/items", h.AddCartItem)
	mux.HandleFunc("POST /api/cart/items/{productId}/decrement", h.DecrementCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{productId}", h.RemoveCartItem)

	mux.HandleFunc("POST /api/checkout/start", h.StartCheckout)
	mux.HandleFunc("POST /api/checkout/billing-same-as-shipping", h.BillingSameAsShipping)
	mux.HandleFunc("POST /api/checkout/country", h.CountrySelected)
	mux.HandleFunc("POST /api/checkout/widget-change", h.WidgetChange)
	mux.HandleFunc("POST /api/checkout/submit", h.Submit)

	mux.HandleFunc("GET /api/orders/history", h.OrderHistory)

	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionID reads the caller's session header, minting a fresh id for
// first-time visitors. The id is echoed back so the client can keep it.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(HeaderSessionID)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(HeaderSessionID, id)
	return id
}
