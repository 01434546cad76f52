package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/client"
)

type Handler struct {
	sessions *SessionManager
	history  *client.OrderHistoryClient
	log      *zap.Logger
}

func NewHandler(sessions *SessionManager, history *client.OrderHistoryClient, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{sessions: sessions, history: history, log: log}
}

type cartStatusResponse struct {
	TotalPrice    float64 `json:"totalPrice"`
	TotalQuantity int     `json:"totalQuantity"`
}

func (h *Handler) CartStatus(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))
	writeJSON(w, http.StatusOK, cartStatusResponse{
		TotalPrice:    s.Status.TotalPrice(),
		TotalQuantity: s.Status.TotalQuantity(),
	})
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))

	var body cart.Item
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}
	if body.Quantity <= 0 {
		body.Quantity = 1
	}

	s.Cart.AddItem(body)

	writeJSON(w, http.StatusOK, cartStatusResponse{
		TotalPrice:    s.Cart.TotalPrice.Value(),
		TotalQuantity: s.Cart.TotalQuantity.Value(),
	})
}

func (h *Handler) DecrementCartItem(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))

	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	s.Cart.DecrementQuantity(productID)

	writeJSON(w, http.StatusOK, cartStatusResponse{
		TotalPrice:    s.Cart.TotalPrice.Value(),
		TotalQuantity: s.Cart.TotalQuantity.Value(),
	})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.GetOrCreate(sessionID(w, r))

	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	s.Cart.Remove(productID)

	writeJSON(w, http.StatusOK, cartStatusResponse{
		TotalPrice:    s.Cart.TotalPrice.Value(),
		TotalQuantity: s.Cart.TotalQuantity.Value(),
	})
}
