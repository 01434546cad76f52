package http

import (
	"net/http"

	"go.uber.org/zap"
)

func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}

	orders, err := h.history.History(r.Context(), email)
	if err != nil {
		h.log.Warn("order history lookup failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to load order history")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
