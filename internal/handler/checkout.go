package handler

import (
	"log/slog"
	"net/http"

	"github.com/mesa-pos/mesa/internal/domain"
)

// CheckoutHandler submits the session cart as a kitchen order.
type CheckoutHandler struct {
	orders domain.OrderService
	logger *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(orders domain.OrderService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{orders: orders, logger: logger}
}

// checkoutRequest is the body for POST /api/checkout.
type checkoutRequest struct {
	TableID       int64  `json:"table_id"`
	CustomerNotes string `json:"customer_notes"`
}

// Submit handles POST /api/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req checkoutRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	confirmation, err := h.orders.Submit(r.Context(), session, req.TableID, req.CustomerNotes)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusCreated, confirmation)
}
