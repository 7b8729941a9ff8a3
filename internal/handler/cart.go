package handler

import (
	"log/slog"
	"net/http"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/telemetry"
)

// CartHandler exposes the session cart over HTTP. Every route is scoped to
// the caller's session via the X-Session-ID header.
type CartHandler struct {
	cart    domain.CartService
	menu    domain.MenuService
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler. Metrics may be nil.
func NewCartHandler(cart domain.CartService, menu domain.MenuService, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{cart: cart, menu: menu, metrics: metrics, logger: logger}
}

// addItemRequest is the body for POST /api/cart/items.
type addItemRequest struct {
	MenuItemID int64               `json:"menu_item_id"`
	Quantity   int                 `json:"quantity"`
	Selections map[string][]string `json:"selections"`
	Notes      string              `json:"notes"`
}

// updateQuantityRequest is the body for PUT /api/cart/items/{key}.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// voucherRequest is the body for POST /api/cart/voucher.
type voucherRequest struct {
	Code string `json:"code"`
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.cart.GetCart(r.Context(), session)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req addItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.cart.AddItem(r.Context(), session, req.MenuItemID, req.Quantity, req.Selections, req.Notes)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if h.metrics != nil {
		category := "unknown"
		if item, err := h.menu.GetItem(r.Context(), req.MenuItemID); err == nil {
			category = item.Category
		}
		h.metrics.CartItemsAdded.WithLabelValues(category).Add(float64(req.Quantity))
	}

	RespondJSON(w, http.StatusOK, summary)
}

// UpdateLine handles PUT /api/cart/items/{key}
func (h *CartHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req updateQuantityRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.cart.UpdateQuantity(r.Context(), session, r.PathValue("key"), req.Quantity)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// RemoveLine handles DELETE /api/cart/items/{key}
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.cart.RemoveLine(r.Context(), session, r.PathValue("key"))
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CartLinesRemoved.Inc()
	}

	RespondJSON(w, http.StatusOK, summary)
}

// ApplyVoucher handles POST /api/cart/voucher
func (h *CartHandler) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req voucherRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.cart.ApplyVoucher(r.Context(), session, req.Code)
	if err != nil {
		if h.metrics != nil {
			h.metrics.VouchersRejected.WithLabelValues(domain.ErrorCode(err)).Inc()
		}
		RespondError(w, r, err)
		return
	}

	if h.metrics != nil && summary.Voucher != nil {
		h.metrics.VouchersApplied.WithLabelValues(summary.Voucher.Code).Inc()
	}

	RespondJSON(w, http.StatusOK, summary)
}

// RemoveVoucher handles DELETE /api/cart/voucher
func (h *CartHandler) RemoveVoucher(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.cart.RemoveVoucher(r.Context(), session)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.cart.ClearCart(r.Context(), session); err != nil {
		RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
