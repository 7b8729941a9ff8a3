package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mesa-pos/mesa/internal/domain"
)

// MenuHandler serves the customer-facing menu catalog.
type MenuHandler struct {
	menu   domain.MenuService
	logger *slog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menu domain.MenuService, logger *slog.Logger) *MenuHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MenuHandler{menu: menu, logger: logger}
}

// List handles GET /api/menu
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListItems(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Get handles GET /api/menu/{id}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		RespondError(w, r, domain.Invalid("menu.get", "Menu item ID must be an integer"))
		return
	}

	item, err := h.menu.GetItem(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, item)
}

type setAvailabilityRequest struct {
	Availability domain.Availability `json:"availability"`
}

// SetAvailability handles PUT /api/menu/{id}/availability (waiter action,
// e.g. marking a dish sold out mid-service).
func (h *MenuHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		RespondError(w, r, domain.Invalid("menu.set_availability", "Menu item ID must be an integer"))
		return
	}

	var req setAvailabilityRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}
	if !req.Availability.Valid() {
		RespondError(w, r, domain.Invalid("menu.set_availability", "Availability must be available, sold_out or unavailable"))
		return
	}

	if err := h.menu.SetAvailability(r.Context(), id, req.Availability); err != nil {
		RespondError(w, r, err)
		return
	}

	item, err := h.menu.GetItem(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, item)
}
