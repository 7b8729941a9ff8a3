package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/telemetry"
)

// TableHandler exposes the waiter-facing table roster and settlement flow.
type TableHandler struct {
	tables  domain.TableService
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewTableHandler creates a new table handler. Metrics may be nil.
func NewTableHandler(tables domain.TableService, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *TableHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableHandler{tables: tables, metrics: metrics, logger: logger}
}

// settleRequest is the body for POST /api/tables/{id}/settle.
type settleRequest struct {
	Method domain.PaymentMethod `json:"method"`
}

// List handles GET /api/tables
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tables.ListTables(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"tables": tables})
}

// Occupy handles POST /api/tables/{id}/occupy
func (h *TableHandler) Occupy(w http.ResponseWriter, r *http.Request) {
	id, err := tableID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	table, err := h.tables.Occupy(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, table)
}

// OpenBill handles POST /api/tables/{id}/bill
func (h *TableHandler) OpenBill(w http.ResponseWriter, r *http.Request) {
	id, err := tableID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	bill, err := h.tables.OpenBill(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, bill)
}

// Settle handles POST /api/tables/{id}/settle
func (h *TableHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id, err := tableID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req settleRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	bill, err := h.tables.Settle(r.Context(), id, req.Method)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BillsSettled.WithLabelValues(string(bill.Method)).Inc()
	}

	RespondJSON(w, http.StatusOK, bill)
}

func tableID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, domain.Invalid("table.id", "Table ID must be an integer")
	}
	return id, nil
}
