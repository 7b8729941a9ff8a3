package handler

import (
	"log/slog"
	"net/http"

	"github.com/mesa-pos/mesa/internal/telemetry"
)

// DashboardHandler serves the in-process business summary.
type DashboardHandler struct {
	stats  *telemetry.DashboardStats
	logger *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(stats *telemetry.DashboardStats, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{stats: stats, logger: logger}
}

// Summary handles GET /api/dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.stats.Summary())
}
