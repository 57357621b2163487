package handlers

import (
	"net/http"
	"time"

	"github.com/sogepi/gestion/internal/httpx"
	"github.com/sogepi/gestion/internal/services"
)

type DashboardHandler struct {
	Svc *services.SaleService
}

func NewDashboardHandler(svc *services.SaleService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Stats: GET /dashboard/stats?range=daily|weekly|monthly
// Aggregates are derived fresh per request; nothing is cached, so a status
// transition is visible on the very next call.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	rangeName := r.URL.Query().Get("range")
	switch rangeName {
	case "", "daily", "weekly", "monthly":
	default:
		httpx.JSONError(w, http.StatusBadRequest, "invalid_range", nil)
		return
	}
	now := time.Now()
	stats, err := h.Svc.StatsWindow(services.WindowFrom(rangeName, now), now.Add(time.Second))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_stats", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"range": rangeName, "stats": stats})
}
