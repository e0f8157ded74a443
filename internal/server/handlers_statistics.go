package server

import (
	"net/http"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
)

// handleLandingStatistics handles GET /api/statistics/landing.
func (s *Server) handleLandingStatistics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())
	stats, err := s.app.StatisticsService.LandingStatistics(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// handleTrendChart handles GET /api/statistics/landing/chart,
// returning the balance trend as a PNG.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())
	png, err := s.app.StatisticsService.BalanceTrendChart(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleAnalytics handles GET /api/analytics?timeFilter=month.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	filter := models.TimeFilter(r.URL.Query().Get("timeFilter"))
	if filter == "" {
		filter = models.FilterMonth
	}

	userID := common.ResolveUserID(r.Context())
	stats, err := s.app.AnalyticsService.CalculateAnalytics(r.Context(), userID, filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
