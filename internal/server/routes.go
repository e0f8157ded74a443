package server

import (
	"net/http"
	"time"

	"github.com/beehive/dashboard/internal/models"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Accounts
	mux.HandleFunc("/api/accounts", s.routeAccountCollection)
	mux.HandleFunc("/api/accounts/", s.routeAccount)

	// Movements
	mux.HandleFunc("/api/movements", s.routeMovementCollection)
	mux.HandleFunc("/api/movements/", s.routeMovement)

	// Planned
	mux.HandleFunc("/api/planned", s.routePlannedCollection)
	mux.HandleFunc("/api/planned/", s.routePlanned)

	// Statistics and analytics
	mux.HandleFunc("/api/statistics/landing", s.handleLandingStatistics)
	mux.HandleFunc("/api/statistics/landing/chart", s.handleTrendChart)
	mux.HandleFunc("/api/analytics", s.handleAnalytics)

	// Category catalog
	mux.HandleFunc("/api/categories", s.handleCategories)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).String(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// categoryEntry is one item of the category catalog.
type categoryEntry struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// handleCategories handles GET /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	catalog := make([]categoryEntry, len(models.Categories))
	for i, c := range models.Categories {
		catalog[i] = categoryEntry{Value: string(c), Label: c.DisplayName()}
	}
	WriteJSON(w, http.StatusOK, catalog)
}
