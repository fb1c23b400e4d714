package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// healthCheckTimeout bounds each dependency probe of GET /health.
const healthCheckTimeout = 3 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.rateLimitMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		r.Route("/design", func(r chi.Router) {
			r.Get("/", s.handleGetDesign)
			r.Put("/", s.handleReplaceDesign)

			r.Put("/dimensions", s.handleSetDimensions)
			r.Put("/roof", s.handleSetRoof)
			r.Put("/roof/overhangs/{side}", s.handleSetOverhang)
			r.Put("/colors/{slot}", s.handleSetColor)
			r.Put("/walls", s.handleSetWalls)
			r.Put("/walls/{side}/enclosed", s.handleSetEnclosed)
			r.Put("/leantos/{side}", s.handleSetLeanTo)
			r.Put("/environment", s.handleSetEnvironment)

			r.Route("/legacy-leantos", func(r chi.Router) {
				r.Post("/", s.handleAddLegacyLeanTo)
				r.Put("/{id}", s.handleUpdateLegacyLeanTo)
				r.Delete("/{id}", s.handleRemoveLegacyLeanTo)
			})

			r.Route("/openings", func(r chi.Router) {
				r.Post("/", s.handleAddOpening)
				r.Put("/{id}", s.handleUpdateOpening)
				r.Delete("/{id}", s.handleRemoveOpening)
			})

			r.Put("/interaction", s.handleSetInteraction)
			r.Put("/view", s.handleSetView)
			r.Post("/view/reset", s.handleResetView)
		})

		r.Get("/geometry", s.handleGetGeometry)

		r.Route("/drag", func(r chi.Router) {
			r.Get("/", s.handleDragState)
			r.Post("/down", s.handleDragDown)
			r.Post("/move", s.handleDragMove)
			r.Post("/up", s.handleDragUp)
			r.Post("/leave", s.handleDragLeave)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/schedule", s.handleScheduleJSON)
			r.Get("/schedule.xlsx", s.handleScheduleXLSX)
			r.Get("/summary.pdf", s.handleSummaryPDF)
		})

		r.Route("/designs", func(r chi.Router) {
			r.Use(s.requireDesigns)
			r.Get("/", s.handleListDesigns)
			r.Post("/", s.handleSaveDesign)
			r.Get("/{id}", s.handleGetSavedDesign)
			r.Delete("/{id}", s.handleDeleteSavedDesign)
			r.Post("/{id}/load", s.handleLoadDesign)
		})

		r.Get("/history", s.handleListHistory)

		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth probes every registered dependency. Any failure turns the
// response into a 503 listing the failing checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(s.checks))
	healthy := true
	for name, c := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := c.HealthCheck(ctx)
		cancel()
		if err != nil {
			healthy = false
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status":   status,
		"version":  s.version,
		"revision": s.store.Revision(),
		"checks":   checks,
	})
}
