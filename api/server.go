/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/schedule        Schedule computation
  /api/impact          Baseline vs. with-extras comparison
  /api/mortgages/*     Saved mortgage scenarios
  /api/amortizations/* Saved extra-payment plans
  /api/import          Record import (legacy format migration)
  /api/reset           Clear all saved scenarios (testing/demo)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Simulation routes
		r.Post("/schedule", h.CreateSchedule)
		r.Post("/impact", h.ComputeImpact)

		// Mortgage scenario routes
		r.Route("/mortgages", func(r chi.Router) {
			r.Get("/", h.ListMortgages)
			r.Post("/", h.SaveMortgage)
			r.Get("/{id}", h.GetMortgage)
			r.Delete("/{id}", h.DeleteMortgage)
			r.Get("/{id}/export", h.ExportSchedule)
		})

		// Amortization scenario routes
		r.Route("/amortizations", func(r chi.Router) {
			r.Get("/", h.ListAmortizations)
			r.Post("/", h.SaveAmortization)
			r.Get("/{id}", h.GetAmortization)
			r.Delete("/{id}", h.DeleteAmortization)
			r.Get("/{id}/compare", h.CompareAmortization)
			r.Get("/{id}/export", h.ExportOverview)
		})

		// Import route
		r.Post("/import", h.ImportRecord)

		// Admin route (testing/demo)
		r.Post("/reset", h.ResetDatabase)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
