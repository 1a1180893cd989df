package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler returns the HTTP handler serving all API routes.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/decode", s.handleDecode)

		r.Get("/imports", s.handleListImports)
		r.Get("/imports/{id}", s.handleGetImport)
		r.Delete("/imports/{id}", s.handleRemoveImport)
		r.Get("/imports/{id}/logs", s.handleFlightLogs)
		r.Get("/imports/{id}/totals", s.handleTotals)
		r.Get("/imports/{id}/source", s.handleSource)

		r.Get("/logs/{id}/flights", s.handleFlights)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return router
}
