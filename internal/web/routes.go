package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-index/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	facesHandler := handlers.NewFacesHandler(s.resolver)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Faces
		r.Post("/faces/resolve", facesHandler.Resolve)
		r.Delete("/faces", facesHandler.Flush)

		// Index maintenance
		r.Post("/index/rebuild", facesHandler.Rebuild)

		// Stats
		r.Get("/stats", facesHandler.Stats)
	})
}
