// internal/survey/routes.go

package survey

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"

	"github.com/roomeo-app/roomeo-backend/internal/auth"
)

// RegisterRoutes mounts the survey endpoints. This feature rides a chi
// subrouter behind the main mux router.
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r := chi.NewRouter()
	r.Use(authMiddleware.Authenticate)

	r.Route("/api/v1/survey", func(r chi.Router) {
		r.Post("/", handler.Submit)
		r.Put("/", handler.Submit)
		r.Get("/", handler.GetProfile)
	})

	router.PathPrefix("/api/v1/survey").Handler(r)
}
