package matching

import (
	"github.com/gorilla/mux"

	"github.com/roomeo-app/roomeo-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/matches/{id}/comparison", handler.GetComparison).Methods("GET")
	api.HandleFunc("/matches/{id}/status", handler.UpdateStatus).Methods("POST")
	api.HandleFunc("/stats", handler.GetStats).Methods("GET")
	api.HandleFunc("/generate", handler.Generate).Methods("POST")
	api.HandleFunc("/regenerate", handler.Regenerate).Methods("POST")

	admin := router.PathPrefix("/api/v1/admin/matching").Subrouter()
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireAdmin)

	admin.HandleFunc("/generate-all", handler.GenerateAll).Methods("POST")
	admin.HandleFunc("/users/{id}/matches", handler.DeleteUserMatches).Methods("DELETE")
}
