// internal/auth/routes.go

package auth

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *Middleware) {
	public := router.PathPrefix("/api/v1/auth").Subrouter()
	public.HandleFunc("/register", handler.Register).Methods("POST")
	public.HandleFunc("/login", handler.Login).Methods("POST")

	protected := router.PathPrefix("/api/v1/auth").Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/me", handler.Me).Methods("GET")
}
