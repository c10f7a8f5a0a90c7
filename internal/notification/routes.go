// internal/notification/routes.go

package notifications

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	// Token is validated inside the handler; websocket dials cannot always
	// carry an Authorization header.
	router.HandleFunc("/api/v1/ws", handler.ServeWS).Methods("GET")
}
