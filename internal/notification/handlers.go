// internal/notification/handlers.go

package notifications

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/roomeo-app/roomeo-backend/internal/auth"
	"github.com/roomeo-app/roomeo-backend/internal/common/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the web client's domain is fixed
		return true
	},
}

type Handler struct {
	hub  *Hub
	auth auth.Service
}

func NewHandler(hub *Hub, authService auth.Service) *Handler {
	return &Handler{hub: hub, auth: authService}
}

// ServeWS upgrades the connection and attaches the client to the hub.
// Browsers cannot set headers on websocket dials, so the token may also
// arrive as a query parameter.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Token required")
		return
	}

	claims, err := h.auth.ValidateToken(r.Context(), token)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("notifications: websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, claims.UserID)
	h.hub.register <- client
	client.Start()
}
