// internal/notification/models.go

package notifications

import (
	"encoding/json"
	"time"
)

// Websocket event types pushed to connected clients.
const (
	WSTypeNewMatch = "new_match"
)

// WSEvent is the envelope for everything sent over the socket.
type WSEvent struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMatchEvent is the payload for a WSTypeNewMatch event.
type NewMatchEvent struct {
	MatchID      int64  `json:"match_id"`
	OtherUserID  int64  `json:"other_user_id"`
	OtherName    string `json:"other_name"`
	OverallScore int    `json:"overall_score"`
}

// EmailNotification is a single outbound email.
type EmailNotification struct {
	To      string
	Subject string
	Body    string
}

// SMSNotification is a single outbound text message.
type SMSNotification struct {
	To      string
	Message string
}
