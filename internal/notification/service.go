// internal/notification/service.go

package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/roomeo-app/roomeo-backend/internal/matching"
)

const notifyBudget = 30 * time.Second

// ContactDirectory resolves a user id to their reachable addresses.
// Satisfied by the auth repository.
type ContactDirectory interface {
	GetUserContact(ctx context.Context, id int64) (email string, phone *string, err error)
}

// Config controls which channels fire and when.
type Config struct {
	// Matches below this overall score trigger no outbound email/SMS.
	ScoreThreshold int
	SMSEnabled     bool
}

// Service fans a new match out to websocket, email and SMS. It implements
// matching.MatchObserver and never blocks the caller.
type Service struct {
	contacts ContactDirectory
	email    EmailProvider
	sms      SMSProvider
	hub      *Hub
	config   Config
}

func NewService(contacts ContactDirectory, email EmailProvider, sms SMSProvider, hub *Hub, config Config) *Service {
	return &Service{
		contacts: contacts,
		email:    email,
		sms:      sms,
		hub:      hub,
		config:   config,
	}
}

// OnMatchCreated implements matching.MatchObserver.
func (s *Service) OnMatchCreated(_ context.Context, match *matching.Match, owner, other *matching.Profile) {
	go s.notifyBoth(match, owner, other)
}

func (s *Service) notifyBoth(match *matching.Match, owner, other *matching.Profile) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyBudget)
	defer cancel()

	s.notifyUser(ctx, match, owner, other)
	s.notifyUser(ctx, match, other, owner)
}

func (s *Service) notifyUser(ctx context.Context, match *matching.Match, recipient, counterpart *matching.Profile) {
	s.pushEvent(match, recipient, counterpart)

	if match.OverallScore < s.config.ScoreThreshold {
		return
	}

	email, phone, err := s.contacts.GetUserContact(ctx, recipient.UserID)
	if err != nil {
		log.Printf("notifications: no contact info for user %d: %v", recipient.UserID, err)
		return
	}

	if err := s.email.SendEmail(ctx, &EmailNotification{
		To:      email,
		Subject: fmt.Sprintf("New roommate match: %s (%d%% compatible)", counterpart.DisplayName, match.OverallScore),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYou matched with %s at %d%% compatibility. Open the app to see the full comparison and start the conversation.\n",
			recipient.DisplayName, counterpart.DisplayName, match.OverallScore,
		),
	}); err != nil {
		log.Printf("notifications: failed to email user %d: %v", recipient.UserID, err)
	}

	if s.config.SMSEnabled && phone != nil && *phone != "" {
		if err := s.sms.SendSMS(ctx, &SMSNotification{
			To:      *phone,
			Message: fmt.Sprintf("Roomeo: you matched with %s (%d%% compatible). Check the app!", counterpart.DisplayName, match.OverallScore),
		}); err != nil {
			log.Printf("notifications: failed to text user %d: %v", recipient.UserID, err)
		}
	}
}

func (s *Service) pushEvent(match *matching.Match, recipient, counterpart *matching.Profile) {
	if s.hub == nil {
		return
	}

	payload, err := json.Marshal(NewMatchEvent{
		MatchID:      match.ID,
		OtherUserID:  counterpart.UserID,
		OtherName:    counterpart.DisplayName,
		OverallScore: match.OverallScore,
	})
	if err != nil {
		log.Printf("notifications: failed to marshal match event: %v", err)
		return
	}

	s.hub.SendToUser(recipient.UserID, WSEvent{
		Type:      WSTypeNewMatch,
		Data:      payload,
		Timestamp: time.Now(),
	})
}
