// internal/notification/providers.go

package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// EmailProvider sends transactional email.
type EmailProvider interface {
	SendEmail(ctx context.Context, notification *EmailNotification) error
}

// SMSProvider sends text messages.
type SMSProvider interface {
	SendSMS(ctx context.Context, notification *SMSNotification) error
}

// SendGridEmailProvider implements EmailProvider using SendGrid
type SendGridEmailProvider struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridEmailProvider(apiKey, from, fromName string) EmailProvider {
	return &SendGridEmailProvider{apiKey: apiKey, from: from, fromName: fromName}
}

func (p *SendGridEmailProvider) SendEmail(ctx context.Context, notification *EmailNotification) error {
	from := mail.NewEmail(p.fromName, p.from)
	to := mail.NewEmail("", notification.To)

	message := mail.NewSingleEmail(from, notification.Subject, to, notification.Body, "")
	client := sendgrid.NewSendClient(p.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", response.StatusCode)
	}
	return nil
}

// TwilioSMSProvider implements SMSProvider using Twilio
type TwilioSMSProvider struct {
	client      *twilio.RestClient
	phoneNumber string
}

func NewTwilioSMSProvider(accountSID, authToken, phoneNumber string) SMSProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSProvider{client: client, phoneNumber: phoneNumber}
}

func (p *TwilioSMSProvider) SendSMS(ctx context.Context, notification *SMSNotification) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(notification.To)
	params.SetFrom(p.phoneNumber)
	params.SetBody(notification.Message)

	_, err := p.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	return nil
}

// MockEmailProvider logs instead of sending. Used in development and tests.
type MockEmailProvider struct {
	mu         sync.Mutex
	SentEmails []EmailNotification
}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(_ context.Context, notification *EmailNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.SentEmails = append(p.SentEmails, *notification)
	log.Printf("[MOCK EMAIL] to=%s subject=%q", notification.To, notification.Subject)
	return nil
}

// MockSMSProvider logs instead of sending.
type MockSMSProvider struct {
	mu           sync.Mutex
	SentMessages []SMSNotification
}

func NewMockSMSProvider() *MockSMSProvider {
	return &MockSMSProvider{}
}

func (p *MockSMSProvider) SendSMS(_ context.Context, notification *SMSNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.SentMessages = append(p.SentMessages, *notification)
	log.Printf("[MOCK SMS] to=%s", notification.To)
	return nil
}
