// Package email implements the outbound notification channel on top of
// Mailgun. One message out, success or failure back; retries are the
// caller's problem (and nobody here retries).
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v3"
)

const sendTimeout = 10 * time.Second

// Config captures the Mailgun credentials and sender identity.
type Config struct {
	Domain string
	APIKey string
	// Sender is the From header, e.g. "ShareBite <no-reply@sharebite.app>".
	Sender string
}

// MailgunMailer sends plain-text mail through the Mailgun API.
type MailgunMailer struct {
	mg     mailgun.Mailgun
	sender string
}

// NewMailgunMailer creates a MailgunMailer from config.
func NewMailgunMailer(cfg Config) *MailgunMailer {
	return &MailgunMailer{
		mg:     mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		sender: cfg.Sender,
	}
}

// Send delivers a single message. The context is capped with a send timeout
// so a stalled API call cannot wedge a background worker.
func (m *MailgunMailer) Send(ctx context.Context, to, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	message := m.mg.NewMessage(m.sender, subject, body, to)
	if _, _, err := m.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}
