// Package notifications delivers event lifecycle messages to creators and registrants.
package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"communitypulse/internal/middleware"
)

// Messenger sends a single message over one channel. Implementations
// must be safe for concurrent use.
type Messenger interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Sender string
}

// Gateway sends email over SMTP when configured and logs otherwise.
// SMS delivery is log-only pending a provider integration.
type Gateway struct {
	cfg SMTPConfig
}

// NewGateway creates a messenger from the given SMTP settings.
func NewGateway(cfg SMTPConfig) *Gateway {
	return &Gateway{cfg: cfg}
}

// SendEmail delivers the message via SMTP. Without a configured host the
// message is logged and treated as delivered, which keeps local
// development working without a mail server.
func (g *Gateway) SendEmail(ctx context.Context, to, subject, body string) error {
	if g.cfg.Host == "" {
		middleware.Logger.InfoContext(ctx, "email (log-only)",
			"to", to,
			"subject", subject,
		)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + g.cfg.Sender,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := g.cfg.Host + ":" + g.cfg.Port
	var auth smtp.Auth
	if g.cfg.User != "" {
		auth = smtp.PlainAuth("", g.cfg.User, g.cfg.Pass, g.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, g.cfg.Sender, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// SendSMS logs the message that would be sent. Swap in a provider client
// here when one is wired up.
func (g *Gateway) SendSMS(ctx context.Context, to, body string) error {
	middleware.Logger.InfoContext(ctx, "sms (log-only)",
		"to", to,
		"body", body,
	)
	return nil
}
