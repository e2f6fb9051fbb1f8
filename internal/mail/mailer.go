// Package mail dispatches transactional email. The only message the
// storefront sends today is the password-reset link.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a password-reset notification to a user.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// SMTPConfig configures the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer delivers mail over plain SMTP with AUTH PLAIN.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates an SMTPMailer, defaulting the port and sender name.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.FromName == "" {
		cfg.FromName = "Sick Fits"
	}
	return &SMTPMailer{cfg: cfg}
}

// SendPasswordReset emails the reset link. Delivery is a single attempt;
// failures surface to the caller, which decides what to do with the already
// persisted reset token.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	msg := m.buildResetMessage(to, resetURL)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("sending reset email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildResetMessage(to, resetURL string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString("Subject: Your password reset token\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("<div style=\"font-family: sans-serif; line-height: 2; font-size: 18px;\">\r\n")
	b.WriteString("<h2>Hello!</h2>\r\n")
	b.WriteString("<p>Your password reset token is here.</p>\r\n")
	b.WriteString(fmt.Sprintf("<p><a href=\"%s\">Click here to reset your password</a></p>\r\n", resetURL))
	b.WriteString("<p>If you did not request this, you can ignore this email.</p>\r\n")
	b.WriteString("</div>\r\n")
	return []byte(b.String())
}

// LogMailer logs reset links instead of sending them. Used in development
// when no SMTP host is configured.
type LogMailer struct{}

// SendPasswordReset logs the reset URL at info level.
func (LogMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	slog.Info("password reset requested (mail disabled)", "to", to, "url", resetURL)
	return nil
}
