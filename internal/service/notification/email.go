package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/AaSu9/Aamcare/internal/config"
	"github.com/AaSu9/Aamcare/internal/model"
)

// EmailSender delivers the daily message over SMTP, the last fallback after
// both Twilio channels.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(cfg *config.SMTPConfig) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *EmailSender) Channel() model.NotificationChannel {
	return model.ChannelEmail
}

func (s *EmailSender) Address(r Recipient) string {
	return r.Email
}

func (s *EmailSender) Send(_ context.Context, to, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Aamcare daily health update")
	m.SetBody("text/plain", message)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
