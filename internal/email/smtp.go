package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type smtpSender struct {
	cfg    SMTPConfig
	logger *logger.Logger
}

// NewSMTPSender returns a sender that delivers through the configured
// SMTP relay.
func NewSMTPSender(cfg SMTPConfig, logger *logger.Logger) Service {
	return &smtpSender{cfg: cfg, logger: logger}
}

func (s *smtpSender) Send(_ context.Context, to, subject, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", content)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Debug("email sent", "to", to, "subject", subject)
	return nil
}
