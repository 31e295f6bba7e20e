package email

import (
	"context"

	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

// Service delivers campaign email. The default deployment runs without an
// SMTP server, so the log sender stands in and records what would have
// gone out.
type Service interface {
	Send(ctx context.Context, to, subject, content string) error
}

type logSender struct {
	logger *logger.Logger
}

// NewLogSender returns a sender that only logs deliveries. Used whenever
// SMTP is not configured.
func NewLogSender(logger *logger.Logger) Service {
	return &logSender{logger: logger}
}

func (s *logSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Info("email delivery skipped (smtp disabled)", "to", to, "subject", subject)
	return nil
}
