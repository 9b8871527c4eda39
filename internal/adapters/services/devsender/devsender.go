// Package devsender provides log-only delivery for local and dev modes,
// where real mail, SMS, or Telegram delivery is not wired up.
package devsender

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/mails"
)

var logger = otelslog.NewLogger("tms/internal/adapters/services/devsender")

type Sender struct {
	logger *slog.Logger
}

func NewSender(l *slog.Logger) *Sender {
	if l == nil {
		l = logger
	}

	return &Sender{logger: l}
}

func (s *Sender) SendMail(ctx context.Context, payload mails.Payload) error {
	s.logger.InfoContext(ctx, "dev mail delivery",
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject),
		slog.String("body", payload.Body),
	)
	return nil
}

func (s *Sender) SendSMS(ctx context.Context, phone, message string) error {
	s.logger.InfoContext(ctx, "dev sms delivery",
		slog.String("phone", phone),
		slog.String("message", message),
	)
	return nil
}

func (s *Sender) SendTelegram(ctx context.Context, handle, message string) error {
	s.logger.InfoContext(ctx, "dev telegram delivery",
		slog.String("handle", handle),
		slog.String("message", message),
	)
	return nil
}
