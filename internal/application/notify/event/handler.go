// Package notifyevent delivers verification codes over the channel each
// record was issued for. It consumes domain events from the outbox; delivery
// failures surface to the message router, which retries with the record
// already durable.
package notifyevent

import (
	"context"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/mails"
	"gitlab.com/tmsv2/tms-backend/pkg/i18nx"
)

var (
	tracer = otel.Tracer("tms/application/notify/event")
	logger = otelslog.NewLogger("tms/application/notify/event")
)

type MailSender interface {
	SendMail(ctx context.Context, payload mails.Payload) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

type TelegramSender interface {
	SendTelegram(ctx context.Context, handle, message string) error
}

type NotifyEventHandler struct {
	tracer         trace.Tracer
	logger         *slog.Logger
	mailsender     MailSender
	smssender      SMSSender
	telegramsender TelegramSender
	localizer      *i18n.Localizer
}

type NotifyEventHandlerArgs struct {
	Tracer         trace.Tracer
	Logger         *slog.Logger
	MailSender     MailSender
	SMSSender      SMSSender
	TelegramSender TelegramSender
	Bundle         *i18n.Bundle
	Lang           string
}

func NewNotifyEventHandler(args NotifyEventHandlerArgs) *NotifyEventHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}
	if args.Bundle == nil {
		args.Bundle = i18nx.NewBundle()
	}

	return &NotifyEventHandler{
		tracer:         args.Tracer,
		logger:         args.Logger,
		mailsender:     args.MailSender,
		smssender:      args.SMSSender,
		telegramsender: args.TelegramSender,
		localizer:      i18nx.Localizer(args.Bundle, args.Lang),
	}
}
