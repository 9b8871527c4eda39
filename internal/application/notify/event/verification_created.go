package notifyevent

import (
	"context"
	"log/slog"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/mails"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
	"gitlab.com/tmsv2/tms-backend/pkg/i18nx"
	"gitlab.com/tmsv2/tms-backend/pkg/logging"
	"gitlab.com/tmsv2/tms-backend/pkg/otelx"
)

func (h *NotifyEventHandler) HandleVerificationCreated(ctx context.Context, e *verification.VerificationCreated) error {
	if e == nil {
		return nil
	}
	const op = "notifyevent.NotifyEventHandler.HandleVerificationCreated"

	l := h.logger.With(
		slog.String("event", "VerificationCreated"),
		slog.String("verification.id", e.VerificationID.String()),
	)
	ctx, span := h.tracer.Start(
		ctx,
		"NotifyEventHandler.HandleVerificationCreated",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.verification.id", e.VerificationID.String()),
			attribute.String("event.verification.target", logging.RedactTarget(e.Target)),
			attribute.String("event.verification.channel", e.Channel.String()),
		),
	)
	defer span.End()

	err := validation.ValidateStruct(e,
		validation.Field(&e.Target, validation.Required),
		validation.Field(&e.Code, validation.Required),
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "validation failed")
		l.ErrorContext(ctx, "validation failed", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	// A redelivered event can arrive after the code has already expired.
	// Sending it would advertise validity the code no longer has.
	remaining := time.Until(e.ExpiresAt)
	if remaining <= 0 {
		span.AddEvent("code expired before delivery")
		l.WarnContext(ctx, "verification code expired before delivery, dropping event")
		return nil
	}

	minutes := int(remaining.Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	data := map[string]any{"Code": e.Code, "Minutes": minutes}

	switch e.Channel {
	case channel.Email:
		err = h.sendMail(ctx, e.Target, data)
	case channel.SMS:
		err = h.sendSMS(ctx, e.Target, data)
	case channel.Telegram:
		err = h.sendTelegram(ctx, e.Target, data)
	default:
		l.WarnContext(ctx, "unknown delivery channel, dropping event",
			slog.Int("channel", int(e.Channel)),
		)
		return nil
	}
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to deliver verification code")
		l.ErrorContext(ctx, "failed to deliver verification code", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}

func (h *NotifyEventHandler) sendMail(ctx context.Context, to string, data map[string]any) error {
	subject, err := h.localizer.Localize(&i18n.LocalizeConfig{MessageID: i18nx.KeyVerificationCodeSubject})
	if err != nil {
		return err
	}
	body, err := h.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    i18nx.KeyVerificationCodeBody,
		TemplateData: data,
	})
	if err != nil {
		return err
	}

	return h.mailsender.SendMail(ctx, mails.Payload{To: to, Subject: subject, Body: body})
}

func (h *NotifyEventHandler) sendSMS(ctx context.Context, phone string, data map[string]any) error {
	message, err := h.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    i18nx.KeyVerificationCodeSMS,
		TemplateData: data,
	})
	if err != nil {
		return err
	}

	return h.smssender.SendSMS(ctx, phone, message)
}

func (h *NotifyEventHandler) sendTelegram(ctx context.Context, handle string, data map[string]any) error {
	message, err := h.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    i18nx.KeyVerificationCodeBody,
		TemplateData: data,
	})
	if err != nil {
		return err
	}

	return h.telegramsender.SendTelegram(ctx, handle, message)
}
