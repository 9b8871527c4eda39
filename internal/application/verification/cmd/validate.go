package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
	"gitlab.com/tmsv2/tms-backend/pkg/logging"
	"gitlab.com/tmsv2/tms-backend/pkg/validationx"
)

type Validate struct {
	Target  string
	Channel channel.Channel
	Code    string
}

func (c Validate) Validate() error {
	return validation.Errors{
		"target":  validation.Validate(c.Target, validationx.TargetRules...),
		"channel": c.Channel.Validate(),
		"code":    validation.Validate(c.Code, validationx.CodeRules(verification.CodeLength)...),
	}.Filter()
}

type ValidateResult struct {
	VerificationID verification.ID
	Success        bool
}

type ValidateHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
}

type ValidateHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   Repo
}

func NewValidateHandler(args ValidateHandlerArgs) *ValidateHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ValidateHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
	}
}

func (h *ValidateHandler) Handle(ctx context.Context, cmd Validate) (ValidateResult, error) {
	ctx, span := h.tracer.Start(ctx, "ValidateHandler.Handle",
		trace.WithAttributes(
			attribute.String("verification.target", logging.RedactTarget(cmd.Target)),
			attribute.String("verification.channel", cmd.Channel.String()),
		),
	)
	defer span.End()

	if err := cmd.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid validate command")
		return ValidateResult{}, err
	}

	var verificationID verification.ID
	err := h.repo.UpdateLatestVerification(ctx, cmd.Target, cmd.Channel, func(ctx context.Context, v *verification.Verification) error {
		verificationID = v.ID()

		if err := v.Consume(cmd.Code); err != nil {
			trace.SpanFromContext(ctx).AddEvent("failed to consume verification code")
			return err
		}

		return nil
	})
	if err != nil {
		if errorx.IsNotFound(err) {
			span.AddEvent("no verification found for target")
			return ValidateResult{}, errorx.NewResourceNotFound("verification").WithCause(err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update verification")
		return ValidateResult{}, fmt.Errorf("failed to update verification: %w", err)
	}

	span.AddEvent("verification consumed",
		trace.WithAttributes(attribute.String("verification.id", verificationID.String())),
	)
	h.logger.InfoContext(ctx, "verification consumed",
		slog.String("verification_id", verificationID.String()),
	)

	return ValidateResult{VerificationID: verificationID, Success: true}, nil
}
