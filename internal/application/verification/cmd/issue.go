package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/pkg/logging"
	"gitlab.com/tmsv2/tms-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("tms/application/verification/cmd")
	logger = otelslog.NewLogger("tms/application/verification/cmd")
)

type Issue struct {
	Target  string
	Channel channel.Channel
}

func (c Issue) Validate() error {
	return validation.Errors{
		"target":  validation.Validate(c.Target, validationx.TargetRules...),
		"channel": c.Channel.Validate(),
	}.Filter()
}

type IssueResult struct {
	VerificationID verification.ID
	ExpiresAt      time.Time
	Success        bool
}

type IssueHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
}

type IssueHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   Repo
}

func NewIssueHandler(args IssueHandlerArgs) *IssueHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &IssueHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
	}
}

func (h *IssueHandler) Handle(ctx context.Context, cmd Issue) (IssueResult, error) {
	ctx, span := h.tracer.Start(ctx, "IssueHandler.Handle",
		trace.WithAttributes(
			attribute.String("verification.target", logging.RedactTarget(cmd.Target)),
			attribute.String("verification.channel", cmd.Channel.String()),
		),
	)
	defer span.End()

	if err := cmd.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid issue command")
		return IssueResult{}, err
	}

	v, err := verification.New(cmd.Target, cmd.Channel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create verification")
		return IssueResult{}, fmt.Errorf("failed to create verification: %w", err)
	}

	// The created event is written to the outbox in the same transaction as
	// the row itself, so the notification can never reference a verification
	// that was not durably stored.
	if err := h.repo.SaveVerification(ctx, v); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save verification")
		return IssueResult{}, fmt.Errorf("failed to save verification: %w", err)
	}

	span.AddEvent("verification issued",
		trace.WithAttributes(attribute.String("verification.id", v.ID().String())),
	)
	h.logger.InfoContext(ctx, "verification issued",
		slog.String("verification_id", v.ID().String()),
		slog.String("channel", cmd.Channel.String()),
	)

	return IssueResult{
		VerificationID: v.ID(),
		ExpiresAt:      v.ExpiresAt(),
		Success:        true,
	}, nil
}
