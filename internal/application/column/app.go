// Package columnapp is the application service for board columns. It is
// deliberately thin: validate the identifier, delegate to the persistence
// capability, log.
package columnapp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/tmsv2/tms-backend/internal/application/crud"
	"gitlab.com/tmsv2/tms-backend/internal/domain/column"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
)

var (
	tracer = otel.Tracer("tms/application/column")
	logger = otelslog.NewLogger("tms/application/column")
)

type App struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	command crud.Command[column.Column]
	query   crud.Query[column.Column]
}

type Args struct {
	Tracer  trace.Tracer
	Logger  *slog.Logger
	Command crud.Command[column.Column]
	Query   crud.Query[column.Column]
}

func NewApp(args Args) *App {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &App{
		tracer:  args.Tracer,
		logger:  args.Logger,
		command: args.Command,
		query:   args.Query,
	}
}

func (a *App) Create(ctx context.Context, args column.NewArgs) (*column.Column, error) {
	ctx, span := a.tracer.Start(ctx, "columnapp.Create",
		trace.WithAttributes(attribute.String("board.id", args.BoardID.String())),
	)
	defer span.End()

	col, err := column.New(args)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid column")
		return nil, err
	}

	if err := a.command.Insert(ctx, col); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert column")
		return nil, fmt.Errorf("failed to insert column: %w", err)
	}

	// Re-read so the caller sees the stored state, not the in-memory one.
	stored, err := a.query.GetByID(ctx, col.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read back column")
		return nil, fmt.Errorf("failed to read back column: %w", err)
	}
	if stored == nil {
		span.AddEvent("column missing after insert")
		return nil, errorx.NewResourceNotFound("column")
	}

	a.logger.InfoContext(ctx, "column created", slog.String("column_id", col.ID().String()))

	return stored, nil
}

// GetByID returns (nil, nil) when no column exists with the given id.
// Callers relying on presence should use Update, which reports absence.
func (a *App) GetByID(ctx context.Context, id uuid.UUID) (*column.Column, error) {
	ctx, span := a.tracer.Start(ctx, "columnapp.GetByID",
		trace.WithAttributes(attribute.String("column.id", id.String())),
	)
	defer span.End()

	if id == uuid.Nil {
		span.RecordError(crud.ErrWrongID)
		return nil, crud.ErrWrongID
	}

	col, err := a.query.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get column")
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	return col, nil
}

func (a *App) Update(ctx context.Context, id uuid.UUID, args column.UpdateArgs) (*column.Column, error) {
	ctx, span := a.tracer.Start(ctx, "columnapp.Update",
		trace.WithAttributes(attribute.String("column.id", id.String())),
	)
	defer span.End()

	if id == uuid.Nil {
		span.RecordError(crud.ErrWrongID)
		return nil, crud.ErrWrongID
	}

	col, err := a.query.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get column")
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	if col == nil {
		span.AddEvent("column not found")
		return nil, errorx.NewResourceNotFound("column")
	}

	if err := col.Update(args); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid column update")
		return nil, err
	}

	if err := a.command.Update(ctx, col); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update column")
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	a.logger.InfoContext(ctx, "column updated", slog.String("column_id", id.String()))

	return col, nil
}

func (a *App) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := a.tracer.Start(ctx, "columnapp.Delete",
		trace.WithAttributes(attribute.String("column.id", id.String())),
	)
	defer span.End()

	if id == uuid.Nil {
		span.RecordError(crud.ErrWrongID)
		return crud.ErrWrongID
	}

	if err := a.command.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete column")
		return fmt.Errorf("failed to delete column: %w", err)
	}

	a.logger.InfoContext(ctx, "column deleted", slog.String("column_id", id.String()))

	return nil
}
