// Package taskapp is the application service for tasks. Same shape as the
// column service: identifier checks, capability calls, logging.
package taskapp

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
	"gitlab.com/tmsv2/tms-backend/internal/domain/task"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
)

var (
	tracer = otel.Tracer("tms/application/task")
	logger = otelslog.NewLogger("tms/application/task")
)

type App struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	command crud.Command[task.Task]
	query   crud.Query[task.Task]
}

type Args struct {
	Tracer  trace.Tracer
	Logger  *slog.Logger
	Command crud.Command[task.Task]
	Query   crud.Query[task.Task]
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

func (a *App) Create(ctx context.Context, args task.NewArgs) (*task.Task, error) {
	ctx, span := a.tracer.Start(ctx, "taskapp.Create",
		trace.WithAttributes(attribute.String("column.id", args.ColumnID.String())),
	)
	defer span.End()

	tsk, err := task.New(args)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid task")
		return nil, err
	}

	if err := a.command.Insert(ctx, tsk); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert task")
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	// Re-read so the caller sees the stored state, not the in-memory one.
	stored, err := a.query.GetByID(ctx, tsk.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read back task")
		return nil, fmt.Errorf("failed to read back task: %w", err)
	}
	if stored == nil {
		span.AddEvent("task missing after insert")
		return nil, errorx.NewResourceNotFound("task")
	}

	a.logger.InfoContext(ctx, "task created", slog.String("task_id", tsk.ID().String()))

	return stored, nil
}

// GetByID returns (nil, nil) when no task exists with the given id.
func (a *App) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	ctx, span := a.tracer.Start(ctx, "taskapp.GetByID",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	if id == uuid.Nil {
		span.RecordError(crud.ErrWrongID)
		return nil, crud.ErrWrongID
	}

	tsk, err := a.query.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get task")
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return tsk, nil
}

func (a *App) Update(ctx context.Context, id uuid.UUID, args task.UpdateArgs) (*task.Task, error) {
	ctx, span := a.tracer.Start(ctx, "taskapp.Update",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	if id == uuid.Nil {
		span.RecordError(crud.ErrWrongID)
		return nil, crud.ErrWrongID
	}

	tsk, err := a.query.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get task")
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if tsk == nil {
		span.AddEvent("task not found")
		return nil, errorx.NewResourceNotFound("task")
	}

	if err := tsk.Update(args); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid task update")
		return nil, err
	}

	if err := a.command.Update(ctx, tsk); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update task")
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	a.logger.InfoContext(ctx, "task updated", slog.String("task_id", id.String()))

	return tsk, nil
}

func (a *App) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := a.tracer.Start(ctx, "taskapp.Delete",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	if id == uuid.Nil {
		span.RecordError(crud.ErrWrongID)
		return crud.ErrWrongID
	}

	if err := a.command.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete task")
		return fmt.Errorf("failed to delete task: %w", err)
	}

	a.logger.InfoContext(ctx, "task deleted", slog.String("task_id", id.String()))

	return nil
}
