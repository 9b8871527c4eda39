package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/tmsv2/tms-backend/internal/domain/task"
	"gitlab.com/tmsv2/tms-backend/pkg/otelx"
)

// TaskRepo satisfies crud.Command and crud.Query for tasks. Same soft-delete
// convention as ColumnRepo.
type TaskRepo struct {
	tracer trace.Tracer
	logger *slog.Logger
	pool   *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *TaskRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &TaskRepo{
		tracer: t,
		logger: l,
		pool:   pool,
	}
}

func (r *TaskRepo) Insert(ctx context.Context, t *task.Task) error {
	ctx, span := r.tracer.Start(ctx, "TaskRepo.Insert")
	defer span.End()

	dto := DomainToTaskDTO(t)

	query := `
        INSERT INTO tasks (id, column_id, title, description, assignee_id, sort_order, due_date, created_at, updated_at, deleted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	res, err := r.pool.Exec(ctx, query,
		dto.ID, dto.ColumnID, dto.Title, dto.Description, dto.AssigneeID,
		dto.SortOrder, dto.DueDate, dto.CreatedAt, dto.UpdatedAt, dto.DeletedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to insert task")
		return err
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting task")
		return fmt.Errorf("failed to insert task: %w", ErrNoRowsAffected)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	ctx, span := r.tracer.Start(ctx, "TaskRepo.GetByID")
	defer span.End()

	query := `
        SELECT id, column_id, title, description, assignee_id, sort_order, due_date, created_at, updated_at, deleted_at
        FROM tasks
        WHERE id = $1 AND deleted_at IS NULL;
    `

	var dto TaskDTO
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&dto.ID, &dto.ColumnID, &dto.Title, &dto.Description, &dto.AssigneeID,
		&dto.SortOrder, &dto.DueDate, &dto.CreatedAt, &dto.UpdatedAt, &dto.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		otelx.RecordSpanError(span, err, "failed to get task by id")
		return nil, err
	}

	return TaskToDomain(dto), nil
}

func (r *TaskRepo) Update(ctx context.Context, t *task.Task) error {
	ctx, span := r.tracer.Start(ctx, "TaskRepo.Update")
	defer span.End()

	dto := DomainToTaskDTO(t)

	query := `
        UPDATE tasks
        SET column_id = $2, title = $3, description = $4,
            assignee_id = $5, sort_order = $6, due_date = $7, updated_at = $8
        WHERE id = $1 AND deleted_at IS NULL;
    `

	res, err := r.pool.Exec(ctx, query,
		dto.ID, dto.ColumnID, dto.Title, dto.Description,
		dto.AssigneeID, dto.SortOrder, dto.DueDate, dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to update task")
		return err
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating task")
		return fmt.Errorf("failed to update task: %w", ErrNoRowsAffected)
	}

	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := r.tracer.Start(ctx, "TaskRepo.Delete")
	defer span.End()

	query := `
        UPDATE tasks
        SET deleted_at = $2, updated_at = $2
        WHERE id = $1 AND deleted_at IS NULL;
    `

	res, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to delete task")
		return err
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when deleting task")
		return fmt.Errorf("failed to delete task: %w", ErrNoRowsAffected)
	}

	return nil
}
