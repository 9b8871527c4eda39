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

	"gitlab.com/tmsv2/tms-backend/internal/domain/column"
	"gitlab.com/tmsv2/tms-backend/pkg/otelx"
)

// ColumnRepo satisfies both crud.Command and crud.Query for columns.
// Deletes are soft: the row keeps its data and gets a deleted_at stamp;
// reads only see live rows.
type ColumnRepo struct {
	tracer trace.Tracer
	logger *slog.Logger
	pool   *pgxpool.Pool
}

func NewColumnRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *ColumnRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &ColumnRepo{
		tracer: t,
		logger: l,
		pool:   pool,
	}
}

func (r *ColumnRepo) Insert(ctx context.Context, c *column.Column) error {
	ctx, span := r.tracer.Start(ctx, "ColumnRepo.Insert")
	defer span.End()

	dto := DomainToColumnDTO(c)

	query := `
        INSERT INTO columns (id, board_id, name, description, column_type, sort_order, color, created_at, updated_at, deleted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	res, err := r.pool.Exec(ctx, query,
		dto.ID, dto.BoardID, dto.Name, dto.Description, dto.ColumnType,
		dto.SortOrder, dto.Color, dto.CreatedAt, dto.UpdatedAt, dto.DeletedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to insert column")
		return err
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting column")
		return fmt.Errorf("failed to insert column: %w", ErrNoRowsAffected)
	}

	return nil
}

func (r *ColumnRepo) GetByID(ctx context.Context, id uuid.UUID) (*column.Column, error) {
	ctx, span := r.tracer.Start(ctx, "ColumnRepo.GetByID")
	defer span.End()

	query := `
        SELECT id, board_id, name, description, column_type, sort_order, color, created_at, updated_at, deleted_at
        FROM columns
        WHERE id = $1 AND deleted_at IS NULL;
    `

	var dto ColumnDTO
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&dto.ID, &dto.BoardID, &dto.Name, &dto.Description, &dto.ColumnType,
		&dto.SortOrder, &dto.Color, &dto.CreatedAt, &dto.UpdatedAt, &dto.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		otelx.RecordSpanError(span, err, "failed to get column by id")
		return nil, err
	}

	return ColumnToDomain(dto), nil
}

func (r *ColumnRepo) Update(ctx context.Context, c *column.Column) error {
	ctx, span := r.tracer.Start(ctx, "ColumnRepo.Update")
	defer span.End()

	dto := DomainToColumnDTO(c)

	query := `
        UPDATE columns
        SET name = $2, description = $3, column_type = $4,
            sort_order = $5, color = $6, updated_at = $7
        WHERE id = $1 AND deleted_at IS NULL;
    `

	res, err := r.pool.Exec(ctx, query,
		dto.ID, dto.Name, dto.Description, dto.ColumnType,
		dto.SortOrder, dto.Color, dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to update column")
		return err
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating column")
		return fmt.Errorf("failed to update column: %w", ErrNoRowsAffected)
	}

	return nil
}

func (r *ColumnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := r.tracer.Start(ctx, "ColumnRepo.Delete")
	defer span.End()

	query := `
        UPDATE columns
        SET deleted_at = $2, updated_at = $2
        WHERE id = $1 AND deleted_at IS NULL;
    `

	res, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to delete column")
		return err
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when deleting column")
		return fmt.Errorf("failed to delete column: %w", ErrNoRowsAffected)
	}

	return nil
}
