package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
	"gitlab.com/tmsv2/tms-backend/pkg/otelx"
	"gitlab.com/tmsv2/tms-backend/pkg/postgres"
	"gitlab.com/tmsv2/tms-backend/pkg/watermillx"
)

type VerificationRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewVerificationRepo creates a new instance of VerificationRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewVerificationRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *VerificationRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &VerificationRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

func (r *VerificationRepo) GetVerificationByID(ctx context.Context, id verification.ID) (*verification.Verification, error) {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.GetVerificationByID")
	defer span.End()

	query := `
        SELECT id, target, channel, code, is_used, expires_at, created_at, updated_at
        FROM verifications
        WHERE id = $1;
    `

	var dto VerificationDTO
	err := r.pool.QueryRow(ctx, query, uuid.UUID(id)).Scan(
		&dto.ID, &dto.Target, &dto.Channel, &dto.Code,
		&dto.IsUsed, &dto.ExpiresAt, &dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get verification by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return VerificationToDomain(dto), nil
}

func (r *VerificationRepo) SaveVerification(ctx context.Context, v *verification.Verification) error {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.SaveVerification")
	defer span.End()

	dto := DomainToVerificationDTO(v)

	query := `
        INSERT INTO verifications (id, target, channel, code, is_used, expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, query,
			dto.ID, dto.Target, dto.Channel, dto.Code,
			dto.IsUsed, dto.ExpiresAt, dto.CreatedAt, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert verification")
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting verification")
			return fmt.Errorf("failed to insert verification: %w", ErrNoRowsAffected)
		}

		if events := v.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}
		return nil
	})
}

// UpdateLatestVerification applies fn to the most recent verification for
// the target and channel, used or not. The row is locked for the duration of
// the transaction, so of two concurrent consumers one waits and then sees
// is_used already set.
func (r *VerificationRepo) UpdateLatestVerification(
	ctx context.Context,
	target string,
	ch channel.Channel,
	fn func(ctx context.Context, v *verification.Verification) error,
) error {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.UpdateLatestVerification")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	selectquery := `
        SELECT id, target, channel, code, is_used, expires_at, created_at, updated_at
        FROM verifications
        WHERE target = $1 AND channel = $2
        ORDER BY created_at DESC
        LIMIT 1
        FOR UPDATE;
    `
	updatequery := `
        UPDATE verifications
        SET is_used = $2, updated_at = $3
        WHERE id = $1;
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dto VerificationDTO
		err := tx.QueryRow(ctx, selectquery, target, int16(ch)).Scan(
			&dto.ID, &dto.Target, &dto.Channel, &dto.Code,
			&dto.IsUsed, &dto.ExpiresAt, &dto.CreatedAt, &dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get verification for update")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			return err
		}

		v := VerificationToDomain(dto)

		if err := fn(ctx, v); err != nil {
			otelx.RecordSpanError(span, err, "failed to apply update function")
			return err
		}

		dto = DomainToVerificationDTO(v)

		res, err := tx.Exec(ctx, updatequery, dto.ID, dto.IsUsed, dto.UpdatedAt)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update verification")
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating verification")
			return fmt.Errorf("failed to update verification: %w", ErrNoRowsAffected)
		}

		if events := v.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}

		return nil
	})
}
