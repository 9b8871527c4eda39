package query

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
)

// GetVerificationCodeHandler reads the latest issued code straight from the
// store. Used by integration tests and local tooling, never exposed to
// callers in prod.
type GetVerificationCodeHandler struct {
	pool *pgxpool.Pool
}

func NewGetVerificationCodeHandler(pool *pgxpool.Pool) *GetVerificationCodeHandler {
	return &GetVerificationCodeHandler{
		pool: pool,
	}
}

func (h *GetVerificationCodeHandler) Handle(ctx context.Context, target string, ch channel.Channel) (string, error) {
	var code string
	err := h.pool.QueryRow(ctx, `
        SELECT code
        FROM verifications
        WHERE target = $1 AND channel = $2
        ORDER BY created_at DESC
        LIMIT 1
    `, target, int16(ch)).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errorx.NewNotFound().WithCause(err)
		}
		return "", err
	}
	return code, nil
}
