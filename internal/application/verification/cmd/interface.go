package cmd

import (
	"context"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
)

type Repo interface {
	SaveVerification(ctx context.Context, v *verification.Verification) error
	GetVerificationByID(ctx context.Context, id verification.ID) (*verification.Verification, error)
	// UpdateLatestVerification loads the most recent verification for the
	// target and channel, applies fn to it, and persists the result. The
	// load, fn, and write run under one transaction so two concurrent
	// callers cannot both consume the same code.
	UpdateLatestVerification(ctx context.Context, target string, ch channel.Channel, fn func(context.Context, *verification.Verification) error) error
}
