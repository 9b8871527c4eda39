package builders

import (
	"time"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/tests/integration/fixtures"
)

type VerificationBuilder struct {
	args verification.RehydrateArgs
}

func NewVerificationBuilder() *VerificationBuilder {
	now := time.Now().UTC()
	return &VerificationBuilder{
		args: verification.RehydrateArgs{
			ID:        verification.NewID(),
			Target:    fixtures.ValidEmail,
			Channel:   channel.Email,
			Code:      "123456",
			IsUsed:    false,
			ExpiresAt: now.Add(verification.CodeTTL),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (b *VerificationBuilder) WithTarget(target string) *VerificationBuilder {
	b.args.Target = target
	return b
}

func (b *VerificationBuilder) WithChannel(ch channel.Channel) *VerificationBuilder {
	b.args.Channel = ch
	return b
}

func (b *VerificationBuilder) WithCode(code string) *VerificationBuilder {
	b.args.Code = code
	return b
}

func (b *VerificationBuilder) WithUsed(used bool) *VerificationBuilder {
	b.args.IsUsed = used
	return b
}

func (b *VerificationBuilder) WithExpiresAt(at time.Time) *VerificationBuilder {
	b.args.ExpiresAt = at
	return b
}

func (b *VerificationBuilder) WithCreatedAt(at time.Time) *VerificationBuilder {
	b.args.CreatedAt = at
	return b
}

func (b *VerificationBuilder) Expired() *VerificationBuilder {
	b.args.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	b.args.CreatedAt = time.Now().UTC().Add(-verification.CodeTTL - time.Minute)
	b.args.UpdatedAt = b.args.CreatedAt
	return b
}

func (b *VerificationBuilder) Build() *verification.Verification {
	return verification.Rehydrate(b.args)
}
