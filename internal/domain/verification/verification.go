package verification

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"

	"gitlab.com/tmsv2/tms-backend/internal/domain/event"
	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
	"gitlab.com/tmsv2/tms-backend/pkg/randcode"
)

const (
	CodeLength = 6

	// CodeTTL is how long an issued code stays valid.
	CodeTTL = 10 * time.Minute
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(id).String())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	uid, err := uuid.Parse(s)
	if err != nil {
		return err
	}

	*id = ID(uid)
	return nil
}

// Verification is a single-use, time-boxed code tied to a delivery target.
// Once consumed it can never become usable again.
type Verification struct {
	event.Recorder
	id        ID
	target    string
	channel   channel.Channel
	code      string
	isUsed    bool
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

func New(target string, ch channel.Channel) (*Verification, error) {
	const op = "verification.New"
	err := validation.Validate(&target, validation.Required)
	if err != nil {
		return nil, errorx.Wrap(ErrEmptyTarget, op)
	}
	if err := ch.Validate(); err != nil {
		return nil, errorx.Wrap(ErrInvalidChannel, op)
	}

	code, err := generateCode()
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}
	now := time.Now().UTC()

	v := &Verification{
		id:        NewID(),
		target:    target,
		channel:   ch,
		code:      code,
		isUsed:    false,
		expiresAt: now.Add(CodeTTL),
		createdAt: now,
		updatedAt: now,
	}

	v.AddEvent(&VerificationCreated{
		Header:         event.NewEventHeader(),
		VerificationID: v.id,
		Target:         target,
		Channel:        ch,
		Code:           code,
		ExpiresAt:      v.expiresAt,
	})

	return v, nil
}

type RehydrateArgs struct {
	ID        ID
	Target    string
	Channel   channel.Channel
	Code      string
	IsUsed    bool
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Rehydrate(args RehydrateArgs) *Verification {
	return &Verification{
		id:        args.ID,
		target:    args.Target,
		channel:   args.Channel,
		code:      args.Code,
		isUsed:    args.IsUsed,
		expiresAt: args.ExpiresAt,
		createdAt: args.CreatedAt,
		updatedAt: args.UpdatedAt,
	}
}

// Consume validates the submitted code and transitions the record to used.
// Checks are ordered: expiry, use-state, then exact string equality of the
// code. The used transition is one-way.
func (v *Verification) Consume(code string) error {
	const op = "verification.Verification.Consume"
	if v == nil {
		return errorx.Wrap(errors.New("verification is nil"), op)
	}

	if v.IsExpired() {
		return errorx.Wrap(ErrCodeExpired, op)
	}
	if v.isUsed {
		return errorx.Wrap(ErrCodeAlreadyUsed, op)
	}
	if v.code != code {
		return errorx.Wrap(ErrCodeMismatch, op)
	}

	v.isUsed = true
	v.updatedAt = time.Now().UTC()
	v.AddEvent(&VerificationConsumed{
		Header:         event.NewEventHeader(),
		VerificationID: v.id,
		Target:         v.target,
		Channel:        v.channel,
	})

	return nil
}

func (v *Verification) IsExpired() bool {
	if v == nil || v.expiresAt.IsZero() {
		return true
	}
	return !time.Now().UTC().Before(v.expiresAt)
}

func (v *Verification) ID() ID {
	if v == nil {
		return ID{}
	}
	return v.id
}

func (v *Verification) Target() string {
	if v == nil {
		return ""
	}
	return v.target
}

func (v *Verification) Channel() channel.Channel {
	if v == nil {
		return 0
	}
	return v.channel
}

func (v *Verification) Code() string {
	if v == nil {
		return ""
	}
	return v.code
}

func (v *Verification) IsUsed() bool {
	if v == nil {
		return false
	}
	return v.isUsed
}

func (v *Verification) ExpiresAt() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.expiresAt
}

func (v *Verification) CreatedAt() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.createdAt
}

func (v *Verification) UpdatedAt() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.updatedAt
}

func generateCode() (string, error) {
	const op = "verification.generateCode"
	code, err := randcode.GenerateNumericCode(CodeLength)
	if err != nil {
		return "", errorx.Wrap(err, op)
	}

	return code, nil
}
