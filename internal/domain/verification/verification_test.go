package verification

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		channel channel.Channel
		wantErr error
	}{
		{name: "email target", target: "user@example.com", channel: channel.Email},
		{name: "phone target", target: "+77011234567", channel: channel.SMS},
		{name: "telegram handle", target: "@someuser", channel: channel.Telegram},
		{name: "empty target", target: "", channel: channel.Email, wantErr: ErrEmptyTarget},
		{name: "unknown channel", target: "user@example.com", channel: channel.Channel(42), wantErr: ErrInvalidChannel},
		{name: "zero channel", target: "user@example.com", channel: 0, wantErr: ErrInvalidChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := New(tt.target, tt.channel)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, v)

			assert.Equal(t, tt.target, v.Target())
			assert.Equal(t, tt.channel, v.Channel())
			assert.False(t, v.IsUsed())
			assert.NotEqual(t, ID{}, v.ID())

			require.Len(t, v.Code(), CodeLength)
			n, err := strconv.Atoi(v.Code())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 100000)
			assert.LessOrEqual(t, n, 999999)

			now := time.Now().UTC()
			assert.WithinDuration(t, now, v.CreatedAt(), time.Second)
			assert.WithinDuration(t, now.Add(CodeTTL), v.ExpiresAt(), time.Second)

			events := v.GetUncommittedEvents()
			require.Len(t, events, 1)
			created, ok := events[0].(*VerificationCreated)
			require.True(t, ok)
			assert.Equal(t, v.ID(), created.VerificationID)
			assert.Equal(t, tt.target, created.Target)
			assert.Equal(t, tt.channel, created.Channel)
			assert.Equal(t, v.Code(), created.Code)
			assert.Equal(t, v.ExpiresAt(), created.ExpiresAt)
		})
	}
}

func TestNew_DistinctIssues(t *testing.T) {
	t.Parallel()

	first, err := New("user@example.com", channel.Email)
	require.NoError(t, err)
	second, err := New("user@example.com", channel.Email)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	// Codes collide with probability 1/900000; a collision here points at a
	// broken generator, not bad luck.
	assert.NotEqual(t, first.Code(), second.Code())
}

func TestConsume(t *testing.T) {
	t.Parallel()

	v, err := New("user@example.com", channel.Email)
	require.NoError(t, err)
	v.MarkEventsAsCommitted()

	err = v.Consume(v.Code())
	require.NoError(t, err)
	assert.True(t, v.IsUsed())

	events := v.GetUncommittedEvents()
	require.Len(t, events, 1)
	consumed, ok := events[0].(*VerificationConsumed)
	require.True(t, ok)
	assert.Equal(t, v.ID(), consumed.VerificationID)
	assert.Equal(t, v.Target(), consumed.Target)
	assert.Equal(t, v.Channel(), consumed.Channel)
}

func TestConsume_Twice(t *testing.T) {
	t.Parallel()

	v, err := New("user@example.com", channel.Email)
	require.NoError(t, err)

	require.NoError(t, v.Consume(v.Code()))

	err = v.Consume(v.Code())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
	assert.True(t, v.IsUsed())
}

func TestConsume_Expired(t *testing.T) {
	t.Parallel()

	v := Rehydrate(RehydrateArgs{
		ID:        NewID(),
		Target:    "user@example.com",
		Channel:   channel.Email,
		Code:      "123456",
		IsUsed:    false,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
		CreatedAt: time.Now().UTC().Add(-11 * time.Minute),
		UpdatedAt: time.Now().UTC().Add(-11 * time.Minute),
	})

	err := v.Consume("123456")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeExpired)
	assert.False(t, v.IsUsed())
}

func TestConsume_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	// A record whose expiry is exactly now (or in the past) is unusable.
	v := Rehydrate(RehydrateArgs{
		ID:        NewID(),
		Target:    "user@example.com",
		Channel:   channel.Email,
		Code:      "654321",
		ExpiresAt: time.Now().UTC(),
		CreatedAt: time.Now().UTC().Add(-CodeTTL),
		UpdatedAt: time.Now().UTC().Add(-CodeTTL),
	})

	err := v.Consume("654321")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestConsume_Mismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		stored    string
		submitted string
	}{
		{name: "one digit off", stored: "123456", submitted: "123457"},
		{name: "leading zero stored", stored: "012345", submitted: "12345"},
		{name: "leading zero submitted", stored: "123450", submitted: "012345"},
		{name: "empty submitted", stored: "123456", submitted: ""},
		{name: "longer submitted", stored: "123456", submitted: "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := Rehydrate(RehydrateArgs{
				ID:        NewID(),
				Target:    "user@example.com",
				Channel:   channel.Email,
				Code:      tt.stored,
				ExpiresAt: time.Now().UTC().Add(CodeTTL),
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			})

			err := v.Consume(tt.submitted)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCodeMismatch)
			assert.False(t, v.IsUsed())
			assert.Empty(t, v.GetUncommittedEvents())
		})
	}
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	fresh, err := New("user@example.com", channel.Email)
	require.NoError(t, err)
	assert.False(t, fresh.IsExpired())

	stale := Rehydrate(RehydrateArgs{
		ID:        NewID(),
		Target:    "user@example.com",
		Channel:   channel.Email,
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(-time.Second),
		CreatedAt: time.Now().UTC().Add(-CodeTTL),
		UpdatedAt: time.Now().UTC().Add(-CodeTTL),
	})
	assert.True(t, stale.IsExpired())

	var missing *Verification
	assert.True(t, missing.IsExpired())
	assert.True(t, (&Verification{}).IsExpired())
}
