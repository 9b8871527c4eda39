package cmd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
	"gitlab.com/tmsv2/tms-backend/tests/integration/builders"
	"gitlab.com/tmsv2/tms-backend/tests/integration/fixtures"
	"gitlab.com/tmsv2/tms-backend/tests/mocks"
)

type ValidateSuite struct {
	Handler  *ValidateHandler
	MockRepo *mocks.VerificationRepo
}

func NewValidateSuite() *ValidateSuite {
	mockRepo := mocks.NewVerificationRepo()
	handler := NewValidateHandler(ValidateHandlerArgs{
		Repo: mockRepo,
	})

	return &ValidateSuite{
		Handler:  handler,
		MockRepo: mockRepo,
	}
}

func TestValidateHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()
	v := builders.NewVerificationBuilder().Build()
	s.MockRepo.SeedVerification(t, v)

	res, err := s.Handler.Handle(t.Context(), Validate{
		Target:  v.Target(),
		Channel: v.Channel(),
		Code:    v.Code(),
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, v.ID(), res.VerificationID)

	s.MockRepo.AssertVerificationUsed(t, v.ID())

	s.MockRepo.AssertEventCount(t, 1)
	e := mocks.RequireEventExists(t, s.MockRepo.EventRepo, &verification.VerificationConsumed{})
	require.NotNil(t, e)
	assert.Equal(t, v.ID(), e.VerificationID)
	assert.Equal(t, v.Target(), e.Target)
	assert.Equal(t, v.Channel(), e.Channel)
}

func TestValidateHandler_SecondAttempt_AlreadyUsed(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()
	v := builders.NewVerificationBuilder().Build()
	s.MockRepo.SeedVerification(t, v)

	_, err := s.Handler.Handle(t.Context(), Validate{
		Target:  v.Target(),
		Channel: v.Channel(),
		Code:    v.Code(),
	})
	require.NoError(t, err)

	res, err := s.Handler.Handle(t.Context(), Validate{
		Target:  v.Target(),
		Channel: v.Channel(),
		Code:    v.Code(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrCodeAlreadyUsed)
	assert.False(t, res.Success)
}

func TestValidateHandler_Expired(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()
	v := builders.NewVerificationBuilder().Expired().Build()
	s.MockRepo.SeedVerification(t, v)

	res, err := s.Handler.Handle(t.Context(), Validate{
		Target:  v.Target(),
		Channel: v.Channel(),
		Code:    v.Code(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrCodeExpired)
	assert.False(t, res.Success)

	s.MockRepo.AssertEventCount(t, 0)
}

func TestValidateHandler_CodeMismatch(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()
	v := builders.NewVerificationBuilder().WithCode("123456").Build()
	s.MockRepo.SeedVerification(t, v)

	res, err := s.Handler.Handle(t.Context(), Validate{
		Target:  v.Target(),
		Channel: v.Channel(),
		Code:    "654321",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrCodeMismatch)
	assert.False(t, res.Success)

	s.MockRepo.AssertEventCount(t, 0)
}

func TestValidateHandler_NoVerification_NotFound(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()

	_, err := s.Handler.Handle(t.Context(), Validate{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
		Code:    "123456",
	})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}

func TestValidateHandler_WrongChannel_NotFound(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()
	v := builders.NewVerificationBuilder().WithChannel(channel.Email).Build()
	s.MockRepo.SeedVerification(t, v)

	_, err := s.Handler.Handle(t.Context(), Validate{
		Target:  v.Target(),
		Channel: channel.SMS,
		Code:    v.Code(),
	})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}

func TestValidateHandler_MatchesMostRecent(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()
	older := builders.NewVerificationBuilder().WithCode("111111").Build()
	newer := builders.NewVerificationBuilder().WithCode("222222").Build()
	s.MockRepo.SeedVerification(t, older)
	s.MockRepo.SeedVerification(t, newer)

	// The older code no longer matches.
	_, err := s.Handler.Handle(t.Context(), Validate{
		Target:  older.Target(),
		Channel: older.Channel(),
		Code:    "111111",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrCodeMismatch)

	res, err := s.Handler.Handle(t.Context(), Validate{
		Target:  newer.Target(),
		Channel: newer.Channel(),
		Code:    "222222",
	})
	require.NoError(t, err)
	assert.Equal(t, newer.ID(), res.VerificationID)
}

func TestValidateHandler_InvalidArgs_ShouldReturnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  Validate
	}{
		{
			name: "Empty Target",
			arg:  Validate{Target: "", Channel: channel.Email, Code: "123456"},
		},
		{
			name: "Empty Code",
			arg:  Validate{Target: fixtures.ValidEmail, Channel: channel.Email, Code: ""},
		},
		{
			name: "Short Code",
			arg:  Validate{Target: fixtures.ValidEmail, Channel: channel.Email, Code: "12345"},
		},
		{
			name: "Non-digit Code",
			arg:  Validate{Target: fixtures.ValidEmail, Channel: channel.Email, Code: "12a456"},
		},
		{
			name: "Unknown Channel",
			arg:  Validate{Target: fixtures.ValidEmail, Channel: channel.Channel(42), Code: "123456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewValidateSuite()
			v := builders.NewVerificationBuilder().Build()
			s.MockRepo.SeedVerification(t, v)

			res, err := s.Handler.Handle(t.Context(), tt.arg)
			require.Error(t, err)
			assert.False(t, res.Success)
			assert.False(t, s.MockRepo.Latest(v.Target(), v.Channel()).IsUsed())
		})
	}
}

func TestValidateHandler_ConcurrentAttempts_ExactlyOneSucceeds(t *testing.T) {
	t.Parallel()

	s := NewValidateSuite()
	v := builders.NewVerificationBuilder().Build()
	s.MockRepo.SeedVerification(t, v)

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.Handler.Handle(t.Context(), Validate{
				Target:  v.Target(),
				Channel: v.Channel(),
				Code:    v.Code(),
			})
		}()
	}
	wg.Wait()

	var succeeded, alreadyUsed int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, verification.ErrCodeAlreadyUsed)
			alreadyUsed++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, alreadyUsed)
	s.MockRepo.AssertVerificationUsed(t, v.ID())
	s.MockRepo.AssertEventCount(t, 1)
}
