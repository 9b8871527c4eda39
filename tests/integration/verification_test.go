package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	verificationcmd "gitlab.com/tmsv2/tms-backend/internal/application/verification/cmd"
	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
	"gitlab.com/tmsv2/tms-backend/tests/integration/fixtures"
)

type VerificationSuite struct {
	TestSuite
}

func TestVerificationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration suite in short mode")
	}
	suite.Run(t, new(VerificationSuite))
}

func (s *VerificationSuite) TestIssueThenValidateFlow() {
	ctx := s.T().Context()

	// Each test starts from an empty outbox; truncation between tests is
	// what keeps the absolute counts below meaningful.
	s.Require().Zero(s.OutboxEventCount("verification.VerificationCreated"))
	s.Require().Zero(s.OutboxEventCount("verification.VerificationConsumed"))

	res, err := s.app.Verification.CMD.Issue.Handle(ctx, verificationcmd.Issue{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
	})
	s.Require().NoError(err)
	s.True(res.Success)
	s.WithinDuration(time.Now().UTC().Add(verification.CodeTTL), res.ExpiresAt, 2*time.Second)

	// The row is durable and readable back.
	stored, err := s.app.VerificationRepo.GetVerificationByID(ctx, res.VerificationID)
	s.Require().NoError(err)
	s.False(stored.IsUsed())

	// The created event landed in the outbox in the same transaction.
	s.Equal(1, s.OutboxEventCount("verification.VerificationCreated"))

	// Local tooling can read the issued code back.
	code, err := s.app.Verification.Query.GetVerificationCode.Handle(ctx, fixtures.ValidEmail, channel.Email)
	s.Require().NoError(err)
	s.Equal(stored.Code(), code)

	vres, err := s.app.Verification.CMD.Validate.Handle(ctx, verificationcmd.Validate{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
		Code:    code,
	})
	s.Require().NoError(err)
	s.True(vres.Success)
	s.Equal(res.VerificationID, vres.VerificationID)

	s.Equal(1, s.OutboxEventCount("verification.VerificationConsumed"))

	// Second attempt with the same code.
	_, err = s.app.Verification.CMD.Validate.Handle(ctx, verificationcmd.Validate{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
		Code:    code,
	})
	s.Require().Error(err)
	s.Require().ErrorIs(err, verification.ErrCodeAlreadyUsed)
}

func (s *VerificationSuite) TestValidateMatchesMostRecentIssue() {
	ctx := s.T().Context()

	first, err := s.app.Verification.CMD.Issue.Handle(ctx, verificationcmd.Issue{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
	})
	s.Require().NoError(err)

	// created_at has microsecond resolution; make the ordering unambiguous
	time.Sleep(10 * time.Millisecond)

	second, err := s.app.Verification.CMD.Issue.Handle(ctx, verificationcmd.Issue{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
	})
	s.Require().NoError(err)
	s.NotEqual(first.VerificationID, second.VerificationID)

	firstStored, err := s.app.VerificationRepo.GetVerificationByID(ctx, first.VerificationID)
	s.Require().NoError(err)
	secondStored, err := s.app.VerificationRepo.GetVerificationByID(ctx, second.VerificationID)
	s.Require().NoError(err)

	if firstStored.Code() != secondStored.Code() {
		_, err = s.app.Verification.CMD.Validate.Handle(ctx, verificationcmd.Validate{
			Target:  fixtures.ValidEmail,
			Channel: channel.Email,
			Code:    firstStored.Code(),
		})
		s.Require().Error(err)
		s.Require().ErrorIs(err, verification.ErrCodeMismatch)
	}

	vres, err := s.app.Verification.CMD.Validate.Handle(ctx, verificationcmd.Validate{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
		Code:    secondStored.Code(),
	})
	s.Require().NoError(err)
	s.Equal(second.VerificationID, vres.VerificationID)
}

func (s *VerificationSuite) TestValidateNotFoundForWrongChannel() {
	ctx := s.T().Context()

	_, err := s.app.Verification.CMD.Issue.Handle(ctx, verificationcmd.Issue{
		Target:  fixtures.ValidEmail,
		Channel: channel.Email,
	})
	s.Require().NoError(err)

	_, err = s.app.Verification.CMD.Validate.Handle(ctx, verificationcmd.Validate{
		Target:  fixtures.ValidEmail,
		Channel: channel.SMS,
		Code:    "123456",
	})
	s.Require().Error(err)
	s.True(errorx.IsNotFound(err))
}

func (s *VerificationSuite) TestConcurrentValidation_ExactlyOneSucceeds() {
	ctx := s.T().Context()

	s.Require().Zero(s.OutboxEventCount("verification.VerificationConsumed"))

	res, err := s.app.Verification.CMD.Issue.Handle(ctx, verificationcmd.Issue{
		Target:  fixtures.ValidSecondEmail,
		Channel: channel.Email,
	})
	s.Require().NoError(err)

	code, err := s.app.Verification.Query.GetVerificationCode.Handle(ctx, fixtures.ValidSecondEmail, channel.Email)
	s.Require().NoError(err)

	const attempts = 6

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.app.Verification.CMD.Validate.Handle(ctx, verificationcmd.Validate{
				Target:  fixtures.ValidSecondEmail,
				Channel: channel.Email,
				Code:    code,
			})
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.Require().ErrorIs(err, verification.ErrCodeAlreadyUsed)
		}
	}
	s.Equal(1, succeeded)

	stored, err := s.app.VerificationRepo.GetVerificationByID(ctx, res.VerificationID)
	s.Require().NoError(err)
	s.True(stored.IsUsed())
	s.Equal(1, s.OutboxEventCount("verification.VerificationConsumed"))
}
