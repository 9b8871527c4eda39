package notifyevent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tmsv2/tms-backend/internal/domain/event"
	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/tests/integration/fixtures"
	"gitlab.com/tmsv2/tms-backend/tests/mocks"
)

type NotifySuite struct {
	Handler  *NotifyEventHandler
	Mail     *mocks.MockMailSender
	SMS      *mocks.MockSMSSender
	Telegram *mocks.MockTelegramSender
}

func NewNotifySuite(lang string) *NotifySuite {
	mail := mocks.NewMockMailSender()
	sms := mocks.NewMockSMSSender()
	telegram := mocks.NewMockTelegramSender()

	handler := NewNotifyEventHandler(NotifyEventHandlerArgs{
		MailSender:     mail,
		SMSSender:      sms,
		TelegramSender: telegram,
		Lang:           lang,
	})

	return &NotifySuite{
		Handler:  handler,
		Mail:     mail,
		SMS:      sms,
		Telegram: telegram,
	}
}

func newCreatedEvent(target string, ch channel.Channel, code string) *verification.VerificationCreated {
	return &verification.VerificationCreated{
		Header:         event.NewEventHeader(),
		VerificationID: verification.NewID(),
		Target:         target,
		Channel:        ch,
		Code:           code,
		ExpiresAt:      time.Now().UTC().Add(verification.CodeTTL),
	}
}

func TestHandleVerificationCreated_Email(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("en")
	e := newCreatedEvent(fixtures.ValidEmail, channel.Email, "482913")

	err := s.Handler.HandleVerificationCreated(t.Context(), e)
	require.NoError(t, err)

	s.Mail.AssertMailSent(t, fixtures.ValidEmail, "482913")
	assert.Empty(t, s.SMS.GetSent())
	assert.Empty(t, s.Telegram.GetSent())

	sent := s.Mail.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "10 minutes")
}

func TestHandleVerificationCreated_SMS(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("en")
	e := newCreatedEvent(fixtures.ValidPhone, channel.SMS, "739204")

	err := s.Handler.HandleVerificationCreated(t.Context(), e)
	require.NoError(t, err)

	s.SMS.AssertSMSSent(t, fixtures.ValidPhone, "739204")
	assert.Empty(t, s.Mail.GetSentMails())
}

func TestHandleVerificationCreated_Telegram(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("en")
	e := newCreatedEvent(fixtures.ValidTelegramHandle, channel.Telegram, "105628")

	err := s.Handler.HandleVerificationCreated(t.Context(), e)
	require.NoError(t, err)

	s.Telegram.AssertTelegramSent(t, fixtures.ValidTelegramHandle, "105628")
}

func TestHandleVerificationCreated_LocalizedBody(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("ru")
	e := newCreatedEvent(fixtures.ValidEmail, channel.Email, "482913")

	err := s.Handler.HandleVerificationCreated(t.Context(), e)
	require.NoError(t, err)

	sent := s.Mail.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "482913")
	assert.NotContains(t, sent[0].Body, "verification code is")
}

func TestHandleVerificationCreated_NilEvent(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("en")

	err := s.Handler.HandleVerificationCreated(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Mail.GetSentMails())
}

func TestHandleVerificationCreated_InvalidEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event *verification.VerificationCreated
	}{
		{
			name:  "empty target",
			event: newCreatedEvent("", channel.Email, "482913"),
		},
		{
			name:  "empty code",
			event: newCreatedEvent(fixtures.ValidEmail, channel.Email, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewNotifySuite("en")
			err := s.Handler.HandleVerificationCreated(t.Context(), tt.event)
			require.Error(t, err)
			assert.Empty(t, s.Mail.GetSentMails())
			assert.Empty(t, s.SMS.GetSent())
		})
	}
}

func TestHandleVerificationCreated_ExpiredCode_Dropped(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("en")
	e := newCreatedEvent(fixtures.ValidEmail, channel.Email, "482913")
	e.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	err := s.Handler.HandleVerificationCreated(t.Context(), e)
	require.NoError(t, err)
	assert.Empty(t, s.Mail.GetSentMails())
	assert.Empty(t, s.SMS.GetSent())
	assert.Empty(t, s.Telegram.GetSent())
}

func TestHandleVerificationCreated_NearExpiry_ClampsValidity(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("en")
	e := newCreatedEvent(fixtures.ValidEmail, channel.Email, "482913")
	e.ExpiresAt = time.Now().UTC().Add(20 * time.Second)

	err := s.Handler.HandleVerificationCreated(t.Context(), e)
	require.NoError(t, err)

	sent := s.Mail.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "1 minutes")
	assert.NotContains(t, sent[0].Body, "10 minutes")
}

func TestHandleVerificationCreated_UnknownChannel_Dropped(t *testing.T) {
	t.Parallel()

	s := NewNotifySuite("en")
	e := newCreatedEvent(fixtures.ValidEmail, channel.Channel(42), "482913")

	err := s.Handler.HandleVerificationCreated(t.Context(), e)
	require.NoError(t, err)
	assert.Empty(t, s.Mail.GetSentMails())
	assert.Empty(t, s.SMS.GetSent())
	assert.Empty(t, s.Telegram.GetSent())
}
