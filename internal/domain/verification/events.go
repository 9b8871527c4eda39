package verification

import (
	"time"

	"gitlab.com/tmsv2/tms-backend/internal/domain/event"
	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
)

const EventStreamName = "events_verification"

type VerificationCreated struct {
	event.Header
	event.Otel
	VerificationID ID              `json:"verification_id"`
	Target         string          `json:"target"`
	Channel        channel.Channel `json:"channel"`
	Code           string          `json:"code"`
	ExpiresAt      time.Time       `json:"expires_at"`
}

func (e VerificationCreated) GetStreamName() string {
	return EventStreamName
}

type VerificationConsumed struct {
	event.Header
	event.Otel
	VerificationID ID              `json:"verification_id"`
	Target         string          `json:"target"`
	Channel        channel.Channel `json:"channel"`
}

func (e VerificationConsumed) GetStreamName() string {
	return EventStreamName
}
