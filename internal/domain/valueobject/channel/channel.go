package channel

import "errors"

// Channel is the delivery channel a verification code is sent over. Values
// are stable: they are persisted and serialized as integers.
type Channel int16

const (
	Email    Channel = 1
	SMS      Channel = 2
	Telegram Channel = 3
)

var ErrUnknownChannel = errors.New("unknown delivery channel")

func (c Channel) IsValid() bool {
	switch c {
	case Email, SMS, Telegram:
		return true
	default:
		return false
	}
}

func (c Channel) Validate() error {
	if !c.IsValid() {
		return ErrUnknownChannel
	}
	return nil
}

func (c Channel) String() string {
	switch c {
	case Email:
		return "email"
	case SMS:
		return "sms"
	case Telegram:
		return "telegram"
	default:
		return "unknown"
	}
}
