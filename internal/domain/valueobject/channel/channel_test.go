package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		channel Channel
		wantErr bool
	}{
		{name: "email", channel: Email},
		{name: "sms", channel: SMS},
		{name: "telegram", channel: Telegram},
		{name: "zero", channel: 0, wantErr: true},
		{name: "out of range", channel: 99, wantErr: true},
		{name: "negative", channel: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.channel.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownChannel)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChannel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "email", Email.String())
	assert.Equal(t, "sms", SMS.String())
	assert.Equal(t, "telegram", Telegram.String())
	assert.Equal(t, "unknown", Channel(42).String())
}
