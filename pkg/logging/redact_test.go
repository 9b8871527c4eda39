package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "johndoe@example.com", want: "jo****@example.com"},
		{name: "short local kept", in: "ab@example.com", want: "ab@example.com"},
		{name: "no at", in: "not-an-email", want: "not-an-email"},
		{name: "empty", in: "", want: ""},
		{name: "at at end", in: "john@", want: "john@"},
		{name: "unicode local", in: "жанна@example.com", want: "жа****@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, RedactEmail(tt.in))
		})
	}
}

func TestRedactTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "email", in: "johndoe@example.com", want: "jo****@example.com"},
		{name: "phone", in: "+77011234567", want: "****4567"},
		{name: "handle", in: "@someuser", want: "****user"},
		{name: "short", in: "abc", want: "****"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, RedactTarget(tt.in))
		})
	}
}
