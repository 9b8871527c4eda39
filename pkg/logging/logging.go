package logging

import (
	"io"
	"log/slog"
	"os"

	"gitlab.com/tmsv2/tms-backend/pkg/env"
)

// Setup builds the process-wide logger for the given mode. The returned
// cleanup closes the log file when LogPath directed output to one.
func Setup(mode env.Mode, logPath string) (*slog.Logger, func()) {
	var out io.Writer = os.Stdout
	cleanup := func() {}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			out = f
			cleanup = func() { _ = f.Close() }
		}
	}

	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	switch mode {
	case env.Prod:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler), cleanup
}
