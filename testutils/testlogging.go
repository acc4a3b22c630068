package testutils

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"wafcore/logging"
)

// NewTestLogger creates a zerolog.Logger that writes to testing.T's log,
// formatted like the command-line loggers.
func NewTestLogger(t *testing.T) zerolog.Logger {
	w := logging.NewConsoleWriter(testWriter{t})
	w.NoColor = true
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}
