// Package logging constructs the loggers shared by the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewConsoleWriter creates the console writer shared by every logger this
// module constructs, so command and test output format the same way.
func NewConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// NewConsoleLogger creates a console zerolog.Logger at the given level.
// An unparsable level falls back to zerolog's no-level behavior.
func NewConsoleLogger(level string) zerolog.Logger {
	l, _ := zerolog.ParseLevel(level)
	return zerolog.New(NewConsoleWriter(os.Stderr)).
		Level(l).
		With().Timestamp().Caller().Logger()
}
