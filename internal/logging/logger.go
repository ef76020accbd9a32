// Package logging builds the zerolog logger shared by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing to w. format "json" writes structured lines,
// anything else a human readable console format.
func New(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a textual level to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Printf adapts a zerolog logger to the Infof/Errorf interface the
// subsystem packages expect.
type Printf struct {
	Logger zerolog.Logger
}

// Infof logs at info level.
func (p Printf) Infof(format string, args ...interface{}) {
	p.Logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Errorf logs at error level.
func (p Printf) Errorf(format string, args ...interface{}) {
	p.Logger.Error().Msg(fmt.Sprintf(format, args...))
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
