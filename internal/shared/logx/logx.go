package logx

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the process logger. LOG_FORMAT=console switches to the
// human-readable writer for local runs; default output is JSON lines.
func New(service string) zerolog.Logger {
	var l zerolog.Logger
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		l = zerolog.New(os.Stderr)
	}
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && os.Getenv("LOG_LEVEL") != "" {
		level = lv
	}
	return l.Level(level).With().Timestamp().Str("service", service).Logger()
}
