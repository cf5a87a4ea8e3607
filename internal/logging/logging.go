package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"retainer-tracker/internal/config"
)

// Setup builds the application logger from config. Console format writes
// human-readable lines to stderr, keeping stdout free for command output.
func Setup(cfg config.LoggingConfig) zerolog.Logger {
	return NewLogger(cfg, os.Stderr)
}

// NewLogger builds a logger writing to the given sink.
func NewLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
