package log

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. An explicit level wins; otherwise
// development gets debug and production gets info.
func New(environment, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	lvl := zerolog.InfoLevel
	if environment != "production" {
		lvl = zerolog.DebugLevel
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			lvl = parsed
		}
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Str("env", environment).
		Logger()
}
