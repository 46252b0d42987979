package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger: human-readable console output in
// development, JSON elsewhere.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
