package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the relay's zerolog logger. Any format other than "json"
// renders through a console writer.
func New(logLevel int, logFormat string, logSampler bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, logLevel, logFormat, logSampler)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(out io.Writer, logLevel int, logFormat string, logSampler bool) zerolog.Logger {
	writer := out
	if logFormat != "json" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(writer).
		Level(zerolog.Level(logLevel)).
		With().
		Timestamp().
		Logger()

	if logSampler {
		logger = logger.Sample(&zerolog.BasicSampler{N: 5})
	}
	return logger
}
