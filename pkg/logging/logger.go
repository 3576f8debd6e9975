// Package logging provides structured logging for pedigreecheck using zerolog.
//
// Two loggers are in play during a run. The diagnostic logger (Default, or the
// one carried by a context) reports what the tool is doing: files opened,
// sheets read, records processed. The audit logger (NewAudit) writes the
// reconciliation outcomes themselves, one human-readable line each:
//
//	2024-03-01 10:15:42 [INFO] - Le chien (Rex) existe déjà dans la base de données ...
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("file", path).Int("rows", n).Msg("Loaded dataset")
//
//	ctx := logging.WithRun(ctx, runID)
//	logging.FromContext(ctx).Debug().Msg("Reconciling batch")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if isTerminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := parseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode()&os.ModeCharDevice != 0
}
