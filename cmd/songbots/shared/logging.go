package shared

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output at the given
// level (debug|info|warn|error).
func SetupLogger(level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerologLevel(level)).
		With().
		Timestamp().
		Logger()
}

// SetupWorkerLogger configures the charmbracelet logger used inside bot
// sessions.
func SetupWorkerLogger(level string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           charmLevel(level),
		ReportTimestamp: true,
	})
}

func zerologLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func charmLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
