// Package logging configures the process-wide logger.
//
// Logs always go to stderr. With the stdio transport, stdout carries the
// protocol stream, so writing anything else there corrupts the session.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// SetupParams controls logger construction.
type SetupParams struct {
	Level      string
	FormatJSON bool
}

// Setup builds a logger writing to stderr with the given level and format.
func Setup(params SetupParams) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(GetLevel(params.Level))

	if params.FormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return log
}

// GetLevel parses a level name, defaulting to info for unknown values.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
