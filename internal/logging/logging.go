// Package logging builds the application logger from the environment.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logger handed to every component.
type Logger = *logrus.Logger

// Entry is a logger carrying bound fields.
type Entry = *logrus.Entry

// Fields aliases logrus.Fields for call sites.
type Fields = logrus.Fields

// New creates a logger writing to stderr. LOG_LEVEL picks the level
// (debug, info, warn, error; default info) and LOG_FORMAT=json switches
// to JSON output for log shippers.
func New() Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetLevel(levelFromEnv())
	return log
}

func levelFromEnv() logrus.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
