// Package logging provides the structured logger used across the submission
// manager, the plug-in registry, and both background workers.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with a fixed "component" field.
type Logger struct {
	*logrus.Logger
	component string
}

// New creates a Logger for the given component ("manager", "update-worker",
// "purge-worker", ...) at the given level ("debug", "info", "warn", "error")
// in the given format ("json" or "text").
func New(component, level, format string) *Logger {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	if format == "text" {
		l.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}
	l.SetOutput(os.Stdout)

	return &Logger{Logger: l, component: component}
}

// NewFromEnv builds a Logger using LOG_LEVEL/LOG_FORMAT, defaulting to
// info/json when unset.
func NewFromEnv(component string) *Logger {
	level := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if level == "" {
		level = "info"
	}
	format := strings.TrimSpace(os.Getenv("LOG_FORMAT"))
	if format == "" {
		format = "json"
	}
	return New(component, level, format)
}

// WithJob returns an entry pre-populated with the job_id field, the common
// case for manager and worker log lines.
func (l *Logger) WithJob(jobID string) *logrus.Entry {
	return l.WithField("component", l.component).WithField("job_id", jobID)
}

// Entry returns a bare entry tagged with this logger's component.
func (l *Logger) Entry() *logrus.Entry {
	return l.WithField("component", l.component)
}
