// Package logging builds the application logger and carries it through request contexts.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
	"gorm.io/gorm/logger"
)

// New creates a [log.Logger] writing to w with timestamps enabled.
//
// The writer defaults to [os.Stderr]; an unknown level falls back to info.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel converts a configured level name into a [log.Level].
func ParseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// GormLevel derives the GORM logger level from the application level.
func GormLevel(level string) logger.LogLevel {
	switch ParseLevel(level) {
	case log.DebugLevel:
		return logger.Info
	case log.InfoLevel, log.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}

// FromContext returns the request logger stored by the request logging middleware,
// or the package default logger.
func FromContext(c *gin.Context) *log.Logger {
	if v, ok := c.Get(constants.ContextKeyLogger); ok {
		if l, ok := v.(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}
