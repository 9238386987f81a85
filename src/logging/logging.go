package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logrus logger writing text to stderr at the named
// level (DEBUG, INFO, WARN, ERROR). Unknown levels fall back to INFO.
func NewLogger(levelString string) *logrus.Logger {
	return newLogger(os.Stderr, levelString)
}

func newLogger(out io.Writer, levelString string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	logger.SetLevel(parseLevel(levelString))
	return logger
}

func parseLevel(levelString string) logrus.Level {
	switch strings.ToUpper(strings.TrimSpace(levelString)) {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARN", "WARNING":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
