package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. Production gets JSON lines with
// the caller attached; everything else gets the text formatter.
func NewLogger(level string, production bool) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stdout

	if production {
		logger.SetReportCaller(true)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				return "", filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
