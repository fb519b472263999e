package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Packages that log through the logrus
// package functions write to the same instance.
var Log = logrus.StandardLogger()

// InitLogger sets JSON output on stdout at the given level. An unknown level falls back to info.
func InitLogger(level string) {
	Log.Out = os.Stdout
	Log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
