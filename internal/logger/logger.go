package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. Production gets JSON lines,
// development gets human readable text with full timestamps.
func Setup(isProd bool) {
	logrus.SetOutput(os.Stdout)
	if isProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}
