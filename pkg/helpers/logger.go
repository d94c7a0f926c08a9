package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a Logrus logger tuned per environment: human-readable
// debug output in development, JSON at info level everywhere else so log
// shippers can parse it.
func NewLogger(appName, env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	switch env {
	case "development":
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}
	log.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger ready")
	return log
}
