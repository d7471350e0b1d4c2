package logger

import (
	"os"

	"teleclinic-service/internal/app/config"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger is the bootstrap logger used before the zap logger is up
// and by driver constructors.
func NewLogrusLogger(internalConfig *config.InternalConfig) *logrus.Logger {
	log := logrus.New()
	switch internalConfig.App.Env {
	case "production":
		log.SetFormatter(&logrus.JSONFormatter{})
		file, err := os.OpenFile("bootstrap.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(file)
		} else {
			log.Info("Failed to log to file, using default stderr")
		}
	default:
		log.SetFormatter(&logrus.TextFormatter{})
	}
	return log
}
