package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with the field conventions used across the engine.
type Logger struct {
	*logrus.Logger
}

// New builds a logger for the given level and environment. Development gets
// human-readable text output; everything else logs JSON.
func New(level, environment string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if environment == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Logger{Logger: log}
}

// WithComponent tags entries with the engine component that produced them.
func (l *Logger) WithComponent(name string) *logrus.Entry {
	return l.WithField("component", name)
}

// WithPlayer tags entries with the batter they concern.
func (l *Logger) WithPlayer(playerID string) *logrus.Entry {
	return l.WithField("player_id", playerID)
}
