package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

func SetupLogging(log *logrus.Logger, app *App) error {
	level := logrus.InfoLevel
	if app.Development {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if app.Development {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if app.LogFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   app.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Level:      level,
		Formatter: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		},
	})
	if err != nil {
		return fmt.Errorf("unable to create log file hook: %w", err)
	}
	log.AddHook(hook)
	return nil
}
