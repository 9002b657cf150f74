// Package logger configures the process-wide logrus logger.
package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure builds a logger from the logging config block. Output is
// "stdout", "stderr" or a file path; file output rotates daily-ish via
// lumberjack with maxAge days of retention.
func Configure(level, format, output string, maxAge int) (*logrus.Logger, error) {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch output {
	case "", "stdout":
		log.SetOutput(os.Stdout)
	case "stderr":
		log.SetOutput(os.Stderr)
	default:
		if maxAge <= 0 {
			maxAge = 7
		}
		log.SetOutput(&lumberjack.Logger{
			Filename:   output,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     maxAge,
			Compress:   true,
		})
	}
	return log, nil
}

// Component returns an entry tagged with the subsystem name.
func Component(log *logrus.Logger, name string) *logrus.Entry {
	return log.WithField("component", name)
}
