package config

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// NewLogger builds the process logger: coloured text in development, JSON
// in production, and a size-rotated JSON file when log.file is set.
func NewLogger(cfg *Config, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if cfg.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.Log.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", cfg.Log.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
