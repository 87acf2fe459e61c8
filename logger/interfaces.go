package logger

import (
	"go.uber.org/zap"
)

// Logger represents the logging interface
type Logger interface {
	// Logging levels
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Formatted logging
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})

	// Context and enrichment
	With(fields ...Field) Logger
	Named(name string) Logger

	// Utilities
	Sync() error
}

// Field represents a structured log field
type Field = zap.Field

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Name    string `yaml:"name"`
	Pretty  bool   `yaml:"pretty"`
}

// DefaultLoggingConfig returns the logging defaults used by the server builder
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Enabled: true,
		Level:   "info",
		Name:    "strut",
		Pretty:  false,
	}
}
