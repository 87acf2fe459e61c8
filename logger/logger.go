package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger implements the Logger interface using zap
type logger struct {
	zap *zap.Logger
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config LoggingConfig) Logger {
	if !config.Enabled {
		return NewNopLogger()
	}

	level := parseLevel(config.Level)

	var zapLogger *zap.Logger
	if config.Pretty {
		zapLogger = newConsoleLogger(level)
	} else {
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		zapLogger, _ = zapConfig.Build()
	}

	if config.Name != "" {
		zapLogger = zapLogger.Named(config.Name)
	}

	return &logger{zap: zapLogger}
}

// NewDevelopmentLogger creates a console logger at debug level
func NewDevelopmentLogger() Logger {
	return &logger{zap: newConsoleLogger(zapcore.DebugLevel)}
}

// NewProductionLogger creates a JSON logger at info level
func NewProductionLogger() Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zapLogger, _ := config.Build()
	return &logger{zap: zapLogger}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() Logger {
	return &logger{zap: zap.NewNop()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// newConsoleLogger creates a human-readable console logger
func newConsoleLogger(level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core, zap.AddCaller())
}

func (l *logger) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *logger) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *logger) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *logger) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }

func (l *logger) Debugf(template string, args ...interface{}) { l.zap.Sugar().Debugf(template, args...) }
func (l *logger) Infof(template string, args ...interface{})  { l.zap.Sugar().Infof(template, args...) }
func (l *logger) Warnf(template string, args ...interface{})  { l.zap.Sugar().Warnf(template, args...) }
func (l *logger) Errorf(template string, args ...interface{}) { l.zap.Sugar().Errorf(template, args...) }

func (l *logger) With(fields ...Field) Logger {
	return &logger{zap: l.zap.With(fields...)}
}

func (l *logger) Named(name string) Logger {
	return &logger{zap: l.zap.Named(name)}
}

func (l *logger) Sync() error {
	return l.zap.Sync()
}
