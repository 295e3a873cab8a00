package logger

import (
	"os"
	"strings"

	"pdf-summarizer/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger implements the domain.Logger interface on top of zap
type AppLogger struct {
	logger *zap.SugaredLogger
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(levelStr string) *AppLogger {
	return NewLoggerTo(levelStr, os.Stdout)
}

// NewLoggerTo creates a console logger writing to w.
func NewLoggerTo(levelStr string, w zapcore.WriteSyncer) *AppLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(w),
		zap.NewAtomicLevelAt(parseLogLevel(levelStr)),
	)

	return NewLoggerWithCore(core)
}

// NewLoggerWithCore wraps an existing zap core
func NewLoggerWithCore(core zapcore.Core) *AppLogger {
	return &AppLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
	}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.logger.Infow(msg, fields...)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	allFields := append([]interface{}{"error", err}, fields...)
	l.logger.Errorw(msg, allFields...)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.logger.Debugw(msg, fields...)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.logger.Warnw(msg, fields...)
}

// Sync flushes buffered entries
func (l *AppLogger) Sync() error {
	return l.logger.Sync()
}

// parseLogLevel converts string log level to a zap level
func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

var _ domain.Logger = (*AppLogger)(nil)
