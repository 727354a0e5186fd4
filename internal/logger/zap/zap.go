package zap

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{
		Logger: logger.WithOptions(zap.AddCallerSkip(2)),
	}
}

// Level returns backend level in the form accepted by logger.NewWithLevel.
// Zap has no trace level, trace messages go to debug.
func (l *Logger) Level() string {
	lvl := l.Logger.Level()
	if lvl == zapcore.InvalidLevel {
		return "disabled"
	}
	return lvl.String()
}

func (l *Logger) Error(msg string, fields []any) {
	l.Logger.Error(msg, zapFields(fields)...)
}

func (l *Logger) Info(msg string, fields []any) {
	l.Logger.Info(msg, zapFields(fields)...)
}

func (l *Logger) Debug(msg string, fields []any) {
	l.Logger.Debug(msg, zapFields(fields)...)
}

func (l *Logger) Trace(msg string, fields []any) {
	l.Logger.Debug(msg, zapFields(fields)...)
}

func zapFields(fields []any) []zap.Field {
	zfs := make([]zap.Field, 0, len(fields)/2)

	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch val := fields[i+1].(type) {
		case error:
			zfs = append(zfs, zap.NamedError(key, val))
		case time.Duration:
			zfs = append(zfs, zap.Duration(key, val))
		case fmt.Stringer:
			zfs = append(zfs, zap.Stringer(key, val))
		default:
			zfs = append(zfs, zap.Any(key, val))
		}
	}

	return zfs
}
