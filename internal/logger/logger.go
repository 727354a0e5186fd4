package logger

import "errors"

const (
	levelTrace = iota - 2
	levelDebug
	levelInfo
	levelError
	levelDisabled
)

var (
	ErrInvalidLevel = errors.New("invalid log level")
)

type (
	// External is a logging backend. Fields are key-value pairs.
	External interface {
		Error(string, []any)
		Info(string, []any)
		Debug(string, []any)
		Trace(string, []any)
	}

	// Logger is a level-gated facade over External backend.
	// Messages below configured level are discarded before
	// fields are passed to the backend. Zero Logger discards everything.
	Logger struct {
		ext External
		lvl int
	}
)

func parseLevel(level string) (int, error) {
	switch level {
	case "trace":
		return levelTrace, nil
	case "debug":
		return levelDebug, nil
	case "info":
		return levelInfo, nil
	case "warn", "error":
		// there is no warning level, warnings are suppressed along with info
		return levelError, nil
	case "dpanic", "panic", "fatal", "disabled":
		return levelDisabled, nil
	default:
		return 0, ErrInvalidLevel
	}
}

// New creates logger with info level.
func New(ext External) Logger {
	return Logger{ext: ext}
}

// NewWithLevel creates logger with level: trace|debug|info|warn|error|disabled.
func NewWithLevel(ext External, level string) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return Logger{}, err
	}

	l := New(ext)
	l.lvl = lvl

	return l, nil
}

func (l *Logger) Enabled(level string) bool {
	lvl, err := parseLevel(level)
	if err != nil {
		return false
	}
	return l.ext != nil && lvl < levelDisabled && l.lvl <= lvl
}

func (l *Logger) Trace(msg string, args ...any) {
	if l.ext == nil || l.lvl > levelTrace {
		return
	}

	l.ext.Trace(msg, args)
}

func (l *Logger) Debug(msg string, args ...any) {
	if l.ext == nil || l.lvl > levelDebug {
		return
	}

	l.ext.Debug(msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	if l.ext == nil || l.lvl > levelInfo {
		return
	}

	l.ext.Info(msg, args)
}

func (l *Logger) Error(msg string, args ...any) {
	if l.ext == nil || l.lvl > levelError {
		return
	}

	l.ext.Error(msg, args)
}

// DebugFunc evaluates f only if debug level is enabled.
func (l *Logger) DebugFunc(f func() (string, []any)) {
	if l.ext == nil || l.lvl > levelDebug {
		return
	}

	l.ext.Debug(f())
}

// InfoFunc evaluates f only if info level is enabled.
func (l *Logger) InfoFunc(f func() (string, []any)) {
	if l.ext == nil || l.lvl > levelInfo {
		return
	}

	l.ext.Info(f())
}
