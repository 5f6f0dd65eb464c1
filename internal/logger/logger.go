// Package logger provides the pipeline's diagnostic channel: leveled,
// printf-style logging on stderr. Stdout is reserved for the single JSON
// result payload, so nothing in this package ever writes there.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents a logging level.
type Level int

const (
	// DebugLevel logs per-stage detail, disabled by default.
	DebugLevel Level = iota
	// InfoLevel is the default priority for run progress messages.
	InfoLevel
	// WarnLevel flags recoverable oddities such as dropped records.
	WarnLevel
	// ErrorLevel reports failures that abort the run.
	ErrorLevel
)

var defaultLogger = &Logger{level: InfoLevel, logger: log.New(os.Stderr, "", log.LstdFlags)}

// Logger filters messages by level before writing them.
type Logger struct {
	level  Level
	logger *log.Logger
}

// Init configures the default logger from the config's level string. Unknown
// levels fall back to info.
func Init(level string) {
	l := InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		l = DebugLevel
	case "warn":
		l = WarnLevel
	case "error":
		l = ErrorLevel
	}
	defaultLogger = &Logger{
		level:  l,
		logger: log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// SetOutput redirects the default logger, used by tests to capture or
// silence diagnostics.
func SetOutput(w io.Writer) {
	defaultLogger.logger.SetOutput(w)
}

func emit(min Level, tag, format string, args []interface{}) {
	if defaultLogger.level > min {
		return
	}
	_ = defaultLogger.logger.Output(3, tag+fmt.Sprintf(format, args...))
}

// Debug logs a message at DebugLevel.
func Debug(format string, args ...interface{}) { emit(DebugLevel, "[DEBUG] ", format, args) }

// Info logs a message at InfoLevel.
func Info(format string, args ...interface{}) { emit(InfoLevel, "[INFO] ", format, args) }

// Warn logs a message at WarnLevel.
func Warn(format string, args ...interface{}) { emit(WarnLevel, "[WARN] ", format, args) }

// Error logs a message at ErrorLevel.
func Error(format string, args ...interface{}) { emit(ErrorLevel, "[ERROR] ", format, args) }
