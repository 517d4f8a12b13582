// Package logging is the leveled std-log logger shared by the commands. It
// satisfies rxn.Logger.
package logging

import (
	"io"
	"log"
	"strings"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string log level (case-insensitive) into a LogLevel.
// Unknown levels fall back to info.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger provides leveled logging functionality
type Logger struct {
	level LogLevel
	out   *log.Logger
}

// NewLogger creates a logger writing through the std log package.
func NewLogger(level string) *Logger {
	return &Logger{level: ParseLogLevel(level)}
}

// NewLoggerTo creates a logger writing to w.
func NewLoggerTo(w io.Writer, level string) *Logger {
	return &Logger{level: ParseLogLevel(level), out: log.New(w, "", 0)}
}

// Level returns the configured level.
func (l *Logger) Level() LogLevel { return l.level }

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) printf(format string, v ...any) {
	if l.out != nil {
		l.out.Printf(format, v...)
		return
	}
	log.Printf(format, v...)
}

// Debugf logs a debug message
func (l *Logger) Debugf(format string, v ...any) {
	if l.Enabled(LogLevelDebug) {
		l.printf("[DEBUG] "+format, v...)
	}
}

// Infof logs an info message
func (l *Logger) Infof(format string, v ...any) {
	if l.Enabled(LogLevelInfo) {
		l.printf("[INFO] "+format, v...)
	}
}

// Warnf logs a warning message
func (l *Logger) Warnf(format string, v ...any) {
	if l.Enabled(LogLevelWarn) {
		l.printf("[WARN] "+format, v...)
	}
}

// Errorf logs an error message
func (l *Logger) Errorf(format string, v ...any) {
	if l.Enabled(LogLevelError) {
		l.printf("[ERROR] "+format, v...)
	}
}

// Fatalf logs an error message and exits
func (l *Logger) Fatalf(format string, v ...any) {
	if l.out != nil {
		l.out.Fatalf("[FATAL] "+format, v...)
	}
	log.Fatalf("[FATAL] "+format, v...)
}
