package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// LogLevel represents different logging levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns string representation of log level.
func (ll LogLevel) String() string {
	switch ll {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// DefaultLogger is a leveled, component-tagged logger used by the CLI and
// daemon adapters. The core engine never logs. fields holds key/value pairs
// a derived logger (see With) carries into every call it makes, so a
// per-request correlation id doesn't need to be repeated at every log site.
type DefaultLogger struct {
	component string
	level     LogLevel
	logger    *log.Logger
	fields    []interface{}
}

// NewDefaultLogger creates a new default logger.
func NewDefaultLogger(component, levelStr string) *DefaultLogger {
	return &DefaultLogger{
		component: component,
		level:     parseLogLevel(levelStr),
		logger:    log.New(os.Stdout, "", 0),
	}
}

// With returns a derived logger that prepends fields to every message it
// logs, leaving the receiver unchanged. The daemon uses this to carry a
// request's correlation id across every line that one request produces
// without passing it explicitly to each Info/Error call.
func (dl *DefaultLogger) With(fields ...interface{}) *DefaultLogger {
	merged := make([]interface{}, 0, len(dl.fields)+len(fields))
	merged = append(merged, dl.fields...)
	merged = append(merged, fields...)
	return &DefaultLogger{component: dl.component, level: dl.level, logger: dl.logger, fields: merged}
}

func parseLogLevel(levelStr string) LogLevel {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "FATAL":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func (dl *DefaultLogger) formatMessage(level LogLevel, msg string, fields ...interface{}) string {
	timestamp := time.Now().Format("2006-01-02T15:04:05.000Z07:00")

	all := fields
	if len(dl.fields) > 0 {
		all = make([]interface{}, 0, len(dl.fields)+len(fields))
		all = append(all, dl.fields...)
		all = append(all, fields...)
	}

	var fieldStr strings.Builder
	if len(all) > 0 {
		fieldStr.WriteString(" |")
		for i := 0; i < len(all); i += 2 {
			if i+1 < len(all) {
				fieldStr.WriteString(fmt.Sprintf(" %s=%v", all[i], all[i+1]))
			}
		}
	}

	return fmt.Sprintf("[%s] %s [%s] %s%s",
		timestamp, level.String(), dl.component, msg, fieldStr.String())
}

func (dl *DefaultLogger) shouldLog(level LogLevel) bool {
	return level >= dl.level
}

// Debug logs a debug message.
func (dl *DefaultLogger) Debug(msg string, fields ...interface{}) {
	if dl.shouldLog(LevelDebug) {
		dl.logger.Println(dl.formatMessage(LevelDebug, msg, fields...))
	}
}

// Info logs an info message.
func (dl *DefaultLogger) Info(msg string, fields ...interface{}) {
	if dl.shouldLog(LevelInfo) {
		dl.logger.Println(dl.formatMessage(LevelInfo, msg, fields...))
	}
}

// Warn logs a warning message.
func (dl *DefaultLogger) Warn(msg string, fields ...interface{}) {
	if dl.shouldLog(LevelWarn) {
		dl.logger.Println(dl.formatMessage(LevelWarn, msg, fields...))
	}
}

// Error logs an error message.
func (dl *DefaultLogger) Error(msg string, fields ...interface{}) {
	if dl.shouldLog(LevelError) {
		dl.logger.Println(dl.formatMessage(LevelError, msg, fields...))
	}
}

// Fatal logs a fatal message and exits the process.
func (dl *DefaultLogger) Fatal(msg string, fields ...interface{}) {
	dl.logger.Println(dl.formatMessage(LevelFatal, msg, fields...))
	os.Exit(1)
}
