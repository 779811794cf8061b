// Package logger provides structured JSON logging for the music-events aggregator.
//
// Source adapters never return upstream failures to their callers; the reason for an
// empty result is reported here instead. Each line is a JSON object with a timestamp,
// level, message, optional structured fields and an optional error string.
//
// Example usage:
//
//	log := logger.With(logger.Fields{"source": "ticketmaster"})
//	log.Warn("API key not configured", nil)
//
//	logger.Error("upstream request failed", logger.Fields{
//	    "url":    reqURL,
//	    "status": resp.StatusCode,
//	}, err)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if l == "WARNING" {
		l = LevelWarn
	}
	if _, ok := levelRank[l]; !ok {
		return "", fmt.Errorf("unknown log level: %q", s)
	}
	return l, nil
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes structured log lines. A Logger is safe for concurrent use;
// adapters running in parallel share one output.
type Logger struct {
	minLevel Level
	out      *output
	fields   Fields
}

type output struct {
	mu sync.Mutex
	w  io.Writer
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger with the specified minimum level writing to w.
// Messages below the minimum level are discarded.
func New(level Level, w io.Writer) *Logger {
	return &Logger{
		minLevel: level,
		out:      &output{w: w},
	}
}

// SetDefault replaces the logger used by the package-level functions.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// With returns a child logger that adds fields to every entry.
// Per-call fields override inherited ones with the same key.
func (l *Logger) With(fields Fields) *Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{minLevel: l.minLevel, out: l.out, fields: merged}
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.shouldLog(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    l.merge(fields),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	if marshalErr != nil {
		fmt.Fprintf(l.out.w, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.out.w, string(data))
}

func (l *Logger) merge(fields Fields) Fields {
	if len(l.fields) == 0 {
		return fields
	}
	if len(fields) == 0 {
		return l.fields
	}
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (l *Logger) shouldLog(level Level) bool {
	return levelRank[level] >= levelRank[l.minLevel]
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning. Used for degraded-but-handled conditions such as an
// upstream source returning nothing.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// With returns a child of the default logger.
func With(fields Fields) *Logger {
	return defaultLogger.With(fields)
}
