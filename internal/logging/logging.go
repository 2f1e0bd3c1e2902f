// Package logging wraps charmbracelet/log for the extension and its
// development host. Output always goes to stderr (or a test buffer): stdout
// belongs to whoever speaks the stdio protocol.
package logging

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/container-use/container-use-mcp/internal/branding"
)

// Logger is a leveled, key/value logger.
type Logger struct {
	logger *log.Logger
}

var (
	defaultLogger *Logger
	mu            sync.Mutex
)

// Default returns the process-wide logger, creating it on first use.
func Default() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(os.Stderr, debugFromEnv())
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

// New creates a logger writing to w. Debug lowers the level from warn to
// debug and adds caller information.
func New(w io.Writer, debug bool) *Logger {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          branding.CLIName(),
	}
	if debug {
		opts.ReportCaller = true
		opts.TimeFormat = time.Kitchen
	}

	l := log.NewWithOptions(w, opts)
	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.WarnLevel)
	}
	return &Logger{logger: l}
}

// NewTestLogger creates a debug logger that writes to a buffer without
// timestamps, for assertions in tests.
func NewTestLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Prefix: "test"})
	l.SetLevel(log.DebugLevel)
	return &Logger{logger: l}, &buf
}

func debugFromEnv() bool {
	return os.Getenv("DEBUG") != "" || os.Getenv(branding.EnvVar("debug")) != ""
}

// With returns a child logger that always includes keyvals.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{logger: l.logger.With(keyvals...)}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.logger.Debug(msg, keyvals...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.logger.Info(msg, keyvals...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.logger.Warn(msg, keyvals...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.logger.Error(msg, keyvals...)
}

// Debug logs through the default logger.
func Debug(msg string, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Warn logs through the default logger.
func Warn(msg string, keyvals ...interface{}) {
	Default().Warn(msg, keyvals...)
}

// Error logs through the default logger.
func Error(msg string, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}
