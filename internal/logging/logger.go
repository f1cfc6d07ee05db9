// Package logging provides structured file logging for photogrip.
//
// The TUI owns the terminal, so everything goes to a JSON log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes and closes the underlying file.
	Shutdown() error
}

// Config controls logger construction.
type Config struct {
	Enabled bool
	Level   string
	File    string
}

type fileLogger struct {
	clogger *clog.Logger
	closer  io.Closer
	path    string
}

// Open creates the log directory, opens cfg.File for appending and returns a
// JSON logger writing to it. A disabled config yields a no-op logger.
func Open(cfg Config) (Logger, error) {
	if !cfg.Enabled || cfg.File == "" {
		return Nop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, cfg.Level).(*fileLogger)
	l.closer = f
	l.path = cfg.File
	return l, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level string) Logger {
	c := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           ParseLevel(level),
	})
	c.SetFormatter(clog.JSONFormatter)
	c = c.With("pid", os.Getpid())
	return &fileLogger{clogger: c}
}

// ParseLevel converts a level name to a clog.Level, defaulting to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *fileLogger) Debug(msg string, args ...any) { l.clogger.Debug(msg, redact(args)...) }
func (l *fileLogger) Info(msg string, args ...any)  { l.clogger.Info(msg, redact(args)...) }
func (l *fileLogger) Warn(msg string, args ...any)  { l.clogger.Warn(msg, redact(args)...) }
func (l *fileLogger) Error(msg string, args ...any) { l.clogger.Error(msg, redact(args)...) }

func (l *fileLogger) With(args ...any) Logger {
	return &fileLogger{clogger: l.clogger.With(redact(args)...), closer: l.closer, path: l.path}
}

func (l *fileLogger) Shutdown() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

type nopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }
func (nopLogger) Shutdown() error      { return nil }

var (
	globalMu sync.RWMutex
	global   Logger = nopLogger{}
)

// SetGlobal installs l as the package level logger.
func SetGlobal(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// GetGlobal returns the package level logger; never nil.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// CurrentLogFile returns the path of the global file logger, if any.
func CurrentLogFile() string {
	if fl, ok := GetGlobal().(*fileLogger); ok {
		return fl.path
	}
	return ""
}
