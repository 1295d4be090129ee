// Package log provides the process-wide category logger.
//
// Components log through package-level functions tagged with a Category so
// log lines can be filtered by subsystem. The backing handlers are wired
// once at startup by Init: a text file handler at the configured level plus
// an optional console handler that only passes errors. Before Init (and in
// tests) everything is discarded.
//
// The catalog store does not use this package directly; it receives a
// *slog.Logger so it stays free of global state. Logger exposes the shared
// logger for that injection.
package log

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatStore  Category = "store"
	CatAudit  Category = "audit"
	CatUI     Category = "ui"
	CatCLI    Category = "cli"
	CatConfig Category = "config"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.DiscardHandler)
	logFile *os.File
)

// Options configures the process logger.
type Options struct {
	// File receives all lines at Level and above. Empty disables the file
	// handler.
	File string

	// Level is the minimum level for the file handler.
	Level slog.Level

	// Console additionally mirrors error lines to stderr.
	Console bool
}

// Init wires the process logger. Calling it again replaces the handlers.
func Init(opts Options) error {
	var handlers []slog.Handler

	var f *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
			return err
		}
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	}
	if opts.Console {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f

	switch len(handlers) {
	case 0:
		logger = slog.New(slog.DiscardHandler)
	case 1:
		logger = slog.New(handlers[0])
	default:
		logger = slog.New(multiHandler(handlers))
	}
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.DiscardHandler)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logger returns the shared logger for injection into components that take
// a *slog.Logger instead of calling this package.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug line for the given category.
func Debug(cat Category, msg string, args ...any) {
	Logger().Debug(msg, withCat(cat, args)...)
}

// Info logs an info line for the given category.
func Info(cat Category, msg string, args ...any) {
	Logger().Info(msg, withCat(cat, args)...)
}

// Warn logs a warning line for the given category.
func Warn(cat Category, msg string, args ...any) {
	Logger().Warn(msg, withCat(cat, args)...)
}

// Error logs an error line for the given category.
func Error(cat Category, msg string, args ...any) {
	Logger().Error(msg, withCat(cat, args)...)
}

// ErrorErr logs an error line with the error attached as an attribute.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	Error(cat, msg, append([]any{"error", err}, args...)...)
}

func withCat(cat Category, args []any) []any {
	return append([]any{"cat", string(cat)}, args...)
}

// multiHandler fans a record out to every handler that accepts its level.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}
