// Package log configures the process-wide structured logger.
//
// The terminal belongs to the TUI, so log output goes to a file (or nowhere
// when no path is configured). JSON lines keep the file greppable and feed
// the in-app log viewer.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
	closer io.Closer
)

// Setup initializes the global logger writing to the file at path. An empty
// path discards all output. Invalid levels fall back to INFO.
//
// The returned error covers file creation only; Setup always leaves a usable
// logger behind, even on failure.
func Setup(level, path string) error {
	var setupErr error
	once.Do(func() {
		opts := &slog.HandlerOptions{Level: parseLevel(level)}

		var w io.Writer = io.Discard
		if path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				setupErr = fmt.Errorf("create log directory: %w", err)
			} else if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
				setupErr = fmt.Errorf("open log file: %w", err)
			} else {
				w = f
				closer = f
			}
		}

		logger = slog.New(slog.NewJSONHandler(w, opts))
		slog.SetDefault(logger)
	})
	return setupErr
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the configured logger, or a discarding one if Setup hasn't
// been called.
func Get() *slog.Logger {
	if logger == nil {
		_ = Setup("INFO", "")
	}
	return logger
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// Close flushes and releases the log file, if one was opened.
func Close() error {
	if closer == nil {
		return nil
	}
	return closer.Close()
}
