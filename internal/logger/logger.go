// Package logger owns the process-wide structured logger. The terminal is
// occupied by the UI, so all output goes to a file.
package logger

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
	mu       sync.Mutex
	base     = slog.New(slog.NewTextHandler(io.Discard, nil))
	levelVar = new(slog.LevelVar)
	logFile  *os.File
)

// ParseLevel maps a config level name onto a slog level. Unknown names map
// to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultPath returns the log file used when none is configured.
func DefaultPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "gitpane", "gitpane.log")
	}
	return filepath.Join(os.TempDir(), "gitpane.log")
}

// Init opens path for appending and routes all loggers to it. An empty path
// selects DefaultPath. Calling Init again replaces the previous file.
func Init(path string, level slog.Level) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	levelVar.Set(level)
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("logger initialized", "path", path, "level", level.String())
	return nil
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// Component returns a logger tagged with the component name.
//
//	log := logger.Component("asyncgit")
//	log.Debug("diff requested", "path", p)
func Component(name string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With(slog.String("component", name))
}

// Close flushes and closes the log file. Loggers handed out earlier keep
// working but write nowhere.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	base = slog.New(slog.NewTextHandler(io.Discard, nil))
}
