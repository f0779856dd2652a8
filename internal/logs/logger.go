package logs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	Logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
	mu      sync.Mutex
)

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Initialize points the logger at debug.log inside logDir. The terminal
// belongs to the TUI, so interactive runs never log to stdout or stderr.
func Initialize(logDir string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		logDir = "."
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	setLogger(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level(verbose)}))
	Logger.Debug("Logger initialized", "path", logPath)
	return nil
}

// InitializeStderr logs to stderr. Used by the server, which has no TUI.
func InitializeStderr(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	setLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level(verbose)}))
}

func setLogger(h slog.Handler) {
	Logger = slog.New(h).With("app", "scribble")
	slog.SetDefault(Logger)
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
