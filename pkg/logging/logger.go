package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// ParseLevel maps a case-insensitive level name to a LogLevel.
// Unknown names yield an error so that command line typos are not silently ignored.
func ParseLevel(name string) (LogLevel, error) {
	switch LogLevel(strings.ToUpper(strings.TrimSpace(name))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn, "WARNING":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level %q", name)
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string // Empty for stderr, or file path
	Format     string // "json" or "text"
}

// global is the process-wide logger. sink is non-nil only when Init opened
// a log file.
var global struct {
	sync.Mutex
	logger *slog.Logger
	sink   io.Closer
}

// Init installs the process-wide logger. It fails if a logger is already
// installed; call Close first to replace it.
func Init(config Config) error {
	global.Lock()
	defer global.Unlock()

	if global.logger != nil {
		return fmt.Errorf("logger already initialized; call Close() first to reinitialize")
	}

	var (
		w    io.Writer = os.Stderr
		sink io.Closer
	)
	if config.OutputPath != "" {
		f, err := openLogFile(config.OutputPath)
		if err != nil {
			return err
		}
		w, sink = f, f
	}

	opts := &slog.HandlerOptions{Level: config.Level.slogLevel()}
	switch config.Format {
	case "json":
		global.logger = slog.New(slog.NewJSONHandler(w, opts))
	case "text", "":
		global.logger = slog.New(slog.NewTextHandler(w, opts))
	default:
		if sink != nil {
			sink.Close()
		}
		return fmt.Errorf("unknown log format %q", config.Format)
	}
	global.sink = sink
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// Close flushes and releases the log file, if any, and uninstalls the
// logger. It is safe to call more than once.
func Close() error {
	global.Lock()
	defer global.Unlock()

	var err error
	if global.sink != nil {
		err = global.sink.Close()
	}
	global.logger, global.sink = nil, nil
	return err
}

var fallback = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// GetLogger returns the process-wide logger, or an INFO-level text logger on
// stderr while none is installed.
func GetLogger() *slog.Logger {
	global.Lock()
	defer global.Unlock()

	if global.logger == nil {
		return fallback
	}
	return global.logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
