// Package logger provides configurable, filterable logging on top of log/slog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
	logOutput     io.Writer = io.Discard
	logFile       *os.File
)

// Init configures the package logger from cfg. Output goes to cfg.LogFilePath,
// "-" means stderr and an empty path discards everything.
// Calling Init again replaces the previous configuration.
func Init(cfg Config) error {
	cfg.process()

	var out io.Writer
	var file *os.File
	switch cfg.LogFilePath {
	case "":
		out = io.Discard
	case "-":
		out = os.Stderr
	default:
		if dir := filepath.Dir(cfg.LogFilePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory '%s': %w", dir, err)
			}
		}
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file '%s': %w", cfg.LogFilePath, err)
		}
		out, file = f, f
	}

	install(cfg, out)

	mu.Lock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	mu.Unlock()

	Debugf("Logger initialized (level=%s, output=%q)", cfg.level, cfg.LogFilePath)
	return nil
}

// InitWriter configures the logger to write to w. Used by tests and by callers
// that already own an output stream.
func InitWriter(cfg Config, w io.Writer) {
	cfg.process()
	if w == nil {
		w = io.Discard
	}
	install(cfg, w)
}

func install(cfg Config, out io.Writer) {
	logLevel.Set(cfg.level)
	opts := slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	base := slog.NewTextHandler(out, &opts)
	processed := cfg

	mu.Lock()
	logOutput = out
	defaultLogger = slog.New(newFilteringHandler(base, &processed))
	mu.Unlock()
}

// Close releases the log file opened by Init, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logOutput = io.Discard
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}

func current() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: logLevel}))
	}
	return defaultLogger
}

// logAtLevel builds a record carrying the caller of the exported wrapper so the
// filtering handler can see the originating package and file.
func logAtLevel(level slog.Level, tag string, format string, args ...interface{}) {
	l := current()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// runtime.Callers, logAtLevel, the exported wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, "", format, args...)
}

// DebugTagf logs a debug message carrying a filter tag.
func DebugTagf(tag, format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, tag, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, "", format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, "", format, args...)
	_ = Close()
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	return current()
}
