// Package logging provides the process-wide logger for GENGAR.
// The logger is constructed once at startup, handed to each component,
// and closed at shutdown; there is no package-level global.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Log levels, lowest to highest.
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes leveled log lines to stdout and, when a log directory is
// configured, to a dated file inside it.
type Logger struct {
	logger *log.Logger
	file   *os.File
	level  int
}

// ParseLevel maps a config-level string to a numeric level.
// Unknown values default to info.
func ParseLevel(s string) int {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// New creates a Logger at the given level. If dir is non-empty the logger
// also appends to dir/gengar_YYYYMMDD.log, creating the directory as needed.
func New(dir string, level int) (*Logger, error) {
	var w io.Writer = os.Stdout
	var f *os.File
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure log dir: %w", err)
		}
		path := filepath.Join(dir, fmt.Sprintf("gengar_%s.log", time.Now().Format("20060102")))
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
	}
	return &Logger{
		logger: log.New(w, "", log.LstdFlags),
		file:   f,
		level:  level,
	}, nil
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0), level: LevelError + 1}
}

func (l *Logger) logf(level int, tag, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	l.logger.Printf(tag+" "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, "DEBUG", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, "INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, "WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, "ERROR", format, args...) }

// Close flushes and releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
