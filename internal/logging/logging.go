// Package logging builds the application logger. The terminal belongs to the
// game while it runs, so log output goes to a rotating file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Prefix is attached to every log line.
const Prefix = "tetris"

// Options configures New.
type Options struct {
	Level string // debug, info, warn or error; empty means info
	File  string // Log file path; empty disables logging
}

// Logger wraps a charmbracelet logger together with the file it writes to.
type Logger struct {
	*log.Logger
	closer io.Closer
}

// New creates a logger. With no file configured, the logger discards
// everything.
func New(opts Options) (*Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer
	)
	if opts.File != "" {
		path, err := expandHome(opts.File)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: cannot create directory for %s: %w", path, err)
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		w, closer = lj, lj
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
		Level:           level,
	})
	return &Logger{Logger: logger, closer: closer}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.NewWithOptions(io.Discard, log.Options{Prefix: Prefix})}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
