// Package logger owns the log backend shared by every subsystem.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/decred/slog"
)

type Logging struct {
	backend *slog.Backend
	level   slog.Level
	closer  io.Closer
	loggers map[string]slog.Logger
}

// New creates subsystem loggers writing to w at the named level.
func New(w io.Writer, level string) (*Logging, error) {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return &Logging{
		backend: slog.NewBackend(w),
		level:   lvl,
		loggers: make(map[string]slog.Logger),
	}, nil
}

// OpenFile logs to path, appending to an existing file.
func OpenFile(path, level string) (*Logging, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, err
	}
	l.closer = f
	return l, nil
}

// Logger returns the logger of a subsystem, creating it on first use.
func (l *Logging) Logger(tag string) slog.Logger {
	if lg, ok := l.loggers[tag]; ok {
		return lg
	}
	lg := l.backend.Logger(tag)
	lg.SetLevel(l.level)
	l.loggers[tag] = lg
	return lg
}

// SetLevel changes the level of every subsystem.
func (l *Logging) SetLevel(level string) error {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("invalid log level %q", level)
	}
	l.level = lvl
	for _, lg := range l.loggers {
		lg.SetLevel(lvl)
	}
	return nil
}

func (l *Logging) Subsystems() []string {
	tags := make([]string, 0, len(l.loggers))
	for tag := range l.loggers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (l *Logging) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
