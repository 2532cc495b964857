// Package logging builds the process logger. Records go to stderr and, when
// configured, are appended to a log file as well. Stdout is never used.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ggoodman/mycommandmcp/internal/logctx"
)

// TimeFormat is the timestamp layout of every record.
const TimeFormat = "2006-01-02 15:04:05"

// Options controls where and how much is logged.
type Options struct {
	// LogFile, when set, is opened for appending (created if missing).
	LogFile string
	Level   slog.Level
	// Stderr overrides os.Stderr, mainly for tests.
	Stderr io.Writer
}

// Logger is the process logger plus the handles needed to adjust and close it.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
	file  *os.File
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New builds a Logger from opts.
func New(opts Options) (*Logger, error) {
	var w io.Writer = os.Stderr
	if opts.Stderr != nil {
		w = opts.Stderr
	}

	var file *os.File
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %q: %w", opts.LogFile, err)
		}
		file = f
		w = io.MultiWriter(w, f)
	}

	level := new(slog.LevelVar)
	level.Set(opts.Level)

	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(TimeFormat))
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(logctx.Handler{Handler: h}),
		Level:  level,
		file:   file,
	}, nil
}

// ParseLevel accepts debug, info, warn or error (any case). The empty string
// is info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
