package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a structured slog.Logger with the given level writing JSON to w.
func NewLogger(level slog.Leveler, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// logLevel maps the debug switch to a slog level.
func logLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// openLogOutput returns the log destination: the configured file, or fallback.
// The returned close func is never nil.
func openLogOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fallback, func() error { return nil }, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, f.Close, nil
}
