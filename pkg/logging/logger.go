// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package logging provides structured logging for the botsee CLI.
//
// Built on the standard library slog package with two destinations:
//
//   - stderr (default, text format, follows Unix CLI conventions)
//   - optional file logging under the user config directory
//
// Styled user-facing output goes through pkg/ux; this package is for
// diagnostics. The two never share a destination: ux writes to stdout,
// logging writes to stderr and files, so piped output stays clean.
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("analysis submitted", "analysis_uuid", id)
//	logger.Error("request failed", "error", err)
//
// # File Logging
//
//	logger, err := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    LogDir: "~/.botsee/logs",
//	})
//	defer logger.Close()
//
// # Security Considerations
//
// This package does not redact. Callers must not log credentials:
// log "key_present", never the key itself.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ----------------------------------------------------------------------------
// Levels
// ----------------------------------------------------------------------------

// Level is the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a string such as "debug" to a Level. Unknown values
// fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) toSlogLevel() slog.Level {
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

// ----------------------------------------------------------------------------
// Configuration
// ----------------------------------------------------------------------------

// Config controls logger construction. The zero value logs Info and
// above to stderr in text format.
type Config struct {
	// Level is the minimum severity emitted. Default LevelInfo.
	Level Level

	// LogDir enables file logging when set. The file is named
	// "botsee_{YYYY-MM-DD}.log" and always uses JSON format.
	// Supports ~ expansion for the home directory.
	LogDir string

	// JSON switches stderr output to JSON. File output is always
	// JSON regardless.
	JSON bool

	// Quiet suppresses stderr output. Only meaningful together
	// with LogDir.
	Quiet bool
}

// ----------------------------------------------------------------------------
// Logger
// ----------------------------------------------------------------------------

// Logger wraps slog with optional file output. Safe for concurrent use.
type Logger struct {
	slog *slog.Logger
	file *os.File
}

// Default returns a stderr-only logger at Info level. It never fails.
func Default() *Logger {
	l, _ := New(Config{})
	return l
}

// New builds a Logger from cfg. The returned error is non-nil only
// when file logging was requested and the file could not be opened;
// stderr-only configurations always succeed.
func New(cfg Config) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}

	var handlers []slog.Handler
	if !cfg.Quiet {
		if cfg.JSON {
			handlers = append(handlers, slog.NewJSONHandler(os.Stderr, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
		}
	}

	var file *os.File
	if cfg.LogDir != "" {
		dir, err := expandHome(cfg.LogDir)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		name := fmt.Sprintf("botsee_%s.log", time.Now().Format("2006-01-02"))
		file, err = os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, opts)
	case 1:
		handler = handlers[0]
	default:
		handler = fanoutHandler(handlers)
	}

	return &Logger{slog: slog.New(handler), file: file}, nil
}

// Slog exposes the underlying slog.Logger for packages that take one.
func (l *Logger) Slog() *slog.Logger { return l.slog }

// Close flushes and closes the log file if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// fanoutHandler duplicates records to every wrapped handler. Used when
// both stderr and file logging are enabled with different formats.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range h {
		if sub.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	for _, sub := range h {
		if !sub.Enabled(ctx, rec.Level) {
			continue
		}
		if err := sub.Handle(ctx, rec.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithGroup(name)
	}
	return out
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
