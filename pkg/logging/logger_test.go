// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// ParseLevel Tests
// =============================================================================

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		if got := tt.level.toSlogLevel(); got != tt.want {
			t.Errorf("toSlogLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

// =============================================================================
// New Tests
// =============================================================================

func TestNew_StderrOnlyNeverFails(t *testing.T) {
	logger, err := New(Config{Level: LevelDebug})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer logger.Close()

	if logger.Slog() == nil {
		t.Error("Slog() returned nil")
	}
	if logger.file != nil {
		t.Error("no file logging requested, but a file was opened")
	}
}

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{Level: LevelDebug, LogDir: dir, Quiet: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("analysis submitted", "analysis_uuid", "ab12")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 log file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "botsee_") || !strings.HasSuffix(name, ".log") {
		t.Errorf("unexpected log file name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// File output is always JSON.
	if !strings.Contains(string(data), `"analysis_uuid":"ab12"`) {
		t.Errorf("log file missing JSON record: %s", data)
	}
}

func TestNew_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{LogDir: dir, Quiet: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer logger.Close()

	info, err := logger.file.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("log file permissions = %o, want 600", perm)
	}
}

func TestNew_QuietWithoutFileDiscards(t *testing.T) {
	logger, err := New(Config{Quiet: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer logger.Close()

	// Must not panic; the discard handler absorbs everything.
	logger.Debug("dropped")
	logger.Error("also dropped")
}

// =============================================================================
// Fanout Handler Tests
// =============================================================================

type recordingHandler struct {
	records []slog.Record
	level   slog.Level
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	h.records = append(h.records, rec)
	return nil
}

func (h *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(_ string) slog.Handler      { return h }

func TestFanout_DeliversToAllEnabled(t *testing.T) {
	a := &recordingHandler{level: slog.LevelDebug}
	b := &recordingHandler{level: slog.LevelWarn}
	logger := slog.New(fanoutHandler{a, b})

	logger.Info("info line")
	logger.Warn("warn line")

	if len(a.records) != 2 {
		t.Errorf("debug handler got %d records, want 2", len(a.records))
	}
	if len(b.records) != 1 {
		t.Errorf("warn handler got %d records, want 1", len(b.records))
	}
}

func TestFanout_EnabledWhenAnySubIs(t *testing.T) {
	h := fanoutHandler{
		&recordingHandler{level: slog.LevelError},
		&recordingHandler{level: slog.LevelDebug},
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("fanout should be enabled when any sub-handler is")
	}
}
