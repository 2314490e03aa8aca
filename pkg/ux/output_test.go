// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// =============================================================================
// Plain-Mode Output Tests
// =============================================================================

func TestSetPlain(t *testing.T) {
	SetPlain(false)
	if Plain() {
		t.Error("Plain() = true after SetPlain(false)")
	}
	SetPlain(true)
	if !Plain() {
		t.Error("Plain() = false after SetPlain(true)")
	}
}

func TestSuccess_PlainPrefix(t *testing.T) {
	SetPlain(true)
	out := captureStdout(func() {
		Success("site created: %s", "ab12cd34")
	})
	if out != "OK: site created: ab12cd34\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestWarn_PlainPrefix(t *testing.T) {
	SetPlain(true)
	out := captureStdout(func() {
		Warn("2 of 3 batches succeeded")
	})
	if out != "WARN: 2 of 3 batches succeeded\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestError_GoesToStderr(t *testing.T) {
	SetPlain(true)
	stdout := captureStdout(func() {
		_ = captureStderr(func() {})
	})
	stderr := captureStderr(func() {
		Error("analysis failed")
	})
	if stdout != "" {
		t.Errorf("stdout should be empty, got %q", stdout)
	}
	if stderr != "ERROR: analysis failed\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestKeyValue_Plain(t *testing.T) {
	SetPlain(true)
	out := captureStdout(func() {
		KeyValue("Credits", "42")
	})
	if out != "Credits: 42\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestTitle_Plain(t *testing.T) {
	SetPlain(true)
	out := captureStdout(func() {
		Title("BotSee")
	})
	if out != "== BotSee ==\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestBox_PlainIncludesTitleAndContent(t *testing.T) {
	SetPlain(true)
	out := captureStdout(func() {
		Box("BotSee Signup", "https://botsee.io/setup/tok")
	})
	if !strings.Contains(out, "== BotSee Signup ==") {
		t.Errorf("missing title in %q", out)
	}
	if !strings.Contains(out, "https://botsee.io/setup/tok") {
		t.Errorf("missing content in %q", out)
	}
}

func TestBox_PlainWithoutTitle(t *testing.T) {
	SetPlain(true)
	out := captureStdout(func() {
		Box("", "body only")
	})
	if strings.Contains(out, "==") {
		t.Errorf("unexpected title separator in %q", out)
	}
	if !strings.Contains(out, "body only") {
		t.Errorf("missing content in %q", out)
	}
}

func TestRule_PlainIsASCII(t *testing.T) {
	SetPlain(true)
	out := captureStdout(func() {
		Rule()
	})
	if out != strings.Repeat("-", 60)+"\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

// =============================================================================
// Styled Output Tests
// =============================================================================

func TestStyled_CarriesMessageText(t *testing.T) {
	SetPlain(false)
	defer SetPlain(true)
	out := captureStdout(func() {
		Info("processing")
	})
	if !strings.Contains(out, "processing") {
		t.Errorf("message text lost in styled output: %q", out)
	}
}
