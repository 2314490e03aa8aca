// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ux provides styled terminal output for the botsee CLI.
//
// # Problem Statement
//
// The CLI talks to a remote analysis pipeline whose operations span
// seconds (CRUD calls) to many minutes (content analysis). Raw fmt
// output makes it hard to distinguish progress, warnings, and the
// handful of values the user actually needs to copy (UUIDs, setup
// URLs). At the same time the CLI is often run from scripts and CI,
// where ANSI escapes corrupt captured output.
//
// # Solution
//
// A small palette of lipgloss styles with a single global switch:
// when stdout is not a terminal (or NO_COLOR is set) every helper
// degrades to plain text with an ASCII prefix. Callers never branch
// on TTY state themselves.
//
//	┌──────────────┐   styled    ┌─────────────┐
//	│ command code │ ──────────► │ ux.Success  │ ──► "✓ site created"
//	└──────────────┘             │ ux.Warn     │ ──► "⚠ 2 of 3 ..."
//	                             │ ux.KeyValue │ ──► "uuid: ab12..."
//	                             └─────────────┘
package ux

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ----------------------------------------------------------------------------
// Palette
// ----------------------------------------------------------------------------

var (
	colorHoney  = lipgloss.Color("#E8A83D") // brand accent
	colorGreen  = lipgloss.Color("#4CAF50")
	colorAmber  = lipgloss.Color("#FFB74D")
	colorRed    = lipgloss.Color("#EF5350")
	colorBlue   = lipgloss.Color("#64B5F6")
	colorGray   = lipgloss.Color("#9E9E9E")
	colorBright = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorHoney)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle    = lipgloss.NewStyle().Foreground(colorAmber)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	infoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBright)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHoney).
			Padding(0, 2)
)

// plain disables ANSI styling. Set once at init from the environment;
// tests flip it through SetPlain.
var plain = !isatty.IsTerminal(os.Stdout.Fd()) || os.Getenv("NO_COLOR") != ""

// SetPlain overrides terminal detection. Plain mode prints ASCII
// prefixes instead of styled glyphs.
func SetPlain(v bool) { plain = v }

// Plain reports whether styled output is disabled.
func Plain() bool { return plain }

// ----------------------------------------------------------------------------
// Print helpers
// ----------------------------------------------------------------------------

// Title prints a section heading.
func Title(text string) {
	if plain {
		fmt.Printf("== %s ==\n", text)
		return
	}
	fmt.Println(titleStyle.Render(text))
}

// Success prints a confirmation line.
func Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if plain {
		fmt.Printf("OK: %s\n", msg)
		return
	}
	fmt.Println(successStyle.Render("✓ " + msg))
}

// Warn prints a non-fatal problem. The cascade uses this for partial
// batch failures that do not stop the run.
func Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if plain {
		fmt.Printf("WARN: %s\n", msg)
		return
	}
	fmt.Println(warnStyle.Render("⚠ " + msg))
}

// Error prints a failure line to stderr.
func Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if plain {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
		return
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+msg))
}

// Info prints a neutral status line.
func Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if plain {
		fmt.Println(msg)
		return
	}
	fmt.Println(infoStyle.Render("• " + msg))
}

// Muted prints low-priority detail.
func Muted(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if plain {
		fmt.Println(msg)
		return
	}
	fmt.Println(mutedStyle.Render("  " + msg))
}

// KeyValue prints an aligned label/value pair. Values the user needs
// to copy (UUIDs, URLs) go through here so they stand out.
func KeyValue(key, value string) {
	if plain {
		fmt.Printf("%s: %s\n", key, value)
		return
	}
	fmt.Printf("%s %s\n", mutedStyle.Render(key+":"), valueStyle.Render(value))
}

// Box prints content inside a rounded border with an optional title.
func Box(title, content string) {
	if plain {
		if title != "" {
			fmt.Printf("== %s ==\n", title)
		}
		fmt.Println(content)
		return
	}
	body := content
	if title != "" {
		body = titleStyle.Render(title) + "\n\n" + content
	}
	fmt.Println(boxStyle.Render(body))
}

// Rule prints a horizontal separator.
func Rule() {
	if plain {
		fmt.Println(strings.Repeat("-", 60))
		return
	}
	fmt.Println(mutedStyle.Render(strings.Repeat("─", 60)))
}
