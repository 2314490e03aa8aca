// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ux

import (
	"fmt"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on one terminal line while a long call
// runs. In plain mode it prints the message once and stays silent
// until Stop.
type Spinner struct {
	mu      sync.Mutex
	message string
	stop    chan struct{}
	done    chan struct{}
	active  bool
}

// NewSpinner creates a spinner with an initial message. Call Start to
// begin animating.
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message}
}

// Start begins the animation goroutine. Calling Start on a running
// spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	if plain {
		fmt.Printf("... %s\n", s.message)
		go func() {
			<-s.stop
			close(s.done)
		}()
		return
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-s.stop:
				fmt.Print("\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				msg := s.message
				s.mu.Unlock()
				fmt.Printf("\r\033[K%s %s", infoStyle.Render(spinnerFrames[frame]), msg)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// Update changes the message while the spinner runs. The poller uses
// this to show elapsed time and the latest remote status.
func (s *Spinner) Update(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = fmt.Sprintf(format, args...)
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stop)
	s.mu.Unlock()
	<-s.done
}

// StopWithSuccess halts the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	Success(format, args...)
}

// StopWithError halts the spinner and prints an error line.
func (s *Spinner) StopWithError(format string, args ...any) {
	s.Stop()
	Error(format, args...)
}

// StopWithWarning halts the spinner and prints a warning line.
func (s *Spinner) StopWithWarning(format string, args ...any) {
	s.Stop()
	Warn(format, args...)
}

// WithSpinner runs fn under a spinner and reports the outcome.
func WithSpinner(message string, fn func() error) error {
	sp := NewSpinner(message)
	sp.Start()
	if err := fn(); err != nil {
		sp.StopWithError("%s failed: %v", message, err)
		return err
	}
	sp.StopWithSuccess("%s", message)
	return nil
}
