// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	userDirName       = ".botsee"
	userFileName      = "config.json"
	pendingFileName   = "pending_signup.json"
	workspaceDirName  = ".context"
	workspaceFileName = "botsee-config.json"
)

// Store reads and writes the CLI's state files.
//
// Concurrent invocations of the CLI are not coordinated against each
// other (no file locking); the accepted usage model is a single
// operator. Writes are still atomic - temp file then rename - so a
// crash never leaves a partial config behind.
type Store struct {
	// homeDir is the base for the user config. Defaults to the user's
	// home directory; tests override it.
	homeDir string

	// workDir is the base for the workspace config. Defaults to the
	// current directory; tests override it.
	workDir string
}

// NewStore creates a store rooted at the user's home directory and the
// current working directory.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return &Store{homeDir: home, workDir: "."}, nil
}

// NewStoreAt creates a store with explicit roots. Used by tests.
func NewStoreAt(homeDir, workDir string) *Store {
	return &Store{homeDir: homeDir, workDir: workDir}
}

// UserPath returns the user config path.
func (s *Store) UserPath() string {
	return filepath.Join(s.homeDir, userDirName, userFileName)
}

// WorkspacePath returns the workspace config path.
func (s *Store) WorkspacePath() string {
	return filepath.Join(s.workDir, workspaceDirName, workspaceFileName)
}

func (s *Store) pendingPath() string {
	return filepath.Join(s.homeDir, userDirName, pendingFileName)
}

// -----------------------------------------------------------------------------
// User Config
// -----------------------------------------------------------------------------

// LoadUser reads the user config. Returns (nil, nil) when the file does
// not exist: an unconfigured CLI is not an error.
func (s *Store) LoadUser() (*UserConfig, error) {
	var cfg UserConfig
	ok, err := s.readJSON(s.UserPath(), &cfg)
	if err != nil || !ok {
		return nil, err
	}
	return &cfg, nil
}

// SaveUser writes the user config with restricted permissions.
//
// Fields left empty in cfg are preserved from the existing file, so a
// partial update (e.g. switching the active site) never drops the
// contact details recorded at signup.
func (s *Store) SaveUser(cfg UserConfig) error {
	if existing, err := s.LoadUser(); err == nil && existing != nil {
		if cfg.ContactEmail == "" {
			cfg.ContactEmail = existing.ContactEmail
		}
		if cfg.CompanyName == "" {
			cfg.CompanyName = existing.CompanyName
		}
	}

	dir := filepath.Dir(s.UserPath())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	// Tighten the directory even when it already existed with looser
	// permissions from an older release.
	if err := os.Chmod(dir, 0700); err != nil {
		return fmt.Errorf("failed to restrict the config directory: %w", err)
	}
	return writeFileAtomic(s.UserPath(), cfg, 0600)
}

// -----------------------------------------------------------------------------
// Workspace Config
// -----------------------------------------------------------------------------

// LoadWorkspace reads the workspace config. Returns (nil, nil) when the
// file does not exist.
func (s *Store) LoadWorkspace() (*WorkspaceConfig, error) {
	var cfg WorkspaceConfig
	ok, err := s.readJSON(s.WorkspacePath(), &cfg)
	if err != nil || !ok {
		return nil, err
	}
	return &cfg, nil
}

// SaveWorkspace writes the workspace config with regular permissions.
func (s *Store) SaveWorkspace(cfg WorkspaceConfig) error {
	dir := filepath.Dir(s.WorkspacePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the workspace directory: %w", err)
	}
	return writeFileAtomic(s.WorkspacePath(), cfg, 0644)
}

// -----------------------------------------------------------------------------
// Pending Signup
// -----------------------------------------------------------------------------

// LoadPendingSignup reads a pending signup token, if any.
func (s *Store) LoadPendingSignup() (*PendingSignup, error) {
	var pending PendingSignup
	ok, err := s.readJSON(s.pendingPath(), &pending)
	if err != nil || !ok {
		return nil, err
	}
	return &pending, nil
}

// SavePendingSignup stores a signup token with restricted permissions.
func (s *Store) SavePendingSignup(pending PendingSignup) error {
	dir := filepath.Dir(s.pendingPath())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	return writeFileAtomic(s.pendingPath(), pending, 0600)
}

// RemovePendingSignup deletes the pending signup token. Removing an
// absent token is not an error.
func (s *Store) RemovePendingSignup() error {
	err := os.Remove(s.pendingPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------
// File Helpers
// -----------------------------------------------------------------------------

// readJSON loads path into out. The boolean reports whether the file
// existed.
func (s *Store) readJSON(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

// writeFileAtomic writes v as indented JSON via a temp file and rename,
// so a crash mid-write never leaves a truncated config.
func writeFileAtomic(path string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
