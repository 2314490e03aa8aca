// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(t.TempDir(), t.TempDir())
}

func TestLoadUser_AbsentIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	cfg, err := s.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSaveLoadUser_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := UserConfig{
		APIKey:       "bsk_live_secret1234",
		SiteUUID:     "site-1",
		ContactEmail: "ops@example.com",
		CompanyName:  "Example Inc",
	}
	require.NoError(t, s.SaveUser(in))

	out, err := s.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, *out)

	// Reads are idempotent.
	again, err := s.LoadUser()
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestSaveUser_PreservesContactFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveUser(UserConfig{
		APIKey:       "bsk_live_secret1234",
		ContactEmail: "ops@example.com",
		CompanyName:  "Example Inc",
	}))

	// Switching the active site must not drop the contact details.
	require.NoError(t, s.SaveUser(UserConfig{APIKey: "bsk_live_secret1234", SiteUUID: "site-2"}))

	out, err := s.LoadUser()
	require.NoError(t, err)
	assert.Equal(t, "site-2", out.SiteUUID)
	assert.Equal(t, "ops@example.com", out.ContactEmail)
	assert.Equal(t, "Example Inc", out.CompanyName)
}

func TestSaveUser_RestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	s := newTestStore(t)
	require.NoError(t, s.SaveUser(UserConfig{APIKey: "bsk_live_secret1234"}))

	info, err := os.Stat(s.UserPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(s.UserPath()))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestSaveUser_AtomicLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveUser(UserConfig{APIKey: "bsk_live_secret1234"}))
	require.NoError(t, s.SaveUser(UserConfig{APIKey: "bsk_live_secret5678"}))

	entries, err := os.ReadDir(filepath.Dir(s.UserPath()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestLoadUser_CorruptFileIsAnError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.UserPath()), 0o700))
	require.NoError(t, os.WriteFile(s.UserPath(), []byte("{not json"), 0o600))

	_, err := s.LoadUser()
	require.Error(t, err)
}

func TestWorkspace_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.LoadWorkspace()
	require.NoError(t, err)
	assert.Nil(t, cfg)

	in := WorkspaceConfig{Domain: "https://example.com", Types: 2, PersonasPerType: 2, QuestionsPerPersona: 5}
	require.NoError(t, s.SaveWorkspace(in))

	out, err := s.LoadWorkspace()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, *out)
}

func TestPendingSignup_Lifecycle(t *testing.T) {
	s := newTestStore(t)

	pending, err := s.LoadPendingSignup()
	require.NoError(t, err)
	assert.Nil(t, pending)

	in := PendingSignup{SetupToken: "tok-1", SetupURL: "https://botsee.io/setup/tok-1", StatusURL: "/signup/tok-1/status"}
	require.NoError(t, s.SavePendingSignup(in))

	out, err := s.LoadPendingSignup()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, *out)

	require.NoError(t, s.RemovePendingSignup())
	gone, err := s.LoadPendingSignup()
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Removing twice is fine.
	require.NoError(t, s.RemovePendingSignup())
}

func TestKeySuffix(t *testing.T) {
	assert.Equal(t, "1234", (&UserConfig{APIKey: "bsk_live_secret1234"}).KeySuffix())
	assert.Equal(t, "****", (&UserConfig{APIKey: "ab"}).KeySuffix())
	assert.Equal(t, "****", (&UserConfig{}).KeySuffix())
}
