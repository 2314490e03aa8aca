// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package config persists the CLI's two small state files: the user
// config holding the credential, and the workspace config holding
// generation defaults.
//
// The user config lives under a restricted-permission directory
// (~/.botsee, 0700) because it carries the API key; the workspace config
// lives in the project's .context directory with regular permissions.
// Absent files mean "unconfigured", never an error.
package config

// UserConfig is the restricted-permission account state.
//
// The APIKey is a secret: it is never logged, and display code shows at
// most its last four characters.
type UserConfig struct {
	APIKey       string `json:"api_key"`
	SiteUUID     string `json:"site_uuid,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
}

// KeySuffix returns the displayable tail of the API key.
func (u *UserConfig) KeySuffix() string {
	if len(u.APIKey) < 4 {
		return "****"
	}
	return u.APIKey[len(u.APIKey)-4:]
}

// WorkspaceConfig records the generation counts a site was created with,
// so re-runs and documentation stay reproducible.
type WorkspaceConfig struct {
	Domain              string `json:"domain"`
	Types               int    `json:"types"`
	PersonasPerType     int    `json:"personas_per_type"`
	QuestionsPerPersona int    `json:"questions_per_persona"`
}

// PendingSignup is a signup token awaiting browser completion.
type PendingSignup struct {
	SetupToken string `json:"setup_token"`
	SetupURL   string `json:"setup_url"`
	StatusURL  string `json:"status_url,omitempty"`
}
