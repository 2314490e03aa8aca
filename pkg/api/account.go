// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// account.go holds the typed wrappers for usage, account details, and
// the signup flow.
package api

import (
	"context"
	"net/http"
)

// Usage returns the account's current credit balance. Read after every
// billable operation; never cached for billing decisions.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	var out Usage
	resp, err := c.get(ctx, "/usage", &out)
	if err != nil {
		return nil, err
	}
	c.noteUpdate(resp)
	return &out, nil
}

// Account returns owner and company details for the account.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	var out Account
	resp, err := c.get(ctx, "/account", &out)
	if err != nil {
		return nil, err
	}
	c.noteUpdate(resp)
	return &out, nil
}

// CreateSignup starts the signup flow. Unauthenticated: this is the one
// call that legitimately runs without a credential.
func (c *Client) CreateSignup(ctx context.Context, req SignupRequest) (*Signup, error) {
	resp, err := c.Invoke(ctx, http.MethodPost, "/signup", req)
	if err != nil {
		return nil, err
	}
	c.noteUpdate(resp)
	var out Signup
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if out.SetupToken == "" || out.SetupURL == "" {
		return nil, &Error{
			Kind:        KindRemoteFailure,
			StatusCode:  resp.StatusCode,
			Message:     "Signup returned an incomplete token",
			Remediation: "Run: botsee signup",
		}
	}
	return &out, nil
}

// SignupStatus checks a pending signup. statusURL comes from the signup
// response when present; otherwise the token-derived path is used.
func (c *Client) SignupStatus(ctx context.Context, statusURL, setupToken string) (*SignupState, error) {
	path := statusURL
	if path == "" {
		path = "/signup/" + setupToken + "/status"
	}
	resp, err := c.Invoke(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out SignupState
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
