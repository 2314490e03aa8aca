// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RivalSee/botsee-cli/cmd/botsee/config"
	"github.com/RivalSee/botsee-cli/pkg/api"
	"github.com/RivalSee/botsee-cli/pkg/ux"
)

// runSignup starts a new signup or resumes a pending one. The flow is
// deliberately non-interactive: the first run prints a browser URL and
// saves the token; subsequent runs check completion status.
func runSignup(_ *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	pending, err := store.LoadPendingSignup()
	if err != nil {
		return err
	}
	if pending != nil {
		return signupResume(ctx, pending)
	}
	return signupNew(ctx)
}

func signupNew(ctx context.Context) error {
	signup, err := client.CreateSignup(ctx, api.SignupRequest{
		ContactEmail: signupEmail,
		ContactName:  signupName,
		CompanyName:  signupCompany,
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	if err := store.SavePendingSignup(config.PendingSignup{
		SetupToken: signup.SetupToken,
		SetupURL:   signup.SetupURL,
		StatusURL:  signup.StatusURL,
	}); err != nil {
		return err
	}

	notifyUpdate()

	ux.Box("BotSee Signup", fmt.Sprintf("Complete signup in your browser:\n\n  %s", signup.SetupURL))
	fmt.Println()
	ux.Muted("After completing signup, run botsee signup again to check status")
	return nil
}

func signupResume(ctx context.Context, pending *config.PendingSignup) error {
	ux.Title("BotSee Signup")
	ux.Info("Checking signup status...")

	state, err := client.SignupStatus(ctx, pending.StatusURL, pending.SetupToken)
	if err != nil {
		return err
	}

	switch state.Status {
	case api.SignupCompleted:
		if state.APIKey == "" {
			return &api.Error{
				Kind:    api.KindRemoteFailure,
				Message: "Signup completed but no API key was returned",
			}
		}
		if err := store.SaveUser(config.UserConfig{
			APIKey:       state.APIKey,
			ContactEmail: state.ContactEmail,
			CompanyName:  state.CompanyName,
		}); err != nil {
			return err
		}
		if err := store.RemovePendingSignup(); err != nil {
			logger.Warn("pending signup cleanup failed", "error", err)
		}
		ux.Success("Signup complete!")
		fmt.Println()
		ux.Muted("Next: botsee setup <domain>")
		return nil

	case api.SignupExpired:
		if err := store.RemovePendingSignup(); err != nil {
			logger.Warn("pending signup cleanup failed", "error", err)
		}
		return &api.Error{
			Kind:        api.KindRejected,
			Message:     "Signup token expired",
			Remediation: "Run: botsee signup",
		}

	default:
		ux.Warn("Signup not yet complete. Please visit:")
		fmt.Println()
		fmt.Printf("   %s\n", pending.SetupURL)
		fmt.Println()
		ux.Muted("After completing signup, run botsee signup again to check status")
		return &api.Error{
			Kind:    api.KindRejected,
			Message: "Signup incomplete",
		}
	}
}
