// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RivalSee/botsee-cli/pkg/api"
	"github.com/RivalSee/botsee-cli/pkg/ux"
)

// runStatus shows the credit balance and active site. When nothing is
// configured yet it prints onboarding pointers instead of failing.
func runStatus(_ *cobra.Command, _ []string) error {
	if userCfg == nil {
		ux.Title("BotSee - AI Competitive Intelligence")
		fmt.Println()
		ux.Info("Get started: botsee signup")
		ux.Muted("Learn more: https://botsee.io/docs")
		return nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	usage, err := client.Usage(ctx)
	if err != nil {
		return err
	}

	var activeSite *api.Site
	if userCfg.SiteUUID != "" {
		// Best effort; status stays useful when the site fetch fails.
		if site, err := client.GetSite(ctx, userCfg.SiteUUID); err == nil {
			activeSite = site
		} else {
			logger.Warn("active site fetch failed", "error", err)
		}
	}

	notifyUpdate()

	ux.Title("BotSee")
	ux.Rule()
	ux.KeyValue("Credits", fmt.Sprintf("%d", usage.Balance))
	if activeSite != nil {
		ux.KeyValue("Active", fmt.Sprintf("%s (%s)", activeSite.ProductName, activeSite.URL))
	}
	ux.KeyValue("Key", "..."+userCfg.KeySuffix())
	fmt.Println()
	ux.Muted("botsee account          - View account details")
	ux.Muted("botsee setup <domain>   - Create site and generate content")
	ux.Muted("botsee analyze          - Run competitive analysis")
	ux.Muted("botsee content          - Generate blog post")
	return nil
}

// runAccount shows owner details and backfills email/company into the
// saved config when the server knows them and the local file does not.
func runAccount(_ *cobra.Command, _ []string) error {
	if err := requireClient(); err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	acct, err := client.Account(ctx)
	if err != nil {
		return err
	}

	if acct.OwnerEmail != "" || acct.CompanyName != "" {
		saved := *userCfg
		saved.ContactEmail = acct.OwnerEmail
		saved.CompanyName = acct.CompanyName
		if err := store.SaveUser(saved); err != nil {
			logger.Warn("config backfill failed", "error", err)
		}
	}

	notifyUpdate()

	ux.Title("BotSee Account")
	ux.Rule()
	if acct.OwnerName != "" {
		ux.KeyValue("Name", acct.OwnerName)
	}
	if acct.OwnerEmail != "" {
		ux.KeyValue("Email", acct.OwnerEmail)
	}
	if acct.CompanyName != "" {
		ux.KeyValue("Company", acct.CompanyName)
	}
	ux.KeyValue("Sites", fmt.Sprintf("%d", acct.SiteCount))
	return nil
}

// runUpdate reports whether a newer version exists. Installation is
// handled by the distribution channel, not this binary.
func runUpdate(_ *cobra.Command, _ []string) error {
	if err := requireClient(); err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	// Any authenticated call returns the version marker in its envelope.
	if _, err := client.ListSites(ctx); err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	v := client.UpdateAvailable()
	if v == "" {
		ux.Success("BotSee %s is up to date", api.Version)
		return nil
	}
	ux.Info("Update available: BotSee %s (installed: %s)", v, api.Version)
	ux.Muted("Download: https://github.com/RivalSee/botsee-skill")
	return nil
}

// runConfigShow displays the workspace configuration saved by setup.
func runConfigShow(_ *cobra.Command, _ []string) error {
	ws, err := store.LoadWorkspace()
	if err != nil {
		return err
	}
	if ws == nil {
		ux.Info("No workspace config found. Run: botsee setup <domain>")
		return nil
	}

	ux.Title("BotSee Configuration")
	ux.Rule()
	ux.KeyValue("Domain", ws.Domain)
	ux.KeyValue("Customer Types", fmt.Sprintf("%d", ws.Types))
	ux.KeyValue("Personas per Type", fmt.Sprintf("%d", ws.PersonasPerType))
	ux.KeyValue("Questions per Persona", fmt.Sprintf("%d", ws.QuestionsPerPersona))
	ux.KeyValue("Endpoint", client.BaseURL())
	fmt.Println()
	ux.Muted("This configuration was used when creating the site.")
	ux.Muted("File: " + store.WorkspacePath())
	return nil
}
