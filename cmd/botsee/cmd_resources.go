// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RivalSee/botsee-cli/cmd/botsee/config"
	"github.com/RivalSee/botsee-cli/pkg/ux"
)

// printJSON renders an entity for piping into jq and friends.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func resourceContext() (context.Context, context.CancelFunc, error) {
	if err := requireClient(); err != nil {
		return nil, nil, err
	}
	ctx, cancel := signalContext()
	return ctx, cancel, nil
}

func short(uuid string) string {
	if len(uuid) > 8 {
		return uuid[:8] + "..."
	}
	return uuid
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// --- Sites ---

func runListSites(_ *cobra.Command, _ []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	sites, err := client.ListSites(ctx)
	if err != nil {
		return err
	}
	notifyUpdate()
	if len(sites) == 0 {
		ux.Info("No sites found.")
		return nil
	}

	activeUUID := ""
	if userCfg != nil {
		activeUUID = userCfg.SiteUUID
	}
	ux.Title(fmt.Sprintf("Sites (%d)", len(sites)))
	for _, s := range sites {
		marker := ""
		if s.UUID == activeUUID {
			marker = " *"
		}
		ux.Muted("%s - %s (%s)%s", short(s.UUID), s.URL, s.ProductName, marker)
	}
	return nil
}

func runGetSite(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	site, err := client.GetSite(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(site)
}

func runArchiveSite(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.ArchiveSite(ctx, args[0]); err != nil {
		return err
	}
	ux.Success("Site %s archived", args[0])
	return nil
}

func runUseSite(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	// Verify before switching so a typo does not wedge the config.
	site, err := client.GetSite(ctx, args[0])
	if err != nil {
		return err
	}

	saved := config.UserConfig{APIKey: userCfg.APIKey, SiteUUID: site.UUID}
	if err := store.SaveUser(saved); err != nil {
		return err
	}

	ux.Success("Active site changed to: %s", site.ProductName)
	ux.KeyValue("URL", site.URL)
	ux.KeyValue("UUID", site.UUID)
	return nil
}

// --- Customer types ---

func runListTypes(_ *cobra.Command, _ []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	siteUUID, err := activeSiteUUID(flagSiteUUID)
	if err != nil {
		return err
	}
	types, err := client.ListCustomerTypes(ctx, siteUUID)
	if err != nil {
		return err
	}
	if len(types) == 0 {
		ux.Info("No customer types found.")
		return nil
	}
	ux.Title(fmt.Sprintf("Customer Types (%d)", len(types)))
	for _, t := range types {
		ux.Muted("%s - %s", short(t.UUID), t.Name)
		if t.Description != "" {
			ux.Muted("  %s", clip(t.Description, 50))
		}
	}
	return nil
}

func runGetType(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	ct, err := client.GetCustomerType(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(ct)
}

func runCreateType(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	ct, err := client.CreateCustomerType(ctx, args[0], flagName, flagDescription)
	if err != nil {
		return err
	}
	ux.Success("Customer type created: %s", ct.UUID)
	return printJSON(ct)
}

func runGenerateTypes(_ *cobra.Command, _ []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	siteUUID, err := activeSiteUUID(flagSiteUUID)
	if err != nil {
		return err
	}
	types, err := client.GenerateCustomerTypes(ctx, siteUUID, flagCount)
	if err != nil {
		return err
	}
	ux.Success("Generated %d customer type(s)", len(types))
	for _, t := range types {
		ux.Muted("• %s", t.Name)
	}
	return nil
}

func runUpdateType(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.UpdateCustomerType(ctx, args[0], flagName, flagDescription); err != nil {
		return err
	}
	ux.Success("Customer type %s updated", args[0])
	return nil
}

func runArchiveType(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.ArchiveCustomerType(ctx, args[0]); err != nil {
		return err
	}
	ux.Success("Customer type %s archived", args[0])
	return nil
}

// --- Personas ---

func runListPersonas(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	personas, err := client.ListPersonas(ctx, args[0])
	if err != nil {
		return err
	}
	if len(personas) == 0 {
		ux.Info("No personas found.")
		return nil
	}
	ux.Title(fmt.Sprintf("Personas (%d)", len(personas)))
	for _, p := range personas {
		ux.Muted("%s - %s", short(p.UUID), p.Name)
		if p.Description != "" {
			ux.Muted("  %s", clip(p.Description, 50))
		}
	}
	return nil
}

func runGetPersona(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	persona, err := client.GetPersona(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(persona)
}

func runCreatePersona(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	persona, err := client.CreatePersona(ctx, args[0], flagName, flagDescription)
	if err != nil {
		return err
	}
	ux.Success("Persona created: %s", persona.UUID)
	return printJSON(persona)
}

func runGeneratePersonas(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	personas, err := client.GeneratePersonas(ctx, args[0], flagCount)
	if err != nil {
		return err
	}
	ux.Success("Generated %d persona(s)", len(personas))
	for _, p := range personas {
		ux.Muted("• %s", p.Name)
	}
	return nil
}

func runUpdatePersona(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.UpdatePersona(ctx, args[0], flagName, flagDescription); err != nil {
		return err
	}
	ux.Success("Persona %s updated", args[0])
	return nil
}

func runArchivePersona(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.ArchivePersona(ctx, args[0]); err != nil {
		return err
	}
	ux.Success("Persona %s archived", args[0])
	return nil
}

// --- Questions ---

func runListQuestions(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	questions, err := client.ListQuestions(ctx, args[0])
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		ux.Info("No questions found.")
		return nil
	}
	ux.Title(fmt.Sprintf("Questions (%d)", len(questions)))
	for _, q := range questions {
		ux.Muted("%s - %s", short(q.UUID), clip(q.Text, 80))
	}
	return nil
}

func runGetQuestion(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	question, err := client.GetQuestion(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(question)
}

func runCreateQuestion(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	question, err := client.CreateQuestion(ctx, args[0], flagText)
	if err != nil {
		return err
	}
	ux.Success("Question created: %s", question.UUID)
	return printJSON(question)
}

func runGenerateQuestions(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	questions, err := client.GenerateQuestions(ctx, args[0], flagCount)
	if err != nil {
		return err
	}
	ux.Success("Generated %d question(s)", len(questions))
	for _, q := range questions {
		ux.Muted("• %s", clip(q.Text, 80))
	}
	return nil
}

func runUpdateQuestion(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.UpdateQuestion(ctx, args[0], flagText); err != nil {
		return err
	}
	ux.Success("Question %s updated", args[0])
	return nil
}

func runDeleteQuestion(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.DeleteQuestion(ctx, args[0]); err != nil {
		return err
	}
	ux.Success("Question %s deleted", args[0])
	return nil
}
