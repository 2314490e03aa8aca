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

	"github.com/RivalSee/botsee-cli/cmd/botsee/config"
	"github.com/RivalSee/botsee-cli/pkg/cascade"
	"github.com/RivalSee/botsee-cli/pkg/ux"
)

// runSetup drives the full resource cascade for a new site. Only the
// site-creation step is fatal; later batch failures are reported as
// warnings and the command still exits 0 with whatever was created.
func runSetup(_ *cobra.Command, args []string) error {
	if err := requireClient(); err != nil {
		return err
	}

	req := cascade.Request{
		Domain:              args[0],
		Types:               setupTypes,
		PersonasPerType:     setupPersonas,
		QuestionsPerPersona: setupQuestions,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ux.Title("BotSee Configuration")
	fmt.Println()
	ux.Info("Using: %d types, %d personas/type, %d questions/persona",
		req.Types, req.PersonasPerType, req.QuestionsPerPersona)
	fmt.Println()

	ctx, cancel := signalContext()
	defer cancel()

	sp := ux.NewSpinner(fmt.Sprintf("Creating %s and generating content plan", cascade.NormalizeDomain(req.Domain)))
	sp.Start()
	orch := cascade.NewOrchestrator(client, logger.Slog())

	report, err := orch.Run(ctx, req)
	if err != nil {
		sp.StopWithError("Site creation failed")
		return err
	}
	sp.Stop()

	renderCascadeReport(report)

	// The new site becomes the active one, and the workspace remembers
	// the counts the cascade ran with.
	saved := config.UserConfig{APIKey: userCfg.APIKey, SiteUUID: report.Site.UUID}
	if err := store.SaveUser(saved); err != nil {
		return err
	}
	if err := store.SaveWorkspace(config.WorkspaceConfig{
		Domain:              report.Domain,
		Types:               req.Types,
		PersonasPerType:     req.PersonasPerType,
		QuestionsPerPersona: req.QuestionsPerPersona,
	}); err != nil {
		return err
	}

	notifyUpdate()
	return nil
}

func renderCascadeReport(report *cascade.Report) {
	ux.Success("Site created: %s", report.Site.UUID)
	fmt.Println()

	if len(report.CustomerTypes) > 0 {
		ux.Info("Customer Types:")
		for _, ct := range report.CustomerTypes {
			ux.Muted("• %s", ct.Name)
		}
		fmt.Println()
	}

	for _, w := range report.Warnings {
		if w.ParentName != "" {
			ux.Warn("%s (%s): %s", w.ParentName, w.Stage, w.Message)
		} else {
			ux.Warn("%s: %s", w.Stage, w.Message)
		}
	}

	if report.Halted {
		ux.Warn("Stopped early: credits exhausted")
	}

	ux.Success("Configuration complete!")
	fmt.Println()
	ux.Info("Generated:")
	ux.Muted("• %d customer type(s)", report.TypesCreated)
	ux.Muted("• %d persona(s)", report.PersonasCreated)
	ux.Muted("• %d question(s)", report.QuestionsCreated)
	fmt.Println()
	if report.BalanceKnown {
		ux.KeyValue("Remaining credits", fmt.Sprintf("%d", report.Balance))
		fmt.Println()
	}
	ux.Muted("Next: botsee analyze        - Run competitive analysis")
	ux.Muted("      botsee list-types     - View customer types")
	ux.Muted("      botsee get-site       - View site details")
}
