// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"github.com/spf13/cobra"
)

// Results commands emit JSON: they exist for agents and scripts that
// post-process analysis output, not for human reading.

func runResultsCompetitors(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	report, err := client.AnalysisCompetitors(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runResultsKeywords(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	keywords, err := client.AnalysisKeywords(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(keywords)
}

func runResultsSources(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	sources, err := client.AnalysisSources(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(sources)
}

func runResultsResponses(_ *cobra.Command, args []string) error {
	ctx, cancel, err := resourceContext()
	if err != nil {
		return err
	}
	defer cancel()

	responses, err := client.AnalysisResponses(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(responses)
}
