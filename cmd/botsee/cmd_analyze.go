// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RivalSee/botsee-cli/pkg/api"
	"github.com/RivalSee/botsee-cli/pkg/poll"
	"github.com/RivalSee/botsee-cli/pkg/ux"
)

// runAnalyze submits an analysis job and waits for a terminal state.
// The job identifier is printed as soon as submission succeeds so an
// interrupted wait can still be resumed through the results commands.
func runAnalyze(_ *cobra.Command, args []string) error {
	if err := requireClient(); err != nil {
		return err
	}
	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}
	siteUUID, err := activeSiteUUID(explicit)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	ux.Title("BotSee Analysis")
	ux.Rule()

	sp := ux.NewSpinner("Starting analysis...")
	sp.Start()

	start := time.Now()
	poller := poll.NewPoller(client, poll.Options{
		OnSubmit: func(analysisUUID string) {
			sp.Stop()
			ux.KeyValue("Analysis started", analysisUUID)
			sp = ux.NewSpinner("Processing (this may take a few minutes)...")
			sp.Start()
		},
		OnPoll: func(_ int, status api.AnalysisStatus) {
			sp.Update("Processing: %s (%s elapsed)", status, time.Since(start).Round(time.Second))
		},
	}, logger.Slog())

	result, err := poller.Run(ctx, siteUUID)
	if err != nil {
		sp.StopWithError("Analysis could not be started")
		return err
	}

	switch result.Outcome {
	case poll.OutcomeCompleted:
		sp.StopWithSuccess("Analysis complete!")
		fmt.Println()
		renderAnalysisResults(result)
		notifyUpdate()
		return nil

	case poll.OutcomeFailed:
		sp.StopWithError("Analysis %s failed on the server", result.AnalysisUUID)
		return &api.Error{
			Kind:    api.KindRemoteFailure,
			Message: fmt.Sprintf("Analysis %s failed", result.AnalysisUUID),
		}

	case poll.OutcomeTimeout:
		sp.StopWithWarning("Analysis %s still running after %s", result.AnalysisUUID, result.Elapsed.Round(time.Second))
		ux.Muted("Check later: botsee results-competitors %s", result.AnalysisUUID)
		return &api.Error{
			Kind:    api.KindTimeout,
			Message: "Timed out waiting for analysis",
		}

	default: // OutcomeCancelled
		sp.StopWithWarning("Wait cancelled; analysis %s continues on the server", result.AnalysisUUID)
		ux.Muted("Check later: botsee results-competitors %s", result.AnalysisUUID)
		return &api.Error{
			Kind:    api.KindTimeout,
			Message: "Cancelled while waiting for analysis",
		}
	}
}

func renderAnalysisResults(result *poll.Result) {
	ctx, cancel := signalContext()
	defer cancel()

	if result.Competitors != nil && len(result.Competitors.ByCustomerType) > 0 {
		ux.Info("Competitors by Customer Type:")
		fmt.Println()
		for _, group := range result.Competitors.ByCustomerType {
			competitors := group.Competitors
			if len(competitors) > 5 {
				competitors = competitors[:5]
			}
			if len(competitors) == 0 {
				continue
			}
			fmt.Printf("  %s:\n", group.CustomerTypeName)
			for _, c := range competitors {
				ux.Muted("• %s - %.0f%% appearance, avg rank %.1f, %d mentions",
					c.Name, c.AppearancePercentage, c.AvgRank, c.Mentions)
			}
			fmt.Println()
		}
		summary := result.Competitors.OverallSummary
		ux.Muted("Total: %d unique competitors across %d responses",
			summary.TotalUniqueCompetitors, summary.TotalResponsesAnalyzed)
		fmt.Println()
	}

	keywords := result.Keywords
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	if len(keywords) > 0 {
		ux.Info("Top Keywords:")
		for _, k := range keywords {
			ux.Muted("• %q (%dx)", k.Keyword, k.Frequency)
		}
		fmt.Println()
	}

	// Sources are informational; skip silently when the fetch fails.
	if sources, err := client.AnalysisSources(ctx, result.AnalysisUUID); err == nil && len(sources) > 0 {
		if len(sources) > 10 {
			sources = sources[:10]
		}
		ux.Info("Top Sources:")
		for _, s := range sources {
			marker := ""
			if s.OwnCompanyMentioned {
				marker = " *"
			}
			ux.Muted("• %s (%dx)%s", s.URL, s.Mentions, marker)
		}
		fmt.Println()
	}

	if result.BalanceKnown {
		ux.KeyValue("Remaining credits", fmt.Sprintf("%d", result.Balance))
	}
}

// runContent generates a blog post from the most recent analysis and
// saves it to the working directory.
func runContent(_ *cobra.Command, _ []string) error {
	if err := requireClient(); err != nil {
		return err
	}
	siteUUID, err := activeSiteUUID("")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	analysis, err := client.LatestAnalysis(ctx, siteUUID)
	if err != nil {
		return err
	}
	if analysis == nil {
		return &api.Error{
			Kind:        api.KindInvalidInput,
			Message:     "No analysis found",
			Remediation: "Run: botsee analyze",
		}
	}

	sp := ux.NewSpinner("Generating blog post...")
	sp.Start()
	content, creditsUsed, err := client.GenerateContent(ctx, analysis.UUID)
	if err != nil {
		sp.StopWithError("Content generation failed")
		return err
	}
	sp.Stop()

	ux.Rule()
	fmt.Println(content)
	ux.Rule()
	fmt.Println()
	ux.KeyValue("Credits used", fmt.Sprintf("%d", creditsUsed))

	filename := fmt.Sprintf("botsee-%s.md", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("save content: %w", err)
	}
	ux.Success("Saved: %s", filename)

	notifyUpdate()
	return nil
}
