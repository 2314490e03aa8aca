// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// analysis.go holds the typed wrappers for the asynchronous analysis job
// and its result sets.
package api

import (
	"context"
	"fmt"
)

// StartAnalysis submits an analysis job over a site with the server's
// fixed model set. The identifier returns immediately; the job runs
// server-side regardless of what the client does afterwards.
func (c *Client) StartAnalysis(ctx context.Context, siteUUID string) (*Analysis, error) {
	var out struct {
		Analysis Analysis `json:"analysis"`
	}
	resp, err := c.post(ctx, "/analysis", map[string]string{"site_uuid": siteUUID}, &out)
	if err != nil {
		return nil, err
	}
	c.noteUpdate(resp)
	if out.Analysis.UUID == "" {
		return nil, &Error{
			Kind:        KindRemoteFailure,
			StatusCode:  resp.StatusCode,
			Message:     "Analysis submission returned no identifier",
			Remediation: "Run: botsee analyze",
		}
	}
	return &out.Analysis, nil
}

// GetAnalysis fetches the current status of an analysis job.
func (c *Client) GetAnalysis(ctx context.Context, uuid string) (*Analysis, error) {
	var out struct {
		Analysis Analysis `json:"analysis"`
	}
	if _, err := c.get(ctx, "/analysis/"+uuid, &out); err != nil {
		return nil, err
	}
	return &out.Analysis, nil
}

// LatestAnalysis returns the most recent analysis of a site, determined
// by creation order. Returns nil when the site has none.
func (c *Client) LatestAnalysis(ctx context.Context, siteUUID string) (*Analysis, error) {
	var out struct {
		Analyses []Analysis `json:"analyses"`
	}
	path := fmt.Sprintf("/sites/%s/analysis?limit=1", siteUUID)
	if _, err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if len(out.Analyses) == 0 {
		return nil, nil
	}
	return &out.Analyses[0], nil
}

// AnalysisCompetitors fetches the competitors result set.
// Only valid once the analysis reached a successful terminal state.
func (c *Client) AnalysisCompetitors(ctx context.Context, uuid string) (*CompetitorReport, error) {
	var out CompetitorReport
	if _, err := c.get(ctx, fmt.Sprintf("/analysis/%s/competitors", uuid), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalysisKeywords fetches the keywords result set.
func (c *Client) AnalysisKeywords(ctx context.Context, uuid string) ([]Keyword, error) {
	var out struct {
		Keywords []Keyword `json:"keywords"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("/analysis/%s/keywords", uuid), &out); err != nil {
		return nil, err
	}
	return out.Keywords, nil
}

// AnalysisSources fetches the cited-sources result set.
func (c *Client) AnalysisSources(ctx context.Context, uuid string) ([]Source, error) {
	var out struct {
		Sources []Source `json:"sources"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("/analysis/%s/sources", uuid), &out); err != nil {
		return nil, err
	}
	return out.Sources, nil
}

// AnalysisResponses fetches the raw LLM responses of an analysis.
func (c *Client) AnalysisResponses(ctx context.Context, uuid string) ([]RawResponse, error) {
	var out struct {
		Responses []RawResponse `json:"responses"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("/analysis/%s/responses", uuid), &out); err != nil {
		return nil, err
	}
	return out.Responses, nil
}

// GenerateContent produces a blog post from a terminal analysis.
// Billable; priced per call.
func (c *Client) GenerateContent(ctx context.Context, analysisUUID string) (content string, creditsUsed int, err error) {
	var out struct {
		Content     string `json:"content"`
		CreditsUsed int    `json:"credits_used"`
	}
	path := fmt.Sprintf("/analysis/%s/content", analysisUUID)
	if _, err := c.post(ctx, path, map[string]string{}, &out); err != nil {
		return "", 0, err
	}
	return out.Content, out.CreditsUsed, nil
}
