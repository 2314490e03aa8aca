// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

/*
Package poll submits an analysis job and observes it to a terminal
state.

# Problem Statement

An analysis runs server-side for minutes. The client must wait for it
without ever losing the job identifier: a timeout or a Ctrl+C mid-wait
still leaves a valid, billed job on the server that the operator will
want to inspect later.

# Solution

The Poller returns the identifier to its caller (via the OnSubmit hook
and the Result) before the wait loop starts, then polls at a fixed
interval with a bounded attempt count:

	submit ──► id visible ──► poll ──► running?  sleep, poll again
	                            │
	                            ├─ completed/partial ─► fetch results
	                            ├─ failed ────────────► stop, no fetches
	                            ├─ attempt ceiling ───► Timeout + id
	                            └─ ctx cancelled ─────► Cancelled + id

Local cancellation never cancels the remote job; it only stops the local
wait. Transient poll errors are absorbed by the loop: the attempt
ceiling, not the error count, bounds the wait.
*/
package poll

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RivalSee/botsee-cli/pkg/api"
)

const (
	// DefaultInterval is the fixed delay between polls.
	DefaultInterval = 10 * time.Second

	// DefaultMaxAttempts bounds the wait to a 10 minute ceiling at the
	// default interval.
	DefaultMaxAttempts = 60
)

// -----------------------------------------------------------------------------
// Result
// -----------------------------------------------------------------------------

// Outcome is the local classification of how the wait ended.
type Outcome int

const (
	// OutcomeCompleted means the job reached completed or partial and
	// results were fetched.
	OutcomeCompleted Outcome = iota

	// OutcomeFailed means the job reached the failed terminal state.
	// No result fetches are attempted.
	OutcomeFailed

	// OutcomeTimeout means the attempt ceiling was reached. The job may
	// still finish server-side; the identifier remains valid.
	OutcomeTimeout

	// OutcomeCancelled means the local wait was interrupted. The remote
	// job keeps running.
	OutcomeCancelled
)

// String returns the outcome as a stable token.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result bundles everything the presentation layer needs.
//
// AnalysisUUID is always set once submission succeeded, whatever the
// outcome; losing it on timeout or cancellation is a failure mode, not
// an acceptable simplification.
type Result struct {
	// ID is a client-side identifier for this poll run.
	ID string

	// AnalysisUUID is the server-issued job identifier.
	AnalysisUUID string

	// Outcome classifies how the wait ended.
	Outcome Outcome

	// Status is the last observed server-side status.
	Status api.AnalysisStatus

	// Competitors and Keywords are populated on OutcomeCompleted only.
	Competitors *api.CompetitorReport
	Keywords    []api.Keyword

	// Balance is the post-analysis credit balance, when known.
	Balance      int
	BalanceKnown bool

	// Attempts is the number of status polls made.
	Attempts int

	// Elapsed is the total local wait time.
	Elapsed time.Duration
}

// -----------------------------------------------------------------------------
// Poller
// -----------------------------------------------------------------------------

// JobAPI is the slice of the gateway the poller consumes.
// *api.Client satisfies it; tests substitute a fake.
type JobAPI interface {
	StartAnalysis(ctx context.Context, siteUUID string) (*api.Analysis, error)
	GetAnalysis(ctx context.Context, uuid string) (*api.Analysis, error)
	AnalysisCompetitors(ctx context.Context, uuid string) (*api.CompetitorReport, error)
	AnalysisKeywords(ctx context.Context, uuid string) ([]api.Keyword, error)
	Usage(ctx context.Context) (*api.Usage, error)
}

var _ JobAPI = (*api.Client)(nil)

// Options configures a Poller. The zero value selects the defaults.
type Options struct {
	// Interval is the fixed delay between polls.
	Interval time.Duration

	// MaxAttempts bounds the number of status polls.
	MaxAttempts int

	// OnSubmit is invoked with the job identifier as soon as submission
	// succeeds, before the wait loop starts. May be nil.
	OnSubmit func(analysisUUID string)

	// OnPoll is invoked after each successful status read with the
	// attempt count and the observed status. May be nil.
	OnPoll func(attempt int, status api.AnalysisStatus)
}

// Poller drives one analysis job to a terminal state.
type Poller struct {
	jobs JobAPI
	opts Options
	log  *slog.Logger
}

// NewPoller creates a poller over the given gateway.
func NewPoller(jobs JobAPI, opts Options, log *slog.Logger) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{jobs: jobs, opts: opts, log: log}
}

// Run submits an analysis over the site and waits for a terminal state.
//
// # Description
//
// The returned error is non-nil only when submission itself failed; once
// a job identifier exists, every path returns a Result carrying it.
// Cancel the context to stop the local wait; the remote job is
// deliberately left running.
//
// # Inputs
//
//   - ctx: cancellation for the local wait only
//   - siteUUID: the site to analyze
//
// # Outputs
//
//   - *Result: outcome bundle; nil only when submission failed
//   - error: submission failure only
func (p *Poller) Run(ctx context.Context, siteUUID string) (*Result, error) {
	analysis, err := p.jobs.StartAnalysis(ctx, siteUUID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:           uuid.NewString(),
		AnalysisUUID: analysis.UUID,
		Status:       analysis.Status,
	}

	// The identifier must be visible to the caller before any waiting
	// happens so it survives timeout and cancellation.
	p.log.Info("analysis started", "analysis_uuid", analysis.UUID, "site_uuid", siteUUID)
	if p.opts.OnSubmit != nil {
		p.opts.OnSubmit(analysis.UUID)
	}

	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	for attempt := 0; attempt < p.opts.MaxAttempts; attempt++ {
		// First status check runs immediately; later ones wait one
		// interval. Cancellation is honored between polls.
		if attempt > 0 {
			if cancelled := p.sleep(ctx); cancelled {
				result.Outcome = OutcomeCancelled
				p.log.Warn("poll cancelled locally; the analysis continues server-side",
					"analysis_uuid", result.AnalysisUUID)
				return result, nil
			}
		}

		current, err := p.jobs.GetAnalysis(ctx, result.AnalysisUUID)
		result.Attempts++
		if err != nil {
			if ctx.Err() != nil {
				result.Outcome = OutcomeCancelled
				return result, nil
			}
			// Transient poll errors do not end the wait; the attempt
			// ceiling does.
			p.log.Debug("poll attempt failed",
				"analysis_uuid", result.AnalysisUUID,
				"attempt", result.Attempts,
				"kind", api.KindOf(err).String(),
			)
			continue
		}

		result.Status = current.Status
		if p.opts.OnPoll != nil {
			p.opts.OnPoll(result.Attempts, current.Status)
		}
		if !current.Status.Terminal() {
			continue
		}

		if !current.Status.Succeeded() {
			result.Outcome = OutcomeFailed
			p.log.Error("analysis failed", "analysis_uuid", result.AnalysisUUID)
			return result, nil
		}

		p.fetchResults(ctx, result)
		result.Outcome = OutcomeCompleted
		p.log.Info("analysis finished",
			"analysis_uuid", result.AnalysisUUID,
			"status", string(result.Status),
			"attempts", result.Attempts,
		)
		return result, nil
	}

	result.Outcome = OutcomeTimeout
	p.log.Warn("poll ceiling reached; inspect the analysis later",
		"analysis_uuid", result.AnalysisUUID,
		"attempts", result.Attempts,
	)
	return result, nil
}

// fetchResults loads competitors, keywords, and the balance for a
// successful terminal state. Each fetch is best effort; a failure leaves
// the corresponding field empty rather than discarding the outcome.
func (p *Poller) fetchResults(ctx context.Context, result *Result) {
	if competitors, err := p.jobs.AnalysisCompetitors(ctx, result.AnalysisUUID); err == nil {
		result.Competitors = competitors
	} else {
		p.log.Warn("could not fetch competitors", "analysis_uuid", result.AnalysisUUID, "error", err.Error())
	}
	if keywords, err := p.jobs.AnalysisKeywords(ctx, result.AnalysisUUID); err == nil {
		result.Keywords = keywords
	} else {
		p.log.Warn("could not fetch keywords", "analysis_uuid", result.AnalysisUUID, "error", err.Error())
	}
	if usage, err := p.jobs.Usage(ctx); err == nil {
		result.Balance = usage.Balance
		result.BalanceKnown = true
	}
}

// sleep waits one interval, returning true when the context was
// cancelled. Checked between polls so Ctrl+C responds promptly.
func (p *Poller) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-time.After(p.opts.Interval):
		return false
	}
}
