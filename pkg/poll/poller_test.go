// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package poll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RivalSee/botsee-cli/pkg/api"
)

// fakeJobs implements JobAPI with a scripted status sequence.
type fakeJobs struct {
	mu sync.Mutex

	submitErr error
	statuses  []api.AnalysisStatus // consumed one per GetAnalysis call
	pollErrs  []error              // aligned with statuses; nil entries succeed

	compErr error
	balance int

	statusCalls int
	compCalls   int
	kwCalls     int
	usageCalls  int
}

func (f *fakeJobs) StartAnalysis(_ context.Context, siteUUID string) (*api.Analysis, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &api.Analysis{UUID: "analysis-1", SiteUUID: siteUUID, Status: api.AnalysisPending}, nil
}

func (f *fakeJobs) GetAnalysis(_ context.Context, uuid string) (*api.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.statusCalls
	f.statusCalls++
	if i < len(f.pollErrs) && f.pollErrs[i] != nil {
		return nil, f.pollErrs[i]
	}
	status := api.AnalysisRunning
	if i < len(f.statuses) {
		status = f.statuses[i]
	} else if len(f.statuses) > 0 {
		status = f.statuses[len(f.statuses)-1]
	}
	return &api.Analysis{UUID: uuid, Status: status}, nil
}

func (f *fakeJobs) AnalysisCompetitors(context.Context, string) (*api.CompetitorReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compCalls++
	if f.compErr != nil {
		return nil, f.compErr
	}
	return &api.CompetitorReport{
		ByCustomerType: []api.CompetitorGroup{{CustomerTypeName: "SMB", Competitors: []api.Competitor{{Name: "Rival"}}}},
		OverallSummary: api.CompetitorSummary{TotalUniqueCompetitors: 1},
	}, nil
}

func (f *fakeJobs) AnalysisKeywords(context.Context, string) ([]api.Keyword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kwCalls++
	return []api.Keyword{{Keyword: "crm", Frequency: 4}}, nil
}

func (f *fakeJobs) Usage(context.Context) (*api.Usage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usageCalls++
	return &api.Usage{Balance: f.balance}, nil
}

func fastOptions() Options {
	return Options{Interval: time.Millisecond, MaxAttempts: 5}
}

func TestRun_Completed(t *testing.T) {
	jobs := &fakeJobs{
		statuses: []api.AnalysisStatus{api.AnalysisPending, api.AnalysisRunning, api.AnalysisCompleted},
		balance:  12,
	}
	p := NewPoller(jobs, fastOptions(), nil)

	result, err := p.Run(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, result.Outcome)
	assert.Equal(t, "analysis-1", result.AnalysisUUID)
	assert.Equal(t, api.AnalysisCompleted, result.Status)
	assert.Equal(t, 3, result.Attempts)
	require.NotNil(t, result.Competitors)
	assert.Len(t, result.Keywords, 1)
	assert.True(t, result.BalanceKnown)
	assert.Equal(t, 12, result.Balance)
}

// TestRun_PartialCountsAsSuccess: "partial" is a usable result set.
func TestRun_PartialCountsAsSuccess(t *testing.T) {
	jobs := &fakeJobs{statuses: []api.AnalysisStatus{api.AnalysisPartial}}
	p := NewPoller(jobs, fastOptions(), nil)

	result, err := p.Run(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, result.Outcome)
	assert.Equal(t, api.AnalysisPartial, result.Status)
	assert.Equal(t, 1, jobs.compCalls)
}

// TestRun_FailedFetchesNothing verifies the failed terminal state makes
// zero auxiliary result fetches.
func TestRun_FailedFetchesNothing(t *testing.T) {
	jobs := &fakeJobs{statuses: []api.AnalysisStatus{api.AnalysisRunning, api.AnalysisFailed}}
	p := NewPoller(jobs, fastOptions(), nil)

	result, err := p.Run(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "analysis-1", result.AnalysisUUID)
	assert.Equal(t, 0, jobs.compCalls)
	assert.Equal(t, 0, jobs.kwCalls)
	assert.Equal(t, 0, jobs.usageCalls)
	assert.Nil(t, result.Competitors)
}

// TestRun_TimeoutKeepsIdentifier verifies the ceiling path still carries
// the job identifier for later inspection.
func TestRun_TimeoutKeepsIdentifier(t *testing.T) {
	jobs := &fakeJobs{statuses: []api.AnalysisStatus{api.AnalysisRunning}}
	p := NewPoller(jobs, fastOptions(), nil)

	result, err := p.Run(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeTimeout, result.Outcome)
	assert.Equal(t, "analysis-1", result.AnalysisUUID)
	assert.Equal(t, 5, result.Attempts)
}

// TestRun_CancellationKeepsIdentifier verifies local cancellation ends
// the wait with the identifier intact and no result fetches.
func TestRun_CancellationKeepsIdentifier(t *testing.T) {
	jobs := &fakeJobs{statuses: []api.AnalysisStatus{api.AnalysisRunning}}
	p := NewPoller(jobs, Options{Interval: time.Minute, MaxAttempts: 60}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result, err := p.Run(ctx, "site-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Equal(t, "analysis-1", result.AnalysisUUID)
	assert.Equal(t, 0, jobs.compCalls)
	assert.Less(t, time.Since(start), 5*time.Second, "cancellation must not wait out the interval")
}

// TestRun_TransientPollErrorsAbsorbed verifies a failed status check
// does not end the wait.
func TestRun_TransientPollErrorsAbsorbed(t *testing.T) {
	jobs := &fakeJobs{
		pollErrs: []error{&api.Error{Kind: api.KindTransient, Message: "connection reset"}, nil},
		statuses: []api.AnalysisStatus{api.AnalysisRunning, api.AnalysisCompleted},
	}
	p := NewPoller(jobs, fastOptions(), nil)

	result, err := p.Run(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, result.Outcome)
	assert.Equal(t, 2, result.Attempts)
}

// TestRun_SubmissionFailure is the only path that returns an error:
// without a job identifier there is nothing to report.
func TestRun_SubmissionFailure(t *testing.T) {
	jobs := &fakeJobs{submitErr: &api.Error{Kind: api.KindCreditExhausted, Message: "insufficient credits"}}
	p := NewPoller(jobs, fastOptions(), nil)

	result, err := p.Run(context.Background(), "site-1")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, jobs.statusCalls)
}

// TestRun_OnSubmitBeforeWait verifies the identifier reaches the caller
// before the first status check.
func TestRun_OnSubmitBeforeWait(t *testing.T) {
	jobs := &fakeJobs{statuses: []api.AnalysisStatus{api.AnalysisCompleted}}
	var seen string
	var callsAtSubmit int
	p := NewPoller(jobs, Options{
		Interval:    time.Millisecond,
		MaxAttempts: 5,
		OnSubmit: func(uuid string) {
			seen = uuid
			callsAtSubmit = jobs.statusCalls
		},
	}, nil)

	_, err := p.Run(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Equal(t, "analysis-1", seen)
	assert.Equal(t, 0, callsAtSubmit)
}

// TestRun_OnPollObservesStatuses verifies the hook sees each successful
// status read, in order.
func TestRun_OnPollObservesStatuses(t *testing.T) {
	jobs := &fakeJobs{
		statuses: []api.AnalysisStatus{api.AnalysisPending, api.AnalysisRunning, api.AnalysisCompleted},
	}
	var observed []api.AnalysisStatus
	p := NewPoller(jobs, Options{
		Interval:    time.Millisecond,
		MaxAttempts: 5,
		OnPoll: func(_ int, status api.AnalysisStatus) {
			observed = append(observed, status)
		},
	}, nil)

	_, err := p.Run(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Equal(t, []api.AnalysisStatus{api.AnalysisPending, api.AnalysisRunning, api.AnalysisCompleted}, observed)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "completed", OutcomeCompleted.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "timeout", OutcomeTimeout.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
