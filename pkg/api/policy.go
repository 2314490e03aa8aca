// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package api

import (
	"context"
	"net/http"
	"time"
)

// -----------------------------------------------------------------------------
// Credit/Retry Policy
// -----------------------------------------------------------------------------

// CallClass distinguishes idempotent reads from resource-creating calls.
//
// Creation calls are never auto-retried: the remote generation endpoints
// are not idempotent, and a blind retry risks duplicate billable
// resources.
type CallClass int

const (
	// ReadOnly marks idempotent GET calls.
	ReadOnly CallClass = iota

	// Mutating marks creation, update, and delete calls.
	Mutating
)

const (
	// maxTransientRetries bounds extra attempts for read-only calls
	// after a transient (network/timeout) failure.
	maxTransientRetries = 2

	// maxServerRetries bounds extra attempts for read-only calls
	// after a 5xx response.
	maxServerRetries = 1

	// retryDelay is the pause between retry attempts.
	retryDelay = 2 * time.Second
)

// Retryable is the single decision function consumed by both the
// cascade orchestrator and the analysis poller.
//
// # Description
//
// Classifies a failed call and decides whether attempt+1 may proceed:
//
//   - CreditExhausted: never retried; the server balance must be
//     surfaced immediately
//   - Transient: retried up to maxTransientRetries, read-only calls only
//   - Rejected (4xx other than 402): never retried
//   - RemoteFailure (5xx): retried once, read-only calls only
//
// # Inputs
//
//   - err: the failure from Invoke
//   - class: whether the call is idempotent
//   - attempt: zero-based index of the attempt that just failed
//
// # Outputs
//
//   - bool: true when the caller should retry
func Retryable(err error, class CallClass, attempt int) bool {
	if class != ReadOnly {
		return false
	}
	switch KindOf(err) {
	case KindTransient:
		return attempt < maxTransientRetries
	case KindRemoteFailure:
		return attempt < maxServerRetries
	default:
		return false
	}
}

// do performs an authenticated call under the retry policy and decodes
// the response body into out.
//
// Mutating calls go through unchanged: one attempt, surfaced verbatim.
func (c *Client) do(ctx context.Context, method, path string, payload, out any, class CallClass) (*Response, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	var resp *Response
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = c.Invoke(ctx, method, path, payload)
		if err == nil {
			break
		}
		if !Retryable(err, class, attempt) {
			return nil, err
		}
		c.log.Debug("retrying read-only call",
			"path", path,
			"attempt", attempt+1,
			"kind", KindOf(err).String(),
		)
		select {
		case <-ctx.Done():
			return nil, err
		case <-time.After(retryDelay):
		}
	}

	if err := resp.Decode(out); err != nil {
		return nil, err
	}
	return resp, nil
}

// get performs an authenticated, retryable GET.
func (c *Client) get(ctx context.Context, path string, out any) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, out, ReadOnly)
}

// post performs an authenticated, non-retried POST.
func (c *Client) post(ctx context.Context, path string, payload, out any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, payload, out, Mutating)
}

// put performs an authenticated, non-retried PUT.
func (c *Client) put(ctx context.Context, path string, payload, out any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, payload, out, Mutating)
}

// del performs an authenticated, non-retried DELETE.
func (c *Client) del(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, Mutating)
}
