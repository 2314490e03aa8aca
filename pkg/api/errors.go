// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package api

import (
	"bytes"
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Error Taxonomy
// -----------------------------------------------------------------------------

// ErrorKind categorizes gateway failures for programmatic handling.
//
// The kinds form the full failure taxonomy shared by the cascade
// orchestrator, the analysis poller, and the CLI surface. Retry decisions
// are made exclusively from the kind (see policy.go), never from message
// text.
type ErrorKind int

const (
	// KindUnauthenticated indicates no credential is configured.
	// Detected locally; no network call is made.
	KindUnauthenticated ErrorKind = iota

	// KindInvalidInput indicates a local precondition failure
	// (range or format violation) caught before any network call.
	KindInvalidInput

	// KindTransient indicates a network-level failure: connection
	// refused, DNS failure, or request timeout. Distinct from any
	// HTTP-level rejection.
	KindTransient

	// KindCreditExhausted indicates the server rejected a billable
	// call with HTTP 402. The attached balance is authoritative.
	KindCreditExhausted

	// KindRejected indicates a non-402 4xx response. Treated as a
	// caller/input error and never retried.
	KindRejected

	// KindRemoteFailure indicates a 5xx response or a terminal
	// "failed" job state.
	KindRemoteFailure

	// KindTimeout indicates the poll ceiling was reached before the
	// remote job finished. The job identifier remains valid.
	KindTimeout
)

// String returns the kind as a stable token for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindTransient:
		return "TRANSIENT"
	case KindCreditExhausted:
		return "CREDIT_EXHAUSTED"
	case KindRejected:
		return "REMOTE_REJECTED"
	case KindRemoteFailure:
		return "REMOTE_FAILURE"
	case KindTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Error provides structured error information for gateway operations.
//
// Balance carries the server-reported credit balance when the error body
// included one (402 responses always do). It is nil when the server did
// not report a balance; callers must never substitute a locally cached
// value.
type Error struct {
	// Kind categorizes the error for retry and exit-code decisions.
	Kind ErrorKind

	// StatusCode is the HTTP status, when the error came from a response.
	StatusCode int

	// Message is a human-readable description. Never contains the
	// credential.
	Message string

	// Detail provides technical information for debugging.
	Detail string

	// Remediation suggests the next actionable step.
	Remediation string

	// Balance is the server-reported credit balance from the error
	// body, if present.
	Balance *int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// FullError returns a detailed message including remediation.
func (e *Error) FullError() string {
	var buf bytes.Buffer
	buf.WriteString(e.Error())
	if e.Detail != "" {
		buf.WriteString("\n\nDetails: ")
		buf.WriteString(e.Detail)
	}
	if e.Remediation != "" {
		buf.WriteString("\n\nTo fix:\n  ")
		buf.WriteString(e.Remediation)
	}
	return buf.String()
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// KindOf extracts the ErrorKind from an error chain.
//
// Non-gateway errors classify as KindTransient: anything that is not a
// structured response from the server is by definition a local or
// transport problem.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransient
}

// IsCreditExhausted reports whether err is an HTTP 402 outcome.
func IsCreditExhausted(err error) bool {
	return KindOf(err) == KindCreditExhausted
}

// BalanceOf returns the server-reported balance attached to err, if any.
func BalanceOf(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Balance != nil {
		return *apiErr.Balance, true
	}
	return 0, false
}
