// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

/*
client.go provides the HTTP transport layer for the BotSee API.

# Problem Statement

Every CLI verb ultimately becomes one or more HTTPS calls against the
BotSee API. Those calls share a set of cross-cutting concerns:

 1. Bearer-credential auth on every request
 2. A fixed request timeout so no verb hangs indefinitely
 3. Mapping HTTP status to a structured outcome the orchestrator and
    poller can make decisions on (success / credit exhausted / rejected /
    transient)
 4. Opportunistic extraction of the credit balance and update notices
    that the server piggybacks on responses

# Solution

Client is an explicit value holding the credential and base endpoint; it
is passed by reference to the orchestrator and poller. No process-wide
mutable state.

	┌───────────────────────────────────────────────────────────┐
	│                       CLI verb                            │
	├───────────────────────────────────────────────────────────┤
	│                                                           │
	│  Orchestrator / Poller                                    │
	│        │                                                  │
	│        ▼                                                  │
	│  Client.Invoke(method, path, body)                        │
	│        │  Bearer auth, 30s timeout, version tagging       │
	│        ▼                                                  │
	│  2xx → payload          402 → Error{CreditExhausted}      │
	│  4xx → Error{Rejected}  5xx → Error{RemoteFailure}        │
	│  net → Error{Transient}                                   │
	│                                                           │
	└───────────────────────────────────────────────────────────┘

# Credential Handling

The client fails fast with an Unauthenticated error when a verb needs a
credential and none is configured - no network call is made. The
credential value is never logged; error bodies that echo it back are
sanitized before surfacing.

# Related Files

  - policy.go: retry classification consumed by read-only helpers
  - resources.go, analysis.go, account.go: typed endpoint wrappers
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Version is the client version reported to the server with every
// mutating request. The server compares it against the latest release
// and piggybacks an update notice when this one is stale.
const Version = "2.0.0"

const (
	// DefaultBaseURL is the production BotSee endpoint.
	DefaultBaseURL = "https://botsee.io"

	// apiPrefix is prepended to every endpoint path.
	apiPrefix = "/v1"

	// requestTimeout bounds every API call.
	requestTimeout = 30 * time.Second
)

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// Client is the BotSee API gateway client.
//
// Stateless across invocations apart from the rate limiter; safe for
// concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger

	// update holds the newest client version the server has advertised
	// during this invocation, as a string.
	update atomic.Value
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a structured logger. The client logs request
// metadata only, never the credential or payloads.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a gateway client for the given endpoint.
//
// # Inputs
//
//   - baseURL: API endpoint; empty selects DefaultBaseURL, a trailing
//     slash is stripped
//   - apiKey: bearer credential; may be empty for unauthenticated verbs
//     such as signup
//
// # Outputs
//
//   - *Client: configured client
//
// The built-in limiter allows short bursts but keeps sustained request
// rates polite toward the remote API.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated reports whether a credential is configured.
func (c *Client) Authenticated() bool {
	return c.apiKey != ""
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UpdateAvailable returns the newer client version the server advertised
// during this invocation, or "" when the client is current.
func (c *Client) UpdateAvailable() string {
	if v, ok := c.update.Load().(string); ok {
		return v
	}
	return ""
}

// noteUpdate records an advertised newer client version from a response.
func (c *Client) noteUpdate(resp *Response) {
	if resp != nil && resp.UpdateAvailable != "" {
		c.update.Store(resp.UpdateAvailable)
	}
}

// -----------------------------------------------------------------------------
// Response Envelope
// -----------------------------------------------------------------------------

// Response is the raw outcome of a successful (2xx) API call.
type Response struct {
	// StatusCode is the HTTP status (200, 201, 202 or 204).
	StatusCode int

	// Body is the raw response body; empty for 204.
	Body []byte

	// UpdateAvailable is the newer client version the server
	// advertised, if any.
	UpdateAvailable string

	// Balance is the credit balance the server piggybacked on the
	// response body, if present.
	Balance *int
}

// Decode unmarshals the response body into out. No-op on empty bodies.
func (r *Response) Decode(out any) error {
	if out == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return &Error{
			Kind:        KindRemoteFailure,
			StatusCode:  r.StatusCode,
			Message:     "Failed to parse API response",
			Detail:      err.Error(),
			Remediation: "This may indicate a client/server version mismatch; check for updates with: botsee update",
		}
	}
	return nil
}

// envelope is the subset of every response body the transport inspects.
type envelope struct {
	Balance              *int   `json:"balance"`
	SkillUpdateAvailable string `json:"skill_update_available"`
	ErrorMsg             string `json:"error"`
}

// -----------------------------------------------------------------------------
// Invoke
// -----------------------------------------------------------------------------

// Invoke performs one API call and maps the result to a structured
// outcome.
//
// # Description
//
// Attaches the bearer credential, serializes payload as JSON (tagging it
// with the client version), and classifies the result:
//
//   - 2xx → *Response
//   - 402 → Error{Kind: KindCreditExhausted, Balance: from error body}
//   - other 4xx → Error{Kind: KindRejected}
//   - 5xx → Error{Kind: KindRemoteFailure}
//   - timeout / connection failure → Error{Kind: KindTransient}
//
// # Inputs
//
//   - ctx: cancellation and deadline
//   - method: HTTP method
//   - path: endpoint path relative to /v1 (e.g. "/sites")
//   - payload: request body, or nil for body-less calls
//
// # Outputs
//
//   - *Response: on any 2xx status
//   - error: *Error with the outcome kind otherwise
//
// Side effects: none beyond the network call. The client is stateless
// across invocations.
func (c *Client) Invoke(ctx context.Context, method, path string, payload any) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{
			Kind:    KindTransient,
			Message: "Request cancelled",
			Detail:  err.Error(),
		}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := tagVersion(payload)
		if err != nil {
			return nil, &Error{
				Kind:    KindInvalidInput,
				Message: "Failed to encode request body",
				Detail:  err.Error(),
			}
		}
		body = bytes.NewReader(encoded)
	}

	url := c.baseURL + apiPrefix + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &Error{
			Kind:    KindInvalidInput,
			Message: "Failed to build request",
			Detail:  err.Error(),
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{
				Kind:        KindTransient,
				Message:     "Request cancelled",
				Detail:      ctx.Err().Error(),
				Remediation: "Run the command again",
			}
		}
		return nil, &Error{
			Kind:        KindTransient,
			Message:     "Cannot reach the BotSee API",
			Detail:      err.Error(),
			Remediation: fmt.Sprintf("Check your network connection and that %s is reachable", c.baseURL),
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &Error{
			Kind:    KindTransient,
			Message: "Failed to read API response",
			Detail:  err.Error(),
		}
	}

	var env envelope
	_ = json.Unmarshal(raw, &env) // best effort; bodies may be empty

	c.log.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return &Response{
			StatusCode:      resp.StatusCode,
			Body:            raw,
			UpdateAvailable: env.SkillUpdateAvailable,
			Balance:         env.Balance,
		}, nil

	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, &Error{
			Kind:        KindCreditExhausted,
			StatusCode:  resp.StatusCode,
			Message:     "Insufficient credits",
			Detail:      sanitizeErrorBody(raw, c.apiKey),
			Remediation: "Top up credits at https://botsee.io/billing, or re-run with smaller --types/--personas/--questions counts",
			Balance:     env.Balance,
		}

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		e := &Error{
			Kind:       KindRejected,
			StatusCode: resp.StatusCode,
			Message:    "The API rejected the request",
			Detail:     sanitizeErrorBody(raw, c.apiKey),
			Balance:    env.Balance,
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			e.Message = "Authentication failed"
			e.Remediation = "Run: botsee signup"
		}
		return nil, e

	default:
		return nil, &Error{
			Kind:        KindRemoteFailure,
			StatusCode:  resp.StatusCode,
			Message:     "The API reported a server error",
			Detail:      sanitizeErrorBody(raw, c.apiKey),
			Remediation: "Wait a moment and run the command again",
			Balance:     env.Balance,
		}
	}
}

// requireAuth returns an Unauthenticated error when no credential is
// configured. Called by every authenticated wrapper before Invoke so the
// failure never costs a network round trip.
func (c *Client) requireAuth() error {
	if c.apiKey != "" {
		return nil
	}
	return &Error{
		Kind:        KindUnauthenticated,
		Message:     "No BotSee credential configured",
		Remediation: "Run: botsee signup",
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// tagVersion serializes payload and splices the client version into
// object bodies. Non-object payloads pass through unchanged.
func tagVersion(payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(encoded)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return encoded, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return encoded, nil
	}
	obj["SKILL_VER"] = Version
	return json.Marshal(obj)
}

// sanitizeErrorBody strips the credential from error bodies before they
// can reach logs or the terminal.
func sanitizeErrorBody(raw []byte, apiKey string) string {
	body := string(raw)
	if apiKey != "" && strings.Contains(body, apiKey) {
		body = strings.ReplaceAll(body, apiKey, "[REDACTED]")
	}
	if strings.Contains(strings.ToLower(body), "api_key") {
		return "Authentication failed"
	}
	return body
}
