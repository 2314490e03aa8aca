// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

/*
client_test.go covers the HTTP transport layer.

# Testing Strategy

Tests use httptest servers that replay canned BotSee responses:
  - Status-to-outcome mapping for every class (2xx/402/401/4xx/5xx)
  - Balance extraction from both success and error envelopes
  - Credential sanitization of error bodies
  - Version tagging of request payloads
  - Update-notice capture from response envelopes

All tests run in isolation with no real network access.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testKey = "bsk_test_0123456789abcdef"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, testKey)
}

func TestNewClient_DefaultsBaseURL(t *testing.T) {
	c := NewClient("", testKey)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}

	c = NewClient("https://staging.botsee.io/", testKey)
	if c.BaseURL() != "https://staging.botsee.io" {
		t.Errorf("BaseURL = %q, want trailing slash stripped", c.BaseURL())
	}
}

func TestInvoke_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+testKey {
			t.Errorf("Authorization = %q, want bearer credential", got)
		}
		if !strings.HasPrefix(r.URL.Path, "/v1/") {
			t.Errorf("path = %q, want /v1 prefix", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance": 42, "sites": []}`))
	})

	resp, err := c.Invoke(context.Background(), http.MethodGet, "/sites", nil)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Balance == nil || *resp.Balance != 42 {
		t.Errorf("Balance = %v, want 42", resp.Balance)
	}
}

func TestInvoke_CreditExhausted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": "insufficient credits", "balance": 3}`))
	})

	_, err := c.Invoke(context.Background(), http.MethodPost, "/sites", map[string]string{"url": "https://example.com"})
	if err == nil {
		t.Fatal("Invoke() error = nil, want credit exhausted")
	}
	if !IsCreditExhausted(err) {
		t.Errorf("IsCreditExhausted = false for %v", err)
	}
	balance, known := BalanceOf(err)
	if !known || balance != 3 {
		t.Errorf("BalanceOf = (%d, %v), want (3, true)", balance, known)
	}
}

func TestInvoke_AuthFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "invalid api_key"}`))
		})

		_, err := c.Invoke(context.Background(), http.MethodGet, "/usage", nil)
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: error = %v, want *Error", status, err)
		}
		if apiErr.Kind != KindRejected {
			t.Errorf("status %d: Kind = %v, want KindRejected", status, apiErr.Kind)
		}
		if apiErr.Message != "Authentication failed" {
			t.Errorf("status %d: Message = %q", status, apiErr.Message)
		}
		if !strings.Contains(apiErr.Remediation, "signup") {
			t.Errorf("status %d: Remediation = %q, want signup pointer", status, apiErr.Remediation)
		}
	}
}

func TestInvoke_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Invoke(context.Background(), http.MethodGet, "/sites", nil)
	if KindOf(err) != KindRemoteFailure {
		t.Errorf("KindOf = %v, want KindRemoteFailure", KindOf(err))
	}
}

func TestInvoke_Transient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, testKey)
	_, err := c.Invoke(context.Background(), http.MethodGet, "/sites", nil)
	if KindOf(err) != KindTransient {
		t.Errorf("KindOf = %v, want KindTransient", KindOf(err))
	}
}

func TestInvoke_TagsPayloadVersion(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{}`))
	})

	_, err := c.Invoke(context.Background(), http.MethodPost, "/sites", map[string]string{"url": "https://example.com"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got["SKILL_VER"] != Version {
		t.Errorf("SKILL_VER = %v, want %q", got["SKILL_VER"], Version)
	}
	if got["url"] != "https://example.com" {
		t.Errorf("url = %v, lost original field", got["url"])
	}
}

func TestInvoke_CapturesUpdateNotice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"sites": [], "skill_update_available": "2.1.0"}`))
	})

	if _, err := c.Invoke(context.Background(), http.MethodGet, "/sites", nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	resp, _ := c.Invoke(context.Background(), http.MethodGet, "/sites", nil)
	if resp.UpdateAvailable != "2.1.0" {
		t.Errorf("UpdateAvailable = %q, want 2.1.0", resp.UpdateAvailable)
	}
	c.noteUpdate(resp)
	if got := c.UpdateAvailable(); got != "2.1.0" {
		t.Errorf("Client.UpdateAvailable() = %q, want 2.1.0", got)
	}
}

func TestSanitizeErrorBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "credential echoed back",
			body: `{"error": "bad key ` + testKey + `"}`,
			want: `{"error": "bad key [REDACTED]"}`,
		},
		{
			name: "api_key mention without credential",
			body: `{"error": "api_key missing"}`,
			want: "Authentication failed",
		},
		{
			name: "ordinary error body",
			body: `{"error": "site not found"}`,
			want: `{"error": "site not found"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeErrorBody([]byte(tt.body), testKey)
			if got != tt.want {
				t.Errorf("sanitizeErrorBody() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, testKey) {
				t.Error("sanitized body still contains the credential")
			}
		})
	}
}

func TestRequireAuth_FailsFastWithoutNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Usage(context.Background())
	if KindOf(err) != KindUnauthenticated {
		t.Fatalf("KindOf = %v, want KindUnauthenticated", KindOf(err))
	}
	if calls != 0 {
		t.Errorf("server saw %d calls, want 0", calls)
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnauthenticated, "UNAUTHENTICATED"},
		{KindInvalidInput, "INVALID_INPUT"},
		{KindTransient, "TRANSIENT"},
		{KindCreditExhausted, "CREDIT_EXHAUSTED"},
		{KindRejected, "REMOTE_REJECTED"},
		{KindRemoteFailure, "REMOTE_FAILURE"},
		{KindTimeout, "TIMEOUT"},
		{ErrorKind(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
