// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package api provides the BotSee API gateway client.
//
// All entities here are server-owned; the client holds ephemeral,
// non-authoritative copies keyed by server-issued UUIDs.
package api

// -----------------------------------------------------------------------------
// Resource Entities
// -----------------------------------------------------------------------------

// Site is a website registered for competitive analysis.
type Site struct {
	UUID        string `json:"uuid"`
	URL         string `json:"url"`
	ProductName string `json:"product_name,omitempty"`
}

// CustomerType is a market segment of a Site. Archivable (soft-delete).
type CustomerType struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Persona is a buyer profile within a CustomerType. Archivable.
type Persona struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Question is a research prompt attached to a Persona. Hard-deletable.
type Question struct {
	UUID string `json:"uuid"`
	Text string `json:"text"`
}

// -----------------------------------------------------------------------------
// Analysis
// -----------------------------------------------------------------------------

// AnalysisStatus is the server-side job state.
//
// Transitions: pending -> running -> {completed, partial, failed}.
// A terminal analysis is immutable.
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisRunning   AnalysisStatus = "running"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisPartial   AnalysisStatus = "partial"
	AnalysisFailed    AnalysisStatus = "failed"
)

// Terminal reports whether the status is a terminal state.
func (s AnalysisStatus) Terminal() bool {
	switch s {
	case AnalysisCompleted, AnalysisPartial, AnalysisFailed:
		return true
	}
	return false
}

// Succeeded reports whether the status is a successful terminal state.
// Partial counts as success: the server produced a usable result set.
func (s AnalysisStatus) Succeeded() bool {
	return s == AnalysisCompleted || s == AnalysisPartial
}

// Analysis is a long-running server-side job over a Site.
type Analysis struct {
	UUID     string         `json:"uuid"`
	SiteUUID string         `json:"site_uuid,omitempty"`
	Status   AnalysisStatus `json:"status"`
}

// -----------------------------------------------------------------------------
// Analysis Results
// -----------------------------------------------------------------------------

// Competitor is a single competitor aggregated from LLM responses.
type Competitor struct {
	Name                 string  `json:"name"`
	AppearancePercentage float64 `json:"appearance_percentage"`
	AvgRank              float64 `json:"avg_rank"`
	Mentions             int     `json:"mentions"`
}

// CompetitorGroup groups competitors under one customer type.
type CompetitorGroup struct {
	CustomerTypeName string       `json:"customer_type_name"`
	Competitors      []Competitor `json:"competitors"`
}

// CompetitorSummary aggregates across all customer types.
type CompetitorSummary struct {
	TotalUniqueCompetitors int `json:"total_unique_competitors"`
	TotalResponsesAnalyzed int `json:"total_responses_analyzed"`
}

// CompetitorReport is the full competitors result set for an analysis.
type CompetitorReport struct {
	ByCustomerType []CompetitorGroup `json:"by_customer_type"`
	OverallSummary CompetitorSummary `json:"overall_summary"`
}

// Keyword is a recurring term extracted from analysis responses.
type Keyword struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

// Source is a URL cited in analysis responses.
type Source struct {
	URL                 string `json:"url"`
	Mentions            int    `json:"mentions"`
	OwnCompanyMentioned bool   `json:"own_company_mentioned"`
}

// RawResponse is one unprocessed LLM answer from an analysis run.
type RawResponse struct {
	QuestionText string `json:"question_text,omitempty"`
	Model        string `json:"model,omitempty"`
	Response     string `json:"response"`
}

// -----------------------------------------------------------------------------
// Account and Billing
// -----------------------------------------------------------------------------

// Usage is the account's credit balance snapshot.
//
// Balance is recalculated server-side after every billable call; treat a
// lower value than expected as authoritative.
type Usage struct {
	Balance   int `json:"balance"`
	SiteCount int `json:"sites_count"`
}

// Account holds account owner details.
type Account struct {
	OwnerName   string `json:"owner_name,omitempty"`
	OwnerEmail  string `json:"owner_email,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	SiteCount   int    `json:"site_count"`
}

// -----------------------------------------------------------------------------
// Signup
// -----------------------------------------------------------------------------

// SignupRequest carries optional contact details for account creation.
type SignupRequest struct {
	ContactEmail string `json:"contact_email,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
}

// Signup is a pending account-creation token.
type Signup struct {
	SetupToken string `json:"setup_token"`
	SetupURL   string `json:"setup_url"`
	StatusURL  string `json:"status_url,omitempty"`
}

// SignupState reports progress of a pending signup.
type SignupState struct {
	Status       string `json:"status"`
	APIKey       string `json:"api_key,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
}

const (
	SignupCompleted = "completed"
	SignupExpired   = "expired"
)
