// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

/*
Package cascade realizes a fully-populated site from one declarative
request.

# Problem Statement

Setting up a site for competitive analysis requires a strict dependency
chain of billable generation calls:

	Site ──► Customer Types ──► Personas per type ──► Questions per persona

Each stage depends on server-issued identifiers from the previous one,
pricing differs between stages (types/personas are billed per item,
questions per call), and a failure midway must not throw away what
already succeeded.

# Solution

The Orchestrator walks the chain sequentially with a partial-success
ledger:

	┌─────────────────────────────────────────────────────────────┐
	│ 1. Validate ranges locally          ← no credit spent       │
	│ 2. Create site                      ← failure aborts all    │
	│ 3. Generate types (one batch call)                          │
	│ 4. Per type: generate personas      ← failures ledgered,    │
	│ 5. Per persona: generate questions    loop continues        │
	│ 6. Aggregate counts + fetch balance                         │
	└─────────────────────────────────────────────────────────────┘

Counts are taken from response array lengths, never from requested
counts. Generation batches are never auto-retried: the endpoints are not
idempotent and a blind retry risks duplicate billable resources. A 402
at any step halts the remaining steps immediately and surfaces the
server-reported balance.

Execution is strictly sequential so the ledger and all output ordering
are deterministic.
*/
package cascade

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/RivalSee/botsee-cli/pkg/api"
)

// -----------------------------------------------------------------------------
// Request
// -----------------------------------------------------------------------------

// Request describes the site to realize.
//
// The count ranges mirror the server's generation limits and are
// enforced locally before any network call, so malformed requests never
// spend credit.
type Request struct {
	// Domain is the website to analyze. A missing scheme defaults to
	// https.
	Domain string `validate:"required"`

	// Types is the number of customer types to generate.
	Types int `validate:"min=1,max=3"`

	// PersonasPerType is the number of personas per customer type.
	PersonasPerType int `validate:"min=1,max=3"`

	// QuestionsPerPersona is the number of questions per persona.
	QuestionsPerPersona int `validate:"min=3,max=10"`
}

var validate = validator.New()

// Validate checks the request ranges locally.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &api.Error{
			Kind:        api.KindInvalidInput,
			Message:     "Invalid generation counts",
			Detail:      err.Error(),
			Remediation: "Use --types 1-3, --personas 1-3, --questions 3-10",
		}
	}
	return nil
}

// NormalizeDomain ensures the domain carries a scheme.
func NormalizeDomain(domain string) string {
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return domain
	}
	return "https://" + domain
}

// -----------------------------------------------------------------------------
// Ledger and Report
// -----------------------------------------------------------------------------

// Stage identifies which cascade step a ledger entry belongs to.
type Stage string

const (
	StageSite      Stage = "site"
	StageTypes     Stage = "customer_types"
	StagePersonas  Stage = "personas"
	StageQuestions Stage = "questions"
)

// Warning records one failed generation batch. The cascade continues
// past it; re-running the batch is left to the operator because a blind
// retry could duplicate resources.
type Warning struct {
	// Stage is the cascade step that failed.
	Stage Stage

	// ParentUUID identifies the resource the batch belonged to.
	ParentUUID string

	// ParentName is the human-readable parent, when known.
	ParentName string

	// Message is the sanitized failure description.
	Message string
}

// Report is the stable snapshot of what the cascade actually created.
//
// ItemsCreated-style counters (TypesCreated, PersonasCreated,
// QuestionsCreated) are derived from response array lengths.
// GenerationCalls counts billable calls independently, because question
// pricing is per call while type/persona pricing is per item; neither
// counter may be derived from the other.
type Report struct {
	// ID is a client-side identifier for this cascade run.
	ID string

	// Site is the created site.
	Site *api.Site

	// Domain is the normalized domain the site was created for.
	Domain string

	// CustomerTypes are the generated types, in server batch order.
	CustomerTypes []api.CustomerType

	// Personas are the generated personas, flattened per-type then
	// per-persona in submission order.
	Personas []api.Persona

	TypesCreated     int
	PersonasCreated  int
	QuestionsCreated int

	// GenerationCalls is the number of billable generation calls made.
	GenerationCalls int

	// Warnings is the partial-failure ledger, in submission order.
	Warnings []Warning

	// Halted is set when a 402 stopped the cascade before all steps
	// ran. What was created up to that point is still reported.
	Halted bool

	// Balance is the post-cascade credit balance. When Halted, it is
	// the balance from the 402 error body.
	Balance int

	// BalanceKnown reports whether Balance carries a server value.
	BalanceKnown bool
}

// -----------------------------------------------------------------------------
// Orchestrator
// -----------------------------------------------------------------------------

// Generator is the slice of the API gateway the cascade consumes.
// *api.Client satisfies it; tests substitute a fake.
type Generator interface {
	CreateSite(ctx context.Context, url string) (*api.Site, error)
	GenerateCustomerTypes(ctx context.Context, siteUUID string, count int) ([]api.CustomerType, error)
	GeneratePersonas(ctx context.Context, typeUUID string, count int) ([]api.Persona, error)
	GenerateQuestions(ctx context.Context, personaUUID string, count int) ([]api.Question, error)
	Usage(ctx context.Context) (*api.Usage, error)
}

var _ Generator = (*api.Client)(nil)

// Orchestrator sequences the resource cascade.
type Orchestrator struct {
	gen Generator
	log *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given gateway.
func NewOrchestrator(gen Generator, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{gen: gen, log: log}
}

// Run executes the cascade.
//
// # Description
//
// Realizes a fully-populated site per the algorithm in the package doc.
// The returned error is non-nil only for fatal outcomes: invalid input
// or a failed site creation, after which nothing downstream is
// attempted. Generation-batch failures are collected in Report.Warnings
// and do not fail the run; a 402 halts remaining steps and sets
// Report.Halted.
//
// # Inputs
//
//   - ctx: cancellation for the whole cascade
//   - req: declarative description of the site to realize
//
// # Outputs
//
//   - *Report: stable snapshot of what was created; nil on fatal error
//   - error: fatal outcome only
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	domain := NormalizeDomain(req.Domain)

	report := &Report{
		ID:     uuid.NewString(),
		Domain: domain,
	}

	// Step 2: create the site. A site with zero customer types is
	// useless, so this failure aborts the whole cascade.
	site, err := o.gen.CreateSite(ctx, domain)
	if err != nil {
		o.log.Error("site creation failed", "domain", domain, "kind", api.KindOf(err).String())
		return nil, err
	}
	report.Site = site
	o.log.Info("site created", "cascade_id", report.ID, "site_uuid", site.UUID)

	// Step 3: one batched customer-type call. Priced per item, so one
	// call for N types costs the same as N calls for one.
	types, err := o.gen.GenerateCustomerTypes(ctx, site.UUID, req.Types)
	report.GenerationCalls++
	if err != nil {
		report.Warnings = append(report.Warnings, Warning{
			Stage:      StageTypes,
			ParentUUID: site.UUID,
			Message:    err.Error(),
		})
		if o.halt(report, err) {
			return report, nil
		}
		// Nothing downstream can run without type identifiers, but the
		// site itself was created; report it rather than failing.
		o.finishBalance(ctx, report)
		return report, nil
	}
	report.CustomerTypes = types
	report.TypesCreated = len(types)

	// Step 4: one batched persona call per type, in batch order.
	for _, ct := range types {
		personas, err := o.gen.GeneratePersonas(ctx, ct.UUID, req.PersonasPerType)
		report.GenerationCalls++
		if err != nil {
			report.Warnings = append(report.Warnings, Warning{
				Stage:      StagePersonas,
				ParentUUID: ct.UUID,
				ParentName: ct.Name,
				Message:    err.Error(),
			})
			if o.halt(report, err) {
				return report, nil
			}
			continue
		}
		report.Personas = append(report.Personas, personas...)
		report.PersonasCreated += len(personas)
	}

	// Step 5: one batched question call per persona, preserving the
	// flattened per-type then per-persona order from step 4.
	for _, p := range report.Personas {
		questions, err := o.gen.GenerateQuestions(ctx, p.UUID, req.QuestionsPerPersona)
		report.GenerationCalls++
		if err != nil {
			report.Warnings = append(report.Warnings, Warning{
				Stage:      StageQuestions,
				ParentUUID: p.UUID,
				ParentName: p.Name,
				Message:    err.Error(),
			})
			if o.halt(report, err) {
				return report, nil
			}
			continue
		}
		report.QuestionsCreated += len(questions)
	}

	o.finishBalance(ctx, report)
	o.log.Info("cascade complete",
		"cascade_id", report.ID,
		"types", report.TypesCreated,
		"personas", report.PersonasCreated,
		"questions", report.QuestionsCreated,
		"calls", report.GenerationCalls,
		"warnings", len(report.Warnings),
	)
	return report, nil
}

// halt checks for credit exhaustion. On 402 it stops the cascade,
// recording the authoritative balance from the error body.
func (o *Orchestrator) halt(report *Report, err error) bool {
	if !api.IsCreditExhausted(err) {
		return false
	}
	report.Halted = true
	if balance, ok := api.BalanceOf(err); ok {
		report.Balance = balance
		report.BalanceKnown = true
	}
	o.log.Warn("cascade halted: credits exhausted", "cascade_id", report.ID)
	return true
}

// finishBalance fetches the post-cascade balance. Best effort: a failed
// usage read leaves BalanceKnown false rather than failing the cascade.
func (o *Orchestrator) finishBalance(ctx context.Context, report *Report) {
	usage, err := o.gen.Usage(ctx)
	if err != nil {
		o.log.Warn("could not fetch post-cascade balance", "error", err.Error())
		return
	}
	report.Balance = usage.Balance
	report.BalanceKnown = true
}

// Summary renders the one-line aggregate used in logs and tests.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d type(s), %d persona(s), %d question(s) in %d call(s)",
		r.TypesCreated, r.PersonasCreated, r.QuestionsCreated, r.GenerationCalls)
}
