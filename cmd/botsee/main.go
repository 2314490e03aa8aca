// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command botsee is the CLI for the BotSee competitive-intelligence
// service.
//
// # Problem Statement
//
// BotSee's value lives behind a remote API: sites, customer types,
// personas, and questions are generated server-side, and analysis jobs
// run for minutes. Users need one tool that sets up the whole resource
// tree, drives long jobs to completion, and surfaces credits and
// partial failures without forcing them to read raw HTTP responses.
//
// # Solution
//
// A cobra CLI over three layers:
//
//	┌───────────────┐
//	│  cmd/botsee   │  verbs, flags, rendering, exit codes
//	├───────────────┤
//	│  pkg/cascade  │  site → types → personas → questions
//	│  pkg/poll     │  analysis submit + fixed-interval wait
//	├───────────────┤
//	│  pkg/api      │  HTTP gateway, credit/retry policy
//	└───────────────┘
//
// Configuration (API key, active site) lives in ~/.botsee; per-project
// settings live in .context/botsee-config.json.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RivalSee/botsee-cli/cmd/botsee/config"
	"github.com/RivalSee/botsee-cli/pkg/api"
	"github.com/RivalSee/botsee-cli/pkg/logging"
	"github.com/RivalSee/botsee-cli/pkg/ux"
)

var (
	logger  *logging.Logger
	store   *config.Store
	userCfg *config.UserConfig
	client  *api.Client
)

func main() {
	defer func() {
		if logger != nil {
			logger.Close()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		renderError(err)
		os.Exit(1)
	}
}

// setup runs before every command: logger, output mode, config, client.
// Config absence is not an error here; commands that need a key check
// through requireClient.
func setup(cmd *cobra.Command, _ []string) error {
	if plainOutput {
		ux.SetPlain(true)
	}

	cfg := logging.Config{
		Level:  logging.ParseLevel(logLevel),
		LogDir: os.Getenv("BOTSEE_LOG_DIR"),
	}
	if verbose || os.Getenv("BOTSEE_DEBUG") != "" {
		cfg.Level = logging.LevelDebug
	}
	var err error
	logger, err = logging.New(cfg)
	if err != nil {
		// A broken log directory should not block the command itself.
		logger = logging.Default()
		logger.Warn("file logging disabled", "error", err)
	}

	store, err = config.NewStore()
	if err != nil {
		return err
	}
	userCfg, err = store.LoadUser()
	if err != nil {
		return err
	}

	apiKey := ""
	if userCfg != nil {
		apiKey = userCfg.APIKey
	}
	base := os.Getenv("BOTSEE_BASE_URL")
	client = api.NewClient(base, apiKey, api.WithLogger(logger.Slog()))

	logger.Debug("cli ready",
		"command", cmd.Name(),
		"configured", userCfg != nil,
		"key_present", apiKey != "")
	return nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM. Local
// cancellation stops the wait, not the remote job.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// requireClient fails fast when no API key is configured, before any
// network traffic.
func requireClient() error {
	if client.Authenticated() {
		return nil
	}
	return &api.Error{
		Kind:        api.KindUnauthenticated,
		Message:     "No API key configured",
		Remediation: "Run: botsee signup",
	}
}

// activeSiteUUID resolves an explicit UUID argument against the saved
// active site.
func activeSiteUUID(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if userCfg != nil && userCfg.SiteUUID != "" {
		return userCfg.SiteUUID, nil
	}
	return "", &api.Error{
		Kind:        api.KindInvalidInput,
		Message:     "No active site",
		Remediation: "Run: botsee setup <domain>, or pass a site UUID",
	}
}

// notifyUpdate prints the new-version notice captured from response
// envelopes during this invocation.
func notifyUpdate() {
	v := client.UpdateAvailable()
	if v == "" {
		return
	}
	ux.Info("Update available: BotSee %s", v)
	ux.Muted("Run: botsee update")
}

// renderError prints a failure with its remediation when one exists.
// Raw credentials never reach this path; the gateway sanitizes bodies.
func renderError(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if logger != nil {
			logger.Debug("command failed", "kind", apiErr.Kind.String(), "error", apiErr.FullError())
		}
		ux.Error("%s", apiErr.Message)
		if apiErr.Detail != "" {
			ux.Muted("%s", apiErr.Detail)
		}
		if apiErr.Remediation != "" {
			fmt.Fprintln(os.Stderr, apiErr.Remediation)
		}
		return
	}
	ux.Error("%v", err)
}
