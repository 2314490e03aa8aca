// Copyright (C) 2025 RivalSee (hello@botsee.io)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	verbose     bool
	logLevel    string
	plainOutput bool

	// signup
	signupEmail   string
	signupName    string
	signupCompany string

	// setup cascade
	setupTypes     int
	setupPersonas  int
	setupQuestions int

	// resource flags
	flagSiteUUID    string
	flagName        string
	flagDescription string
	flagText        string
	flagCount       int

	rootCmd = &cobra.Command{
		Use:   "botsee",
		Short: "AI-powered competitive intelligence from the command line",
		Long: `BotSee registers your website, generates customer types, personas,
and research questions, then runs competitive analysis across AI models.`,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              runStatus, // bare "botsee" behaves like "botsee status"
	}

	// --- Account ---
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show account status and credit balance",
		RunE:  runStatus, // Defined in cmd_account.go
	}
	accountCmd = &cobra.Command{
		Use:   "account",
		Short: "Show account details (email, company)",
		RunE:  runAccount, // Defined in cmd_account.go
	}
	updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Check whether a newer BotSee version exists",
		RunE:  runUpdate, // Defined in cmd_account.go
	}
	signupCmd = &cobra.Command{
		Use:   "signup",
		Short: "Sign up for BotSee and obtain an API key",
		RunE:  runSignup, // Defined in cmd_signup.go
	}

	// --- Setup cascade ---
	setupCmd = &cobra.Command{
		Use:     "setup [domain]",
		Aliases: []string{"create-site"},
		Short:   "Create a site and generate types, personas, and questions",
		Args:    cobra.ExactArgs(1),
		RunE:    runSetup, // Defined in cmd_setup.go
	}
	configShowCmd = &cobra.Command{
		Use:   "config-show",
		Short: "Display saved workspace configuration",
		RunE:  runConfigShow, // Defined in cmd_account.go
	}

	// --- Analysis ---
	analyzeCmd = &cobra.Command{
		Use:   "analyze [site-uuid]",
		Short: "Run competitive analysis and wait for results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze, // Defined in cmd_analyze.go
	}
	contentCmd = &cobra.Command{
		Use:   "content",
		Short: "Generate a blog post from the latest analysis",
		RunE:  runContent, // Defined in cmd_analyze.go
	}

	// --- Sites ---
	listSitesCmd = &cobra.Command{
		Use:   "list-sites",
		Short: "List all sites",
		RunE:  runListSites, // Defined in cmd_resources.go
	}
	getSiteCmd = &cobra.Command{
		Use:   "get-site [uuid]",
		Short: "Get site by UUID",
		Args:  cobra.ExactArgs(1),
		RunE:  runGetSite,
	}
	archiveSiteCmd = &cobra.Command{
		Use:   "archive-site [uuid]",
		Short: "Archive a site",
		Args:  cobra.ExactArgs(1),
		RunE:  runArchiveSite,
	}
	useSiteCmd = &cobra.Command{
		Use:   "use-site [uuid]",
		Short: "Switch the active site",
		Args:  cobra.ExactArgs(1),
		RunE:  runUseSite,
	}

	// --- Customer types ---
	listTypesCmd = &cobra.Command{
		Use:   "list-types",
		Short: "List customer types for a site",
		RunE:  runListTypes,
	}
	getTypeCmd = &cobra.Command{
		Use:   "get-type [uuid]",
		Short: "Get customer type by UUID",
		Args:  cobra.ExactArgs(1),
		RunE:  runGetType,
	}
	createTypeCmd = &cobra.Command{
		Use:   "create-type [site-uuid]",
		Short: "Create a customer type manually (free)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreateType,
	}
	generateTypesCmd = &cobra.Command{
		Use:   "generate-types",
		Short: "AI-generate customer types (5 credits each)",
		RunE:  runGenerateTypes,
	}
	updateTypeCmd = &cobra.Command{
		Use:   "update-type [uuid]",
		Short: "Update a customer type",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdateType,
	}
	archiveTypeCmd = &cobra.Command{
		Use:   "archive-type [uuid]",
		Short: "Archive a customer type",
		Args:  cobra.ExactArgs(1),
		RunE:  runArchiveType,
	}

	// --- Personas ---
	listPersonasCmd = &cobra.Command{
		Use:   "list-personas [type-uuid]",
		Short: "List personas for a customer type",
		Args:  cobra.ExactArgs(1),
		RunE:  runListPersonas,
	}
	getPersonaCmd = &cobra.Command{
		Use:   "get-persona [uuid]",
		Short: "Get persona by UUID",
		Args:  cobra.ExactArgs(1),
		RunE:  runGetPersona,
	}
	createPersonaCmd = &cobra.Command{
		Use:   "create-persona [type-uuid]",
		Short: "Create a persona manually (free)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreatePersona,
	}
	generatePersonasCmd = &cobra.Command{
		Use:   "generate-personas [type-uuid]",
		Short: "AI-generate personas (5 credits each)",
		Args:  cobra.ExactArgs(1),
		RunE:  runGeneratePersonas,
	}
	updatePersonaCmd = &cobra.Command{
		Use:   "update-persona [uuid]",
		Short: "Update a persona",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdatePersona,
	}
	archivePersonaCmd = &cobra.Command{
		Use:   "archive-persona [uuid]",
		Short: "Archive a persona",
		Args:  cobra.ExactArgs(1),
		RunE:  runArchivePersona,
	}

	// --- Questions ---
	listQuestionsCmd = &cobra.Command{
		Use:   "list-questions [persona-uuid]",
		Short: "List questions for a persona",
		Args:  cobra.ExactArgs(1),
		RunE:  runListQuestions,
	}
	getQuestionCmd = &cobra.Command{
		Use:   "get-question [uuid]",
		Short: "Get question with results by UUID",
		Args:  cobra.ExactArgs(1),
		RunE:  runGetQuestion,
	}
	createQuestionCmd = &cobra.Command{
		Use:   "create-question [persona-uuid]",
		Short: "Create a question manually (free)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreateQuestion,
	}
	generateQuestionsCmd = &cobra.Command{
		Use:   "generate-questions [persona-uuid]",
		Short: "AI-generate questions (10 credits per call)",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerateQuestions,
	}
	updateQuestionCmd = &cobra.Command{
		Use:   "update-question [uuid]",
		Short: "Update a question",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdateQuestion,
	}
	deleteQuestionCmd = &cobra.Command{
		Use:   "delete-question [uuid]",
		Short: "Delete a question (permanent)",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteQuestion,
	}

	// --- Results ---
	resultsCompetitorsCmd = &cobra.Command{
		Use:   "results-competitors [analysis-uuid]",
		Short: "Get competitors from an analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runResultsCompetitors, // Defined in cmd_results.go
	}
	resultsKeywordsCmd = &cobra.Command{
		Use:   "results-keywords [analysis-uuid]",
		Short: "Get keywords from an analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runResultsKeywords,
	}
	resultsSourcesCmd = &cobra.Command{
		Use:   "results-sources [analysis-uuid]",
		Short: "Get sources from an analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runResultsSources,
	}
	resultsResponsesCmd = &cobra.Command{
		Use:   "results-responses [analysis-uuid]",
		Short: "Get raw model responses from an analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runResultsResponses,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Disable styled output (for scripting)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(updateCmd)

	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Contact email (optional)")
	signupCmd.Flags().StringVar(&signupName, "name", "", "Contact name (optional)")
	signupCmd.Flags().StringVar(&signupCompany, "company", "", "Company name (optional)")

	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().IntVar(&setupTypes, "types", 2, "Number of customer types (1-3)")
	setupCmd.Flags().IntVar(&setupPersonas, "personas", 2, "Personas per customer type (1-3)")
	setupCmd.Flags().IntVar(&setupQuestions, "questions", 5, "Questions per persona (3-10)")
	rootCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(contentCmd)

	rootCmd.AddCommand(listSitesCmd)
	rootCmd.AddCommand(getSiteCmd)
	rootCmd.AddCommand(archiveSiteCmd)
	rootCmd.AddCommand(useSiteCmd)

	rootCmd.AddCommand(listTypesCmd)
	listTypesCmd.Flags().StringVar(&flagSiteUUID, "site-uuid", "", "Site UUID (defaults to active site)")
	rootCmd.AddCommand(getTypeCmd)
	rootCmd.AddCommand(createTypeCmd)
	createTypeCmd.Flags().StringVar(&flagName, "name", "", "Type name")
	createTypeCmd.Flags().StringVar(&flagDescription, "description", "", "Type description")
	_ = createTypeCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(generateTypesCmd)
	generateTypesCmd.Flags().StringVar(&flagSiteUUID, "site-uuid", "", "Site UUID (defaults to active site)")
	generateTypesCmd.Flags().IntVar(&flagCount, "count", 2, "Number to generate")
	rootCmd.AddCommand(updateTypeCmd)
	updateTypeCmd.Flags().StringVar(&flagName, "name", "", "New name")
	updateTypeCmd.Flags().StringVar(&flagDescription, "description", "", "New description")
	rootCmd.AddCommand(archiveTypeCmd)

	rootCmd.AddCommand(listPersonasCmd)
	rootCmd.AddCommand(getPersonaCmd)
	rootCmd.AddCommand(createPersonaCmd)
	createPersonaCmd.Flags().StringVar(&flagName, "name", "", "Persona name")
	createPersonaCmd.Flags().StringVar(&flagDescription, "description", "", "Persona description")
	_ = createPersonaCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(generatePersonasCmd)
	generatePersonasCmd.Flags().IntVar(&flagCount, "count", 2, "Number to generate")
	rootCmd.AddCommand(updatePersonaCmd)
	updatePersonaCmd.Flags().StringVar(&flagName, "name", "", "New name")
	updatePersonaCmd.Flags().StringVar(&flagDescription, "description", "", "New description")
	rootCmd.AddCommand(archivePersonaCmd)

	rootCmd.AddCommand(listQuestionsCmd)
	rootCmd.AddCommand(getQuestionCmd)
	rootCmd.AddCommand(createQuestionCmd)
	createQuestionCmd.Flags().StringVar(&flagText, "text", "", "Question text")
	_ = createQuestionCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(generateQuestionsCmd)
	generateQuestionsCmd.Flags().IntVar(&flagCount, "count", 5, "Number to generate")
	rootCmd.AddCommand(updateQuestionCmd)
	updateQuestionCmd.Flags().StringVar(&flagText, "text", "", "New question text")
	_ = updateQuestionCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(deleteQuestionCmd)

	rootCmd.AddCommand(resultsCompetitorsCmd)
	rootCmd.AddCommand(resultsKeywordsCmd)
	rootCmd.AddCommand(resultsSourcesCmd)
	rootCmd.AddCommand(resultsResponsesCmd)
}
