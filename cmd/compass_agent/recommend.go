package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/venture-compass/internal/observability"
	"github.com/jonathan/venture-compass/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank journey steps for a company",
	Long:  "Scores every not-yet-completed step against the company's progress, profile, and industry signals, and prints the top recommendations.",
	RunE:  runRecommend,
}

var (
	recommendConfigPath string
	recommendCompany    string
	recommendLimit      int
	recommendPhases     []string
	recommendFocus      []string
	recommendDays       int
	recommendJSON       bool
)

func init() {
	recommendCmd.Flags().StringVar(&recommendConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	recommendCmd.Flags().StringVarP(&recommendCompany, "company", "c", "", "Company UUID (required)")
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 0, "Maximum recommendations to return (default 5)")
	recommendCmd.Flags().StringSliceVar(&recommendPhases, "phases", nil, "Restrict to these phase UUIDs")
	recommendCmd.Flags().StringSliceVar(&recommendFocus, "focus", nil, "Additional focus areas to weight")
	recommendCmd.Flags().IntVar(&recommendDays, "days", 0, "Time constraint in workdays (0 = unconstrained)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print raw JSON instead of formatted output")

	if err := recommendCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig(recommendConfigPath)
	if err != nil {
		return err
	}
	limit := cfg.DefaultLimit
	if cmd.Flags().Changed("limit") {
		limit = recommendLimit
	}

	companyID, err := uuid.Parse(recommendCompany)
	if err != nil {
		return fmt.Errorf("invalid company UUID: %w", err)
	}

	phaseIDs, err := parseUUIDList(recommendPhases, "phases")
	if err != nil {
		return err
	}

	databaseURL, err := resolveDatabaseURL(cfg)
	if err != nil {
		return err
	}

	database, sink, eng, err := connectEngine(cmd.Context(), databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	defer sink.Flush()

	recs := eng.GetRecommendations(cmd.Context(), companyID, limit, &types.RecommendationContext{
		SelectedPhases:     phaseIDs,
		FocusAreas:         recommendFocus,
		TimeConstraintDays: recommendDays,
	})

	if recommendJSON {
		return json.NewEncoder(os.Stdout).Encode(recs)
	}

	observability.NewPrinter(os.Stdout).PrintRecommendations(recs)
	return nil
}
