package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/venture-compass/internal/observability"
)

var relationshipsCmd = &cobra.Command{
	Use:   "relationships",
	Short: "Show the relationship graph around a step",
	Long:  "Lists prerequisite, dependent, and related edges for a step, optionally expanded over multiple hops.",
	RunE:  runRelationships,
}

var (
	relationshipsConfigPath string
	relationshipsStep       string
	relationshipsDepth      int
	relationshipsJSON       bool
)

func init() {
	relationshipsCmd.Flags().StringVar(&relationshipsConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	relationshipsCmd.Flags().StringVarP(&relationshipsStep, "step", "s", "", "Step UUID (required)")
	relationshipsCmd.Flags().IntVarP(&relationshipsDepth, "depth", "d", 0, "Expansion depth in hops (default 1)")
	relationshipsCmd.Flags().BoolVar(&relationshipsJSON, "json", false, "Print raw JSON instead of formatted output")

	if err := relationshipsCmd.MarkFlagRequired("step"); err != nil {
		panic(fmt.Sprintf("failed to mark step flag as required: %v", err))
	}

	rootCmd.AddCommand(relationshipsCmd)
}

func runRelationships(cmd *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig(relationshipsConfigPath)
	if err != nil {
		return err
	}
	depth := cfg.MaxDepth
	if cmd.Flags().Changed("depth") {
		depth = relationshipsDepth
	}

	stepID, err := uuid.Parse(relationshipsStep)
	if err != nil {
		return fmt.Errorf("invalid step UUID: %w", err)
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

	edges := eng.GetStepRelationships(cmd.Context(), stepID, depth)

	if relationshipsJSON {
		return json.NewEncoder(os.Stdout).Encode(edges)
	}

	observability.NewPrinter(os.Stdout).PrintRelationships(edges)
	return nil
}
