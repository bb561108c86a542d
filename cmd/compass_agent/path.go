package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/venture-compass/internal/engine"
	"github.com/jonathan/venture-compass/internal/observability"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Build an optimized step path for a company",
	Long:  "Builds a dependency-respecting sequence of remaining steps, optionally trimmed to a time budget in workdays.",
	RunE:  runPath,
}

var (
	pathConfigPath string
	pathCompany    string
	pathDays       int
	pathMaxSteps   int
	pathJSON       bool
)

func init() {
	pathCmd.Flags().StringVar(&pathConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pathCmd.Flags().StringVarP(&pathCompany, "company", "c", "", "Company UUID (required)")
	pathCmd.Flags().IntVar(&pathDays, "days", 0, "Time constraint in workdays (0 = unconstrained)")
	pathCmd.Flags().IntVar(&pathMaxSteps, "max-steps", 0, "Maximum steps in the path (default 10)")
	pathCmd.Flags().BoolVar(&pathJSON, "json", false, "Print raw JSON instead of formatted output")

	if err := pathCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}

	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig(pathConfigPath)
	if err != nil {
		return err
	}
	maxSteps := cfg.DefaultMaxSteps
	if cmd.Flags().Changed("max-steps") {
		maxSteps = pathMaxSteps
	}

	companyID, err := uuid.Parse(pathCompany)
	if err != nil {
		return fmt.Errorf("invalid company UUID: %w", err)
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

	path := eng.GetOptimizedPath(cmd.Context(), companyID, engine.PathOptions{
		TimeConstraintDays: pathDays,
		MaxSteps:           maxSteps,
	})

	if pathJSON {
		return json.NewEncoder(os.Stdout).Encode(path)
	}

	observability.NewPrinter(os.Stdout).PrintOptimizedPath(path)
	return nil
}
