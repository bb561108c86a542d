// Package main provides the entry point for the Venture Compass engine CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compass_agent",
	Short: "Venture Compass recommendation engine",
	Long:  "Venture Compass scores journey steps against company context, explores the step-relationship graph, and builds time-budgeted, dependency-respecting step paths, exposed via CLI and REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
