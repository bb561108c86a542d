package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/analytics"
	"github.com/jonathan/venture-compass/internal/config"
	"github.com/jonathan/venture-compass/internal/db"
	"github.com/jonathan/venture-compass/internal/engine"
)

// loadEngineConfig loads the optional config file and fills unset values with
// engine defaults. Flag values take priority over the file; the caller applies
// them via cmd.Flags().Changed checks.
func loadEngineConfig(path string) (config.Config, error) {
	var cfg config.Config

	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if cfg.Verbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", path)
		}
	}

	return cfg.MergeWithDefaults(config.Config{
		Port:            8080,
		DefaultLimit:    engine.DefaultLimit,
		DefaultMaxSteps: engine.DefaultMaxSteps,
		MaxDepth:        engine.DefaultDepth,
	}), nil
}

// resolveDatabaseURL prefers the config file value, falling back to the
// DATABASE_URL environment variable.
func resolveDatabaseURL(cfg config.Config) (string, error) {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("DATABASE_URL environment variable or 'database_url' config value is required")
}

// connectEngine connects to the database and builds an engine over it.
// The caller owns closing the returned DB and must Flush the sink before
// closing so in-flight event writes land before the pool shuts down.
func connectEngine(ctx context.Context, databaseURL string) (*db.DB, *analytics.AsyncSink, *engine.Engine, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sink := analytics.NewAsyncSink(database)
	return database, sink, engine.New(database, sink), nil
}

// parseUUIDList parses a comma-separated flag value into UUIDs
func parseUUIDList(values []string, flagName string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, raw := range values {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in --%s: %s", flagName, raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
