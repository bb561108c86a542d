package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/venture-compass/internal/analytics"
)

// InsertEngineEvent appends one analytics event to the engine event log
func (db *DB) InsertEngineEvent(ctx context.Context, event analytics.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO engine_events (category, event_type, payload)
		 VALUES ($1, $2, $3)`,
		event.Category, event.Type, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert engine event: %w", err)
	}
	return nil
}
