package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/types"
)

// FetchProgress retrieves the company's progress records with any of the given
// statuses, most recently updated first.
func (db *DB) FetchProgress(ctx context.Context, companyID uuid.UUID, statuses []types.ProgressStatus) ([]types.ProgressRecord, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	rows, err := db.pool.Query(ctx,
		`SELECT company_id, step_id, status, updated_at
		 FROM company_progress
		 WHERE company_id = $1 AND status = ANY($2)
		 ORDER BY updated_at DESC`,
		companyID, values,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress: %w", err)
	}
	defer rows.Close()

	var records []types.ProgressRecord
	for rows.Next() {
		var r types.ProgressRecord
		var status string
		if err := rows.Scan(&r.CompanyID, &r.StepID, &status, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress record: %w", err)
		}
		r.Status = types.ProgressStatus(status)
		records = append(records, r)
	}
	return records, rows.Err()
}
