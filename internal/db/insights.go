package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/types"
)

// FetchIndustryPopularity retrieves the industry-wide completion percentile
// per step, keyed by step ID.
func (db *DB) FetchIndustryPopularity(ctx context.Context, industryID uuid.UUID) (map[uuid.UUID]float64, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT step_id, completion_percentile
		 FROM industry_step_stats
		 WHERE industry_id = $1`,
		industryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch industry popularity: %w", err)
	}
	defer rows.Close()

	table := make(map[uuid.UUID]float64)
	for rows.Next() {
		var stepID uuid.UUID
		var percentile float64
		if err := rows.Scan(&stepID, &percentile); err != nil {
			return nil, fmt.Errorf("failed to scan industry stat: %w", err)
		}
		table[stepID] = percentile
	}
	return table, rows.Err()
}

// FetchCommonSequences retrieves, per step, how frequently it has followed the
// given completed set across all companies. Keyed by the next step's ID.
func (db *DB) FetchCommonSequences(ctx context.Context, completedIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(completedIDs) == 0 {
		return map[uuid.UUID]float64{}, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT next_step_id, SUM(frequency)
		 FROM step_sequences
		 WHERE prior_step_id = ANY($1)
		 GROUP BY next_step_id`,
		completedIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch common sequences: %w", err)
	}
	defer rows.Close()

	table := make(map[uuid.UUID]float64)
	for rows.Next() {
		var stepID uuid.UUID
		var frequency float64
		if err := rows.Scan(&stepID, &frequency); err != nil {
			return nil, fmt.Errorf("failed to scan sequence row: %w", err)
		}
		table[stepID] = frequency
	}
	return table, rows.Err()
}

// FetchSimilarCompanyPatterns retrieves a similarity score per step drawn from
// behavioral patterns of peers in the same industry and stage. Steps the
// company has already touched are excluded.
func (db *DB) FetchSimilarCompanyPatterns(ctx context.Context, recentStepIDs []uuid.UUID, industryID uuid.UUID, stage string) (map[uuid.UUID]float64, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT step_id, similarity_score
		 FROM similar_company_patterns
		 WHERE industry_id = $1 AND stage = $2
		   AND NOT (step_id = ANY($3))`,
		industryID, stage, uuidArray(recentStepIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch similar company patterns: %w", err)
	}
	defer rows.Close()

	table := make(map[uuid.UUID]float64)
	for rows.Next() {
		var stepID uuid.UUID
		var similarity float64
		if err := rows.Scan(&stepID, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan pattern row: %w", err)
		}
		table[stepID] = similarity
	}
	return table, rows.Err()
}

// FetchRelatedSteps retrieves steps whose similarity to stepID meets the
// given floor, strongest matches first.
func (db *DB) FetchRelatedSteps(ctx context.Context, stepID uuid.UUID, minSimilarity float64) ([]types.RelatedStep, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT ss.related_step_id, s.name
		 FROM step_similarities ss
		 JOIN steps s ON s.id = ss.related_step_id
		 WHERE ss.step_id = $1 AND ss.similarity >= $2
		 ORDER BY ss.similarity DESC`,
		stepID, minSimilarity,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch related steps: %w", err)
	}
	defer rows.Close()

	var related []types.RelatedStep
	for rows.Next() {
		var r types.RelatedStep
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("failed to scan related step: %w", err)
		}
		related = append(related, r)
	}
	return related, rows.Err()
}
