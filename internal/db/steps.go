package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/venture-compass/internal/types"
)

// stepColumns is the shared select list for full step rows, aggregating
// prerequisite IDs into an array per step.
const stepColumns = `
	s.id, s.name, s.description, s.difficulty,
	s.est_min_minutes, s.est_max_minutes,
	p.id, p.name,
	COALESCE(s.categories, '{}'),
	COALESCE(array_agg(sp.prerequisite_id) FILTER (WHERE sp.prerequisite_id IS NOT NULL), '{}')`

const stepJoins = `
	FROM steps s
	JOIN phases p ON s.phase_id = p.id
	LEFT JOIN step_prerequisites sp ON sp.step_id = s.id`

const stepGroupBy = `
	GROUP BY s.id, s.name, s.description, s.difficulty,
	         s.est_min_minutes, s.est_max_minutes, p.id, p.name,
	         s.categories, s.order_index`

func scanStep(row pgx.Row) (*types.Step, error) {
	var s types.Step
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Difficulty,
		&s.Estimate.MinMinutes, &s.Estimate.MaxMinutes,
		&s.Phase.ID, &s.Phase.Name, &s.Categories, &s.Prerequisites); err != nil {
		return nil, err
	}
	return &s, nil
}

// FetchCandidateSteps retrieves catalog steps excluding the given IDs, in
// stable catalog order. When phaseIDs is non-empty, only steps in those phases
// are returned.
func (db *DB) FetchCandidateSteps(ctx context.Context, excludeIDs, phaseIDs []uuid.UUID) ([]types.Step, error) {
	query := `SELECT` + stepColumns + stepJoins + `
	WHERE NOT (s.id = ANY($1))`
	args := []any{uuidArray(excludeIDs)}

	if len(phaseIDs) > 0 {
		query += ` AND s.phase_id = ANY($2)`
		args = append(args, phaseIDs)
	}
	query += stepGroupBy + ` ORDER BY s.order_index`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate steps: %w", err)
	}
	defer rows.Close()

	var steps []types.Step
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, *s)
	}
	return steps, rows.Err()
}

// GetStep retrieves one full step row. Returns nil when the step does not exist.
func (db *DB) GetStep(ctx context.Context, stepID uuid.UUID) (*types.Step, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT`+stepColumns+stepJoins+`
		WHERE s.id = $1`+stepGroupBy,
		stepID,
	)

	s, err := scanStep(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get step: %w", err)
	}
	return s, nil
}

// FetchStepsByID resolves step IDs to display names
func (db *DB) FetchStepsByID(ctx context.Context, ids []uuid.UUID) ([]types.StepRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name FROM steps WHERE id = ANY($1) ORDER BY order_index`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch steps by id: %w", err)
	}
	defer rows.Close()

	var refs []types.StepRef
	for rows.Next() {
		var ref types.StepRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan step ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// FetchDependents retrieves steps that list stepID among their prerequisites
func (db *DB) FetchDependents(ctx context.Context, stepID uuid.UUID) ([]types.DependentStep, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.name,
		        COALESCE(array_agg(all_sp.prerequisite_id) FILTER (WHERE all_sp.prerequisite_id IS NOT NULL), '{}')
		 FROM steps s
		 JOIN step_prerequisites sp ON sp.step_id = s.id AND sp.prerequisite_id = $1
		 LEFT JOIN step_prerequisites all_sp ON all_sp.step_id = s.id
		 GROUP BY s.id, s.name, s.order_index
		 ORDER BY s.order_index`,
		stepID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dependents: %w", err)
	}
	defer rows.Close()

	var dependents []types.DependentStep
	for rows.Next() {
		var d types.DependentStep
		if err := rows.Scan(&d.ID, &d.Name, &d.Prerequisites); err != nil {
			return nil, fmt.Errorf("failed to scan dependent step: %w", err)
		}
		dependents = append(dependents, d)
	}
	return dependents, rows.Err()
}

// uuidArray normalizes a possibly-nil slice so it binds as an empty array
// rather than NULL.
func uuidArray(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
