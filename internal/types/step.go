// Package types defines the core data structures shared across the recommendation engine.
package types

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStatus represents the state of a company's work on a step
type ProgressStatus string

// Known progress statuses
const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
	StatusSkipped    ProgressStatus = "skipped"
)

// Phase is a named stage grouping of steps (e.g. "Ideation", "Growth")
type Phase struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TimeEstimate holds the estimated time range for a step in minutes
type TimeEstimate struct {
	MinMinutes int `json:"min_minutes"`
	MaxMinutes int `json:"max_minutes"`
}

// AverageMinutes returns the midpoint of the estimated time range
func (t TimeEstimate) AverageMinutes() float64 {
	return float64(t.MinMinutes+t.MaxMinutes) / 2
}

// Step is a discrete unit of work in a guided company journey.
// Steps are immutable snapshots fetched per request; the engine never mutates them.
type Step struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Difficulty    int          `json:"difficulty"`
	Estimate      TimeEstimate `json:"estimated_time"`
	Phase         Phase        `json:"phase"`
	Prerequisites []uuid.UUID  `json:"prerequisite_steps,omitempty"`
	Categories    []string     `json:"categories,omitempty"`
}

// StepRef is a lightweight id-and-name reference to a step, used for name
// resolution on relationship edges.
type StepRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DependentStep is a step that lists another step among its prerequisites
type DependentStep struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Prerequisites []uuid.UUID `json:"prerequisite_steps,omitempty"`
}

// RelatedStep is a step surfaced by the similarity lookup
type RelatedStep struct {
	ID   uuid.UUID `json:"step_id"`
	Name string    `json:"step_name"`
}

// ProgressRecord is one (company, step) progress row
type ProgressRecord struct {
	CompanyID uuid.UUID      `json:"company_id"`
	StepID    uuid.UUID      `json:"step_id"`
	Status    ProgressStatus `json:"status"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CompletedIDs extracts the set of step IDs with completed status from progress records
func CompletedIDs(records []ProgressRecord) map[uuid.UUID]bool {
	completed := make(map[uuid.UUID]bool)
	for _, r := range records {
		if r.Status == StatusCompleted {
			completed[r.StepID] = true
		}
	}
	return completed
}

// StepIDs returns the step IDs of all given progress records, preserving order
func StepIDs(records []ProgressRecord) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.StepID)
	}
	return ids
}
