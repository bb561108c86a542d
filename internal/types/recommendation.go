package types

import "github.com/google/uuid"

// RecommendationContext carries optional request-level hints for scoring and path building.
// All fields are optional; zero values mean "no constraint".
type RecommendationContext struct {
	SelectedPhases     []uuid.UUID `json:"selected_phases,omitempty"`
	FocusAreas         []string    `json:"focus_areas,omitempty"`
	TimeConstraintDays int         `json:"time_constraint_days,omitempty"`
}

// RecommendationScore is a candidate step plus its computed relevance score and reasoning.
// The score is the sum of eight non-negative factor contributions on a 1.0 base, so
// scores are monotonically comparable across calls with identical context.
type RecommendationScore struct {
	Step
	Score     float64  `json:"score"`
	Reasoning []string `json:"reasoning,omitempty"`
}

// Recommendation is the public shape returned to callers of the engine
type Recommendation struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Difficulty     int          `json:"difficulty"`
	Estimate       TimeEstimate `json:"estimated_time"`
	Phase          Phase        `json:"phase"`
	RelevanceScore float64      `json:"relevance_score"`
	Reasoning      []string     `json:"reasoning,omitempty"`
}

// ToRecommendation maps a scored step to the public recommendation shape
func (rs RecommendationScore) ToRecommendation() Recommendation {
	return Recommendation{
		ID:             rs.Step.ID,
		Name:           rs.Step.Name,
		Description:    rs.Step.Description,
		Difficulty:     rs.Step.Difficulty,
		Estimate:       rs.Step.Estimate,
		Phase:          rs.Step.Phase,
		RelevanceScore: rs.Score,
		Reasoning:      rs.Reasoning,
	}
}

// RelationshipType classifies an edge in the step-relationship graph
type RelationshipType string

// Known relationship types
const (
	RelPrerequisite RelationshipType = "prerequisite"
	RelDependent    RelationshipType = "dependent"
	RelRelated      RelationshipType = "related"
)

// StepRelationship is one directed edge in the step-relationship graph.
// Prerequisite edges point into the queried step, dependent edges point out of
// it, related edges are symmetric.
type StepRelationship struct {
	SourceID   uuid.UUID        `json:"source_id"`
	TargetID   uuid.UUID        `json:"target_id"`
	Type       RelationshipType `json:"relationship_type"`
	SourceName string           `json:"source_name,omitempty"`
	TargetName string           `json:"target_name,omitempty"`
}
