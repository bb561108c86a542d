package types

import (
	"github.com/go-playground/validator/v10"
)

// RecommendationsRequest represents the API request for ranked step recommendations.
type RecommendationsRequest struct {
	CompanyID          string   `json:"company_id" validate:"required,uuid4"`
	Limit              int      `json:"limit,omitempty" validate:"omitempty,min=0,max=50"`
	SelectedPhases     []string `json:"selected_phases,omitempty" validate:"omitempty,dive,uuid4"`
	FocusAreas         []string `json:"focus_areas,omitempty"`
	TimeConstraintDays int      `json:"time_constraint_days,omitempty" validate:"omitempty,min=0"`
}

// OptimizedPathRequest represents the API request for a time-budgeted step path.
type OptimizedPathRequest struct {
	CompanyID          string `json:"company_id" validate:"required,uuid4"`
	TimeConstraintDays int    `json:"time_constraint_days,omitempty" validate:"omitempty,min=0"`
	MaxSteps           int    `json:"max_steps,omitempty" validate:"omitempty,min=0,max=50"`
}

// AssistantSuggestionsRequest represents the API request for step assistant guidance.
type AssistantSuggestionsRequest struct {
	StepID    string `json:"step_id" validate:"required,uuid4"`
	CompanyID string `json:"company_id" validate:"required,uuid4"`
}

// Validate validates the RecommendationsRequest using the validator.
func (r *RecommendationsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OptimizedPathRequest using the validator.
func (r *OptimizedPathRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AssistantSuggestionsRequest using the validator.
func (r *AssistantSuggestionsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
