// Package assistant generates step guidance text through an LLM collaborator.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/llm"
	"github.com/jonathan/venture-compass/internal/schemas"
	"github.com/jonathan/venture-compass/internal/types"
)

// Store is the read surface the assistant needs from the backing store
type Store interface {
	GetStep(ctx context.Context, stepID uuid.UUID) (*types.Step, error)
	FetchCompanyProfile(ctx context.Context, companyID uuid.UUID) (*types.CompanyProfile, error)
}

// StepGuidance is the structured assistant output for one step
type StepGuidance struct {
	Suggestions      []string `json:"suggestions"`
	GuidingQuestions []string `json:"guiding_questions"`
}

// guidanceSchema constrains the LLM's structured output
const guidanceSchema = `{
  "type": "object",
  "required": ["suggestions", "guiding_questions"],
  "properties": {
    "suggestions": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "minItems": 1,
      "maxItems": 5
    },
    "guiding_questions": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "minItems": 1,
      "maxItems": 5
    }
  },
  "additionalProperties": false
}`

// Assistant produces suggestions and guiding questions for a step
type Assistant struct {
	store  Store
	client llm.Client
}

// New creates an assistant over the given store and LLM client
func New(store Store, client llm.Client) *Assistant {
	return &Assistant{store: store, client: client}
}

// StepGuidance generates actionable suggestions and guiding questions for the
// given step, tailored to the company's profile when one exists.
func (a *Assistant) StepGuidance(ctx context.Context, stepID, companyID uuid.UUID) (*StepGuidance, error) {
	step, err := a.store.GetStep(ctx, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to load step: %w", err)
	}
	if step == nil {
		return nil, fmt.Errorf("step not found: %s", stepID)
	}

	profile, err := a.store.FetchCompanyProfile(ctx, companyID)
	if err != nil {
		// Guidance still works without a profile, just less tailored.
		profile = nil
	}

	prompt := buildGuidancePrompt(step, profile)

	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate guidance: %w", err)
	}

	if err := schemas.ValidateJSONString(guidanceSchema, raw); err != nil {
		return nil, fmt.Errorf("guidance output failed schema validation: %w", err)
	}

	var guidance StepGuidance
	if err := json.Unmarshal([]byte(raw), &guidance); err != nil {
		return nil, fmt.Errorf("failed to parse guidance output: %w", err)
	}
	return &guidance, nil
}

// buildGuidancePrompt assembles the LLM prompt for a step and optional profile
func buildGuidancePrompt(step *types.Step, profile *types.CompanyProfile) string {
	var sb strings.Builder

	sb.WriteString("You are an advisor helping a company work through a guided business journey.\n\n")
	sb.WriteString(fmt.Sprintf("Step: %s\n", step.Name))
	sb.WriteString(fmt.Sprintf("Description: %s\n", step.Description))
	sb.WriteString(fmt.Sprintf("Phase: %s\n", step.Phase.Name))
	if len(step.Categories) > 0 {
		sb.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(step.Categories, ", ")))
	}

	if profile != nil {
		sb.WriteString("\nCompany context:\n")
		sb.WriteString(fmt.Sprintf("- Stage: %s\n", profile.Stage))
		sb.WriteString(fmt.Sprintf("- Size: %s\n", profile.Size))
		sb.WriteString(fmt.Sprintf("- Business model: %s\n", profile.BusinessModel))
		if len(profile.FocusAreas) > 0 {
			sb.WriteString(fmt.Sprintf("- Focus areas: %s\n", strings.Join(profile.FocusAreas, ", ")))
		}
	}

	sb.WriteString("\nReturn JSON with two fields: \"suggestions\" (1-5 short, concrete actions ")
	sb.WriteString("for completing this step) and \"guiding_questions\" (1-5 questions the team ")
	sb.WriteString("should answer while working on it). Return only the JSON object.")

	return sb.String()
}
