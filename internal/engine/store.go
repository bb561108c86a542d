package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/types"
)

// Store is the read-only surface the engine consumes from the backing store.
// Every method is a pure query; the engine holds no state between calls.
type Store interface {
	// FetchProgress returns the company's progress records with any of the
	// given statuses
	FetchProgress(ctx context.Context, companyID uuid.UUID, statuses []types.ProgressStatus) ([]types.ProgressRecord, error)

	// FetchCompanyProfile returns the company's profile, or nil when absent
	FetchCompanyProfile(ctx context.Context, companyID uuid.UUID) (*types.CompanyProfile, error)

	// FetchCandidateSteps returns catalog steps excluding the given IDs,
	// optionally filtered to the given phases, in stable catalog order
	FetchCandidateSteps(ctx context.Context, excludeIDs, phaseIDs []uuid.UUID) ([]types.Step, error)

	// FetchIndustryPopularity returns the completion percentile per step for
	// the industry
	FetchIndustryPopularity(ctx context.Context, industryID uuid.UUID) (map[uuid.UUID]float64, error)

	// FetchCommonSequences returns, per step, how frequently it follows the
	// given completed set across the catalog
	FetchCommonSequences(ctx context.Context, completedIDs []uuid.UUID) (map[uuid.UUID]float64, error)

	// FetchSimilarCompanyPatterns returns a similarity score per step drawn
	// from peers with comparable recent activity, industry, and stage
	FetchSimilarCompanyPatterns(ctx context.Context, recentStepIDs []uuid.UUID, industryID uuid.UUID, stage string) (map[uuid.UUID]float64, error)

	// GetStep returns the full step row, or nil when the step does not exist
	GetStep(ctx context.Context, stepID uuid.UUID) (*types.Step, error)

	// FetchStepsByID resolves step IDs to display names
	FetchStepsByID(ctx context.Context, ids []uuid.UUID) ([]types.StepRef, error)

	// FetchDependents returns steps listing stepID among their prerequisites
	FetchDependents(ctx context.Context, stepID uuid.UUID) ([]types.DependentStep, error)

	// FetchRelatedSteps returns steps with similarity >= minSimilarity to stepID
	FetchRelatedSteps(ctx context.Context, stepID uuid.UUID, minSimilarity float64) ([]types.RelatedStep, error)
}
