// Package engine exposes the step recommendation and path optimization operations.
package engine

import (
	"context"
	"log"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/venture-compass/internal/analytics"
	"github.com/jonathan/venture-compass/internal/pathing"
	"github.com/jonathan/venture-compass/internal/relationships"
	"github.com/jonathan/venture-compass/internal/scoring"
	"github.com/jonathan/venture-compass/internal/types"
)

// Defaults applied at the API boundary when the request omits them
const (
	DefaultLimit    = 5
	DefaultMaxSteps = 10
	DefaultDepth    = 1
)

// eventCategory labels every analytics event emitted by the engine
const eventCategory = "recommendation_engine"

// PathOptions are the optional knobs for GetOptimizedPath
type PathOptions struct {
	TimeConstraintDays int
	MaxSteps           int
}

// Engine computes recommendations, relationship graphs, and optimized paths.
// It holds only references to the read store and the event sink; every
// operation is a single-shot pipeline over freshly fetched inputs, so
// concurrent calls are independent.
type Engine struct {
	store    Store
	events   analytics.Sink
	resolver *relationships.Resolver
}

// New creates an engine over the given store. A nil sink disables analytics.
func New(store Store, sink analytics.Sink) *Engine {
	if sink == nil {
		sink = analytics.NopSink{}
	}
	return &Engine{
		store:    store,
		events:   sink,
		resolver: relationships.NewResolver(store),
	}
}

// GetRecommendations returns up to limit candidate steps ranked by relevance.
// Upstream failures never propagate: the result degrades to an empty list and
// an error event.
func (e *Engine) GetRecommendations(ctx context.Context, companyID uuid.UUID, limit int, reqCtx *types.RecommendationContext) []types.Recommendation {
	e.events.Emit(eventCategory, "recommendations_requested", map[string]any{
		"company_id": companyID.String(),
		"limit":      limit,
	})

	recs, err := e.recommend(ctx, companyID, limit, reqCtx)
	if err != nil {
		log.Printf("engine: recommendations for company %s failed: %v", companyID, err)
		e.events.Emit(eventCategory, "recommendations_failed", map[string]any{
			"company_id": companyID.String(),
			"error":      err.Error(),
		})
		return []types.Recommendation{}
	}

	e.events.Emit(eventCategory, "recommendations_returned", map[string]any{
		"company_id": companyID.String(),
		"step_ids":   recommendationIDs(recs),
	})
	return recs
}

func (e *Engine) recommend(ctx context.Context, companyID uuid.UUID, limit int, reqCtx *types.RecommendationContext) ([]types.Recommendation, error) {
	if limit < 0 {
		limit = 0
	}
	if reqCtx == nil {
		reqCtx = &types.RecommendationContext{}
	}

	progress, err := e.store.FetchProgress(ctx, companyID,
		[]types.ProgressStatus{types.StatusCompleted, types.StatusInProgress, types.StatusSkipped})
	if err != nil {
		return nil, err
	}

	profile, err := e.store.FetchCompanyProfile(ctx, companyID)
	if err != nil {
		return nil, err
	}

	candidates, err := e.store.FetchCandidateSteps(ctx, doneStepIDs(progress), reqCtx.SelectedPhases)
	if err != nil {
		return nil, err
	}

	completed := types.CompletedIDs(progress)
	inputs := e.fetchInsights(ctx, profile, completed, types.StepIDs(progress))
	inputs.FocusAreas = reqCtx.FocusAreas
	inputs.TimeConstraintDays = reqCtx.TimeConstraintDays

	scored := scoring.ScoreSteps(candidates, inputs)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	recs := make([]types.Recommendation, 0, len(scored))
	for _, s := range scored {
		recs = append(recs, s.ToRecommendation())
	}
	return recs, nil
}

// GetStepRelationships returns the relationship edges around a step, expanded
// up to depth hops. Failures degrade to an empty edge list plus an error event.
func (e *Engine) GetStepRelationships(ctx context.Context, stepID uuid.UUID, depth int) []types.StepRelationship {
	e.events.Emit(eventCategory, "relationships_requested", map[string]any{
		"step_id": stepID.String(),
		"depth":   depth,
	})

	edges, err := e.resolver.Resolve(ctx, stepID, depth)
	if err != nil {
		log.Printf("engine: relationships for step %s failed: %v", stepID, err)
		e.events.Emit(eventCategory, "relationships_failed", map[string]any{
			"step_id": stepID.String(),
			"error":   err.Error(),
		})
		return []types.StepRelationship{}
	}

	e.events.Emit(eventCategory, "relationships_returned", map[string]any{
		"step_id":    stepID.String(),
		"edge_count": len(edges),
	})
	return edges
}

// GetOptimizedPath returns a dependency-respecting sequence of steps, trimmed
// to an optional time budget. Failures degrade to an empty path plus an error
// event.
func (e *Engine) GetOptimizedPath(ctx context.Context, companyID uuid.UUID, opts PathOptions) []types.Recommendation {
	e.events.Emit(eventCategory, "path_requested", map[string]any{
		"company_id":           companyID.String(),
		"time_constraint_days": opts.TimeConstraintDays,
		"max_steps":            opts.MaxSteps,
	})

	path, err := e.optimizePath(ctx, companyID, opts)
	if err != nil {
		log.Printf("engine: optimized path for company %s failed: %v", companyID, err)
		e.events.Emit(eventCategory, "path_failed", map[string]any{
			"company_id": companyID.String(),
			"error":      err.Error(),
		})
		return []types.Recommendation{}
	}

	e.events.Emit(eventCategory, "path_returned", map[string]any{
		"company_id": companyID.String(),
		"step_ids":   recommendationIDs(path),
	})
	return path
}

func (e *Engine) optimizePath(ctx context.Context, companyID uuid.UUID, opts PathOptions) ([]types.Recommendation, error) {
	if opts.MaxSteps < 0 {
		opts.MaxSteps = 0
	}

	progress, err := e.store.FetchProgress(ctx, companyID,
		[]types.ProgressStatus{types.StatusCompleted})
	if err != nil {
		return nil, err
	}

	profile, err := e.store.FetchCompanyProfile(ctx, companyID)
	if err != nil {
		return nil, err
	}

	candidates, err := e.store.FetchCandidateSteps(ctx, types.StepIDs(progress), nil)
	if err != nil {
		return nil, err
	}

	filtered := pathing.FilterByBudget(candidates, opts.TimeConstraintDays, opts.MaxSteps)

	completed := types.CompletedIDs(progress)
	inputs := e.fetchInsights(ctx, profile, completed, types.StepIDs(progress))
	inputs.TimeConstraintDays = opts.TimeConstraintDays

	scored := scoring.ScoreSteps(filtered, inputs)
	ordered := pathing.Order(scored)

	// The computed order is the path's sequence; no re-sort by score.
	path := make([]types.Recommendation, 0, len(ordered))
	for _, s := range ordered {
		path = append(path, s.ToRecommendation())
	}
	return path, nil
}

// fetchInsights loads the three scoring lookup tables concurrently. Each table
// is independent and read-only, so the fetches can overlap freely; a failed
// fetch degrades to a nil table (its factor then contributes 0) and records an
// error event rather than failing the operation.
func (e *Engine) fetchInsights(ctx context.Context, profile *types.CompanyProfile, completed map[uuid.UUID]bool, recentStepIDs []uuid.UUID) scoring.Inputs {
	inputs := scoring.Inputs{
		Completed: completed,
		Profile:   profile,
	}

	completedIDs := make([]uuid.UUID, 0, len(completed))
	for id := range completed {
		completedIDs = append(completedIDs, id)
	}

	g, gctx := errgroup.WithContext(ctx)

	if profile != nil {
		g.Go(func() error {
			table, err := e.store.FetchIndustryPopularity(gctx, profile.IndustryID)
			if err != nil {
				e.recordLookupFailure("industry_popularity", err)
				return nil
			}
			inputs.Popularity = table
			return nil
		})
	}

	g.Go(func() error {
		table, err := e.store.FetchCommonSequences(gctx, completedIDs)
		if err != nil {
			e.recordLookupFailure("common_sequences", err)
			return nil
		}
		inputs.Sequences = table
		return nil
	})

	if profile != nil {
		g.Go(func() error {
			table, err := e.store.FetchSimilarCompanyPatterns(gctx, recentStepIDs, profile.IndustryID, profile.Stage)
			if err != nil {
				e.recordLookupFailure("similar_company_patterns", err)
				return nil
			}
			inputs.Similarity = table
			return nil
		})
	}

	// Goroutines above never return errors; Wait only synchronizes.
	_ = g.Wait()

	return inputs
}

func (e *Engine) recordLookupFailure(lookup string, err error) {
	log.Printf("engine: %s lookup failed, factor degraded to 0: %v", lookup, err)
	e.events.Emit(eventCategory, "lookup_failed", map[string]any{
		"lookup": lookup,
		"error":  err.Error(),
	})
}

// doneStepIDs returns the IDs of steps the company has finished or skipped;
// both are excluded from the candidate catalog.
func doneStepIDs(progress []types.ProgressRecord) []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range progress {
		if r.Status == types.StatusCompleted || r.Status == types.StatusSkipped {
			ids = append(ids, r.StepID)
		}
	}
	return ids
}

func recommendationIDs(recs []types.Recommendation) []string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID.String())
	}
	return ids
}
