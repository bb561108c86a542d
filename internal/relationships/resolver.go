// Package relationships resolves prerequisite, dependent, and related edges
// around a step in the journey graph.
package relationships

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/types"
)

// MinRelatedSimilarity is the similarity floor for surfacing "related" edges
const MinRelatedSimilarity = 0.3

// Store is the read surface the resolver needs from the backing store
type Store interface {
	// GetStep returns the full step row, or nil when the step does not exist
	GetStep(ctx context.Context, stepID uuid.UUID) (*types.Step, error)
	// FetchStepsByID resolves step IDs to display names
	FetchStepsByID(ctx context.Context, ids []uuid.UUID) ([]types.StepRef, error)
	// FetchDependents returns steps listing stepID among their prerequisites
	FetchDependents(ctx context.Context, stepID uuid.UUID) ([]types.DependentStep, error)
	// FetchRelatedSteps returns steps with similarity >= minSimilarity to stepID
	FetchRelatedSteps(ctx context.Context, stepID uuid.UUID, minSimilarity float64) ([]types.RelatedStep, error)
}

// Resolver walks the step-relationship graph with bounded depth
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given store
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the relationship edges around stepID, expanding recursively
// up to depth hops. Depth values below 1 are treated as 1.
//
// Recursion carries a visited-node set, so each node is expanded at most once
// regardless of how many edges reach it; combined with origin-exclusion this
// keeps cyclic and dense graphs linear in the number of touched nodes.
func (r *Resolver) Resolve(ctx context.Context, stepID uuid.UUID, depth int) ([]types.StepRelationship, error) {
	if depth < 1 {
		depth = 1
	}
	visited := map[uuid.UUID]bool{stepID: true}
	return r.resolve(ctx, stepID, stepID, depth, visited)
}

func (r *Resolver) resolve(ctx context.Context, originID, stepID uuid.UUID, depth int, visited map[uuid.UUID]bool) ([]types.StepRelationship, error) {
	step, err := r.store.GetStep(ctx, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to load step %s: %w", stepID, err)
	}
	if step == nil {
		return nil, nil
	}

	var edges []types.StepRelationship

	// Prerequisite edges point into the queried step.
	if len(step.Prerequisites) > 0 {
		refs, err := r.store.FetchStepsByID(ctx, step.Prerequisites)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve prerequisite names: %w", err)
		}
		names := make(map[uuid.UUID]string, len(refs))
		for _, ref := range refs {
			names[ref.ID] = ref.Name
		}
		for _, prereqID := range step.Prerequisites {
			edges = append(edges, types.StepRelationship{
				SourceID:   prereqID,
				TargetID:   stepID,
				Type:       types.RelPrerequisite,
				SourceName: names[prereqID],
				TargetName: step.Name,
			})
		}
	}

	// Dependent edges point out of the queried step.
	dependents, err := r.store.FetchDependents(ctx, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dependents: %w", err)
	}
	for _, dep := range dependents {
		edges = append(edges, types.StepRelationship{
			SourceID:   stepID,
			TargetID:   dep.ID,
			Type:       types.RelDependent,
			SourceName: step.Name,
			TargetName: dep.Name,
		})
	}

	// Related edges are symmetric; self-matches are dropped.
	related, err := r.store.FetchRelatedSteps(ctx, stepID, MinRelatedSimilarity)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch related steps: %w", err)
	}
	for _, rel := range related {
		if rel.ID == stepID {
			continue
		}
		edges = append(edges, types.StepRelationship{
			SourceID:   stepID,
			TargetID:   rel.ID,
			Type:       types.RelRelated,
			SourceName: step.Name,
			TargetName: rel.Name,
		})
	}

	if depth <= 1 {
		return edges, nil
	}

	// Expand every distinct step touched above, except the origin and nodes
	// already expanded on this walk.
	seen := make(map[edgeKey]bool, len(edges))
	for _, e := range edges {
		seen[edgeKey{e.SourceID, e.TargetID}] = true
	}

	for _, neighborID := range neighborIDs(edges, stepID) {
		if neighborID == originID || visited[neighborID] {
			continue
		}
		visited[neighborID] = true

		nested, err := r.resolve(ctx, originID, neighborID, depth-1, visited)
		if err != nil {
			return nil, err
		}
		for _, e := range nested {
			// Edges pointing back at the origin would re-state what the
			// caller already knows; dropping them also breaks cycles.
			if e.SourceID == originID || e.TargetID == originID {
				continue
			}
			key := edgeKey{e.SourceID, e.TargetID}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, e)
		}
	}

	return edges, nil
}

// edgeKey identifies a source/target pair for deduplication
type edgeKey struct {
	source uuid.UUID
	target uuid.UUID
}

// neighborIDs lists the distinct step IDs an edge set touches, excluding self
func neighborIDs(edges []types.StepRelationship, selfID uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, e := range edges {
		for _, id := range []uuid.UUID{e.SourceID, e.TargetID} {
			if id == selfID || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
