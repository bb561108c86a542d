package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/venture-compass/internal/types"
)

// fakeStore serves canned catalog data and lets individual queries fail
type fakeStore struct {
	progress   []types.ProgressRecord
	profile    *types.CompanyProfile
	candidates []types.Step
	popularity map[uuid.UUID]float64
	sequences  map[uuid.UUID]float64
	similarity map[uuid.UUID]float64
	steps      map[uuid.UUID]*types.Step
	dependents map[uuid.UUID][]types.DependentStep
	related    map[uuid.UUID][]types.RelatedStep

	progressErr   error
	profileErr    error
	candidatesErr error
	popularityErr error
	sequencesErr  error
	similarityErr error

	candidateExcludes []uuid.UUID
}

func (f *fakeStore) FetchProgress(_ context.Context, _ uuid.UUID, statuses []types.ProgressStatus) ([]types.ProgressRecord, error) {
	if f.progressErr != nil {
		return nil, f.progressErr
	}
	wanted := make(map[types.ProgressStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	var out []types.ProgressRecord
	for _, r := range f.progress {
		if wanted[r.Status] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) FetchCompanyProfile(_ context.Context, _ uuid.UUID) (*types.CompanyProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeStore) FetchCandidateSteps(_ context.Context, excludeIDs, _ []uuid.UUID) ([]types.Step, error) {
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}
	f.candidateExcludes = excludeIDs
	excluded := make(map[uuid.UUID]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []types.Step
	for _, s := range f.candidates {
		if !excluded[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) FetchIndustryPopularity(_ context.Context, _ uuid.UUID) (map[uuid.UUID]float64, error) {
	if f.popularityErr != nil {
		return nil, f.popularityErr
	}
	return f.popularity, nil
}

func (f *fakeStore) FetchCommonSequences(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]float64, error) {
	if f.sequencesErr != nil {
		return nil, f.sequencesErr
	}
	return f.sequences, nil
}

func (f *fakeStore) FetchSimilarCompanyPatterns(_ context.Context, _ []uuid.UUID, _ uuid.UUID, _ string) (map[uuid.UUID]float64, error) {
	if f.similarityErr != nil {
		return nil, f.similarityErr
	}
	return f.similarity, nil
}

func (f *fakeStore) GetStep(_ context.Context, stepID uuid.UUID) (*types.Step, error) {
	return f.steps[stepID], nil
}

func (f *fakeStore) FetchStepsByID(_ context.Context, ids []uuid.UUID) ([]types.StepRef, error) {
	var refs []types.StepRef
	for _, id := range ids {
		if s, ok := f.steps[id]; ok {
			refs = append(refs, types.StepRef{ID: s.ID, Name: s.Name})
		}
	}
	return refs, nil
}

func (f *fakeStore) FetchDependents(_ context.Context, stepID uuid.UUID) ([]types.DependentStep, error) {
	return f.dependents[stepID], nil
}

func (f *fakeStore) FetchRelatedSteps(_ context.Context, stepID uuid.UUID, _ float64) ([]types.RelatedStep, error) {
	return f.related[stepID], nil
}

// memorySink records every emitted event synchronously
type memorySink struct {
	events []recordedEvent
}

type recordedEvent struct {
	category  string
	eventType string
	payload   map[string]any
}

func (s *memorySink) Emit(category, eventType string, payload map[string]any) {
	s.events = append(s.events, recordedEvent{category, eventType, payload})
}

func (s *memorySink) ofType(eventType string) []recordedEvent {
	var out []recordedEvent
	for _, e := range s.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

func catalogStep(name string, prereqs ...uuid.UUID) types.Step {
	return types.Step{
		ID:            uuid.New(),
		Name:          name,
		Estimate:      types.TimeEstimate{MinMinutes: 60, MaxMinutes: 120},
		Prerequisites: prereqs,
	}
}

func TestGetRecommendations_RanksByScoreAndRespectsLimit(t *testing.T) {
	industry := uuid.New()
	popular := catalogStep("popular")
	plain := catalogStep("plain")
	blocked := catalogStep("blocked", uuid.New())

	store := &fakeStore{
		profile:    &types.CompanyProfile{CompanyID: uuid.New(), IndustryID: industry},
		candidates: []types.Step{blocked, plain, popular},
		popularity: map[uuid.UUID]float64{popular.ID: 100},
	}
	sink := &memorySink{}

	recs := New(store, sink).GetRecommendations(context.Background(), uuid.New(), 2, nil)

	require.Len(t, recs, 2)
	assert.Equal(t, "popular", recs[0].Name)
	assert.Equal(t, "plain", recs[1].Name)
	assert.Greater(t, recs[0].RelevanceScore, recs[1].RelevanceScore)

	require.Len(t, sink.ofType("recommendations_returned"), 1)
	assert.Empty(t, sink.ofType("recommendations_failed"))
}

func TestGetRecommendations_ExcludesCompletedAndSkippedSteps(t *testing.T) {
	companyID := uuid.New()
	done := catalogStep("done")
	skipped := catalogStep("skipped")
	inProgress := catalogStep("in progress")
	fresh := catalogStep("fresh")

	store := &fakeStore{
		progress: []types.ProgressRecord{
			{CompanyID: companyID, StepID: done.ID, Status: types.StatusCompleted},
			{CompanyID: companyID, StepID: skipped.ID, Status: types.StatusSkipped},
			{CompanyID: companyID, StepID: inProgress.ID, Status: types.StatusInProgress},
		},
		candidates: []types.Step{done, skipped, inProgress, fresh},
	}

	recs := New(store, nil).GetRecommendations(context.Background(), companyID, 10, nil)

	// in-progress steps stay in the catalog; completed and skipped do not
	require.Len(t, recs, 2)
	assert.ElementsMatch(t, []uuid.UUID{done.ID, skipped.ID}, store.candidateExcludes)
}

func TestGetRecommendations_LookupFailureDegradesGracefully(t *testing.T) {
	industry := uuid.New()
	step := catalogStep("survivor")

	store := &fakeStore{
		profile:       &types.CompanyProfile{IndustryID: industry},
		candidates:    []types.Step{step},
		popularityErr: errors.New("stats table unavailable"),
	}
	sink := &memorySink{}

	recs := New(store, sink).GetRecommendations(context.Background(), uuid.New(), 5, nil)

	require.Len(t, recs, 1)
	assert.Equal(t, "survivor", recs[0].Name)

	failures := sink.ofType("lookup_failed")
	require.Len(t, failures, 1)
	assert.Equal(t, "industry_popularity", failures[0].payload["lookup"])
	assert.Empty(t, sink.ofType("recommendations_failed"))
}

func TestGetRecommendations_ProgressFailureReturnsEmptyWithErrorEvent(t *testing.T) {
	store := &fakeStore{progressErr: errors.New("connection refused")}
	sink := &memorySink{}

	recs := New(store, sink).GetRecommendations(context.Background(), uuid.New(), 5, nil)

	assert.Empty(t, recs)
	assert.NotNil(t, recs)
	require.Len(t, sink.ofType("recommendations_failed"), 1)
	assert.Empty(t, sink.ofType("recommendations_returned"))
}

func TestGetRecommendations_Idempotent(t *testing.T) {
	industry := uuid.New()
	a := catalogStep("a")
	b := catalogStep("b")
	store := &fakeStore{
		profile:    &types.CompanyProfile{IndustryID: industry},
		candidates: []types.Step{a, b},
		popularity: map[uuid.UUID]float64{a.ID: 80, b.ID: 20},
	}
	eng := New(store, nil)

	first := eng.GetRecommendations(context.Background(), uuid.New(), 5, nil)
	second := eng.GetRecommendations(context.Background(), uuid.New(), 5, nil)

	assert.Equal(t, first, second)
}

func TestGetRecommendations_NegativeLimitReturnsEmpty(t *testing.T) {
	store := &fakeStore{candidates: []types.Step{catalogStep("a")}}

	recs := New(store, nil).GetRecommendations(context.Background(), uuid.New(), -1, nil)

	assert.Empty(t, recs)
}

func TestGetOptimizedPath_OrdersPrerequisitesFirst(t *testing.T) {
	foundation := catalogStep("foundation")
	dependent := catalogStep("dependent", foundation.ID)

	store := &fakeStore{
		profile:    &types.CompanyProfile{IndustryID: uuid.New()},
		candidates: []types.Step{dependent, foundation},
		// dependent outscores its prerequisite, but still cannot come first
		popularity: map[uuid.UUID]float64{dependent.ID: 100},
		sequences:  map[uuid.UUID]float64{dependent.ID: 100},
	}

	path := New(store, nil).GetOptimizedPath(context.Background(), uuid.New(), PathOptions{MaxSteps: 10})

	require.Len(t, path, 2)
	assert.Equal(t, "foundation", path[0].Name)
	assert.Equal(t, "dependent", path[1].Name)
}

func TestGetOptimizedPath_RespectsTimeBudget(t *testing.T) {
	small := types.Step{ID: uuid.New(), Name: "small", Difficulty: 1,
		Estimate: types.TimeEstimate{MinMinutes: 100, MaxMinutes: 100}}
	huge := types.Step{ID: uuid.New(), Name: "huge", Difficulty: 2,
		Estimate: types.TimeEstimate{MinMinutes: 2000, MaxMinutes: 2000}}

	store := &fakeStore{candidates: []types.Step{huge, small}}

	// 1 workday = 480 minutes: only the small step fits
	path := New(store, nil).GetOptimizedPath(context.Background(), uuid.New(), PathOptions{
		TimeConstraintDays: 1,
		MaxSteps:           10,
	})

	require.Len(t, path, 1)
	assert.Equal(t, "small", path[0].Name)
}

func TestGetOptimizedPath_StoreFailureReturnsEmptyWithErrorEvent(t *testing.T) {
	store := &fakeStore{candidatesErr: errors.New("catalog unavailable")}
	sink := &memorySink{}

	path := New(store, sink).GetOptimizedPath(context.Background(), uuid.New(), PathOptions{MaxSteps: 5})

	assert.Empty(t, path)
	require.Len(t, sink.ofType("path_failed"), 1)
}

func TestGetStepRelationships_ReturnsEdges(t *testing.T) {
	prereq := catalogStep("prereq")
	step := catalogStep("step", prereq.ID)

	store := &fakeStore{
		steps: map[uuid.UUID]*types.Step{prereq.ID: &prereq, step.ID: &step},
	}
	sink := &memorySink{}

	edges := New(store, sink).GetStepRelationships(context.Background(), step.ID, 1)

	require.Len(t, edges, 1)
	assert.Equal(t, types.RelPrerequisite, edges[0].Type)
	require.Len(t, sink.ofType("relationships_returned"), 1)
}

func TestGetStepRelationships_UnknownStepReturnsEmpty(t *testing.T) {
	store := &fakeStore{steps: map[uuid.UUID]*types.Step{}}
	sink := &memorySink{}

	edges := New(store, sink).GetStepRelationships(context.Background(), uuid.New(), 1)

	assert.Empty(t, edges)
	// absence is not a failure
	assert.Empty(t, sink.ofType("relationships_failed"))
}
