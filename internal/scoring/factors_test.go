package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/venture-compass/internal/types"
)

func TestComputePrerequisiteScore_NoPrerequisites(t *testing.T) {
	step := &types.Step{ID: uuid.New()}

	score := computePrerequisiteScore(step, map[uuid.UUID]bool{})

	assert.Equal(t, 3.0, score)
}

func TestComputePrerequisiteScore_PartiallyCompleted(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	step := &types.Step{ID: uuid.New(), Prerequisites: []uuid.UUID{a, b}}

	score := computePrerequisiteScore(step, map[uuid.UUID]bool{a: true})

	assert.InDelta(t, 1.5, score, 0.001)
}

func TestComputePrerequisiteScore_SaturatesAtNoPrereqLevel(t *testing.T) {
	// A step with every prerequisite completed scores the same as a step with
	// no prerequisites at all.
	a, b := uuid.New(), uuid.New()
	withPrereqs := &types.Step{ID: uuid.New(), Prerequisites: []uuid.UUID{a, b}}
	withoutPrereqs := &types.Step{ID: uuid.New()}
	completed := map[uuid.UUID]bool{a: true, b: true}

	assert.Equal(t,
		computePrerequisiteScore(withoutPrereqs, completed),
		computePrerequisiteScore(withPrereqs, completed),
	)
}

func TestComputePrerequisiteScore_NoneCompleted(t *testing.T) {
	step := &types.Step{ID: uuid.New(), Prerequisites: []uuid.UUID{uuid.New()}}

	score := computePrerequisiteScore(step, map[uuid.UUID]bool{})

	assert.Equal(t, 0.0, score)
}

func TestComputePopularityScore_ScalesWithPercentile(t *testing.T) {
	stepID := uuid.New()

	assert.InDelta(t, 1.0, computePopularityScore(stepID, map[uuid.UUID]float64{stepID: 50}), 0.001)
	assert.InDelta(t, 2.0, computePopularityScore(stepID, map[uuid.UUID]float64{stepID: 100}), 0.001)
}

func TestComputePopularityScore_StrictlyIncreasing(t *testing.T) {
	stepID := uuid.New()

	low := computePopularityScore(stepID, map[uuid.UUID]float64{stepID: 40})
	high := computePopularityScore(stepID, map[uuid.UUID]float64{stepID: 60})

	assert.Greater(t, high, low)
}

func TestComputePopularityScore_AbsentStep(t *testing.T) {
	assert.Equal(t, 0.0, computePopularityScore(uuid.New(), map[uuid.UUID]float64{uuid.New(): 90}))
	assert.Equal(t, 0.0, computePopularityScore(uuid.New(), nil))
}

func TestComputePopularityScore_ClampsOutOfRangePercentiles(t *testing.T) {
	stepID := uuid.New()

	assert.Equal(t, 2.0, computePopularityScore(stepID, map[uuid.UUID]float64{stepID: 150}))
	assert.Equal(t, 0.0, computePopularityScore(stepID, map[uuid.UUID]float64{stepID: -10}))
}

func TestComputeSequenceScore_CapsAtMax(t *testing.T) {
	stepID := uuid.New()

	assert.InDelta(t, 1.2, computeSequenceScore(stepID, map[uuid.UUID]float64{stepID: 12}), 0.001)
	assert.Equal(t, 2.5, computeSequenceScore(stepID, map[uuid.UUID]float64{stepID: 500}))
	assert.Equal(t, 0.0, computeSequenceScore(stepID, nil))
}

func TestComputeStageScore_MatchingStage(t *testing.T) {
	assert.Equal(t, 1.5, computeStageScore("Validation", "mvp"))
	assert.Equal(t, 1.5, computeStageScore("Ideation", "Idea")) // case-insensitive
}

func TestComputeStageScore_NonMatchingStage(t *testing.T) {
	assert.Equal(t, 0.0, computeStageScore("Ideation", "scale"))
	assert.Equal(t, 0.0, computeStageScore("Unknown Phase", "idea"))
	assert.Equal(t, 0.0, computeStageScore("Ideation", ""))
}

func TestComputeBusinessModelScore_CountsKeywordMatches(t *testing.T) {
	step := &types.Step{
		Name:        "Build your sales pipeline",
		Description: "Set up enterprise demo flows",
	}

	// sales, pipeline, enterprise, demo: 4 matches, capped at 1.0
	assert.Equal(t, 1.0, computeBusinessModelScore(step, "b2b_saas"))
}

func TestComputeBusinessModelScore_PartialMatches(t *testing.T) {
	step := &types.Step{
		Name:        "Improve checkout flow",
		Description: "Reduce cart abandonment",
	}

	assert.InDelta(t, 0.25, computeBusinessModelScore(step, "ecommerce"), 0.001)
}

func TestComputeBusinessModelScore_NormalizesModelName(t *testing.T) {
	step := &types.Step{Name: "Enterprise sales playbook"}

	assert.Equal(t,
		computeBusinessModelScore(step, "b2b_saas"),
		computeBusinessModelScore(step, "B2B SaaS"),
	)
}

func TestComputeBusinessModelScore_UnknownModel(t *testing.T) {
	step := &types.Step{Name: "Enterprise sales playbook"}

	assert.Equal(t, 0.0, computeBusinessModelScore(step, "nonprofit"))
	assert.Equal(t, 0.0, computeBusinessModelScore(step, ""))
}

func TestComputeSimilarityScore_ScalesAndCaps(t *testing.T) {
	stepID := uuid.New()

	assert.InDelta(t, 1.0, computeSimilarityScore(stepID, map[uuid.UUID]float64{stepID: 0.5}), 0.001)
	assert.Equal(t, 2.0, computeSimilarityScore(stepID, map[uuid.UUID]float64{stepID: 3.0}))
	assert.Equal(t, 0.0, computeSimilarityScore(stepID, nil))
}

func TestComputeFocusScore_PartialOverlap(t *testing.T) {
	categories := []string{"marketing", "growth"}
	focusAreas := []string{"Marketing", "finance", "hiring"}

	// 1 of 3 focus areas matched
	assert.InDelta(t, 0.5, computeFocusScore(categories, focusAreas), 0.001)
}

func TestComputeFocusScore_NoFocusAreas(t *testing.T) {
	assert.Equal(t, 0.0, computeFocusScore([]string{"marketing"}, nil))
	assert.Equal(t, 0.0, computeFocusScore(nil, []string{"marketing"}))
}

func TestComputeFocusScore_FullOverlap(t *testing.T) {
	categories := []string{"marketing", "growth"}
	focusAreas := []string{"marketing", "growth"}

	assert.InDelta(t, 1.5, computeFocusScore(categories, focusAreas), 0.001)
}

func TestComputeTimeFitScore_NoConstraint(t *testing.T) {
	assert.Equal(t, 0.0, computeTimeFitScore(120, 0))
	assert.Equal(t, 0.0, computeTimeFitScore(120, -3))
}

func TestComputeTimeFitScore_ExceedsBudget(t *testing.T) {
	// 2 workdays = 960 minutes; step averages 1000
	assert.Equal(t, 0.0, computeTimeFitScore(1000, 2))
}

func TestComputeTimeFitScore_TinyStepGetsMax(t *testing.T) {
	// 10 workdays = 4800 minutes; step at 480 is exactly a tenth
	assert.Equal(t, 1.0, computeTimeFitScore(480, 10))
	assert.Equal(t, 1.0, computeTimeFitScore(60, 10))
}

func TestComputeTimeFitScore_LinearDecay(t *testing.T) {
	// 4 workdays of budget, step takes 2 workdays (960 min): 1 - 2/4 = 0.5
	assert.InDelta(t, 0.5, computeTimeFitScore(960, 4), 0.001)
}
