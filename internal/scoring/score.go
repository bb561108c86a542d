package scoring

import (
	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/types"
)

// Inputs bundles the pre-fetched context a scoring pass runs against. Lookup
// tables may be nil when the corresponding accessor failed upstream; the
// affected factors then contribute 0 and scoring continues.
type Inputs struct {
	Completed  map[uuid.UUID]bool    // step IDs the company has completed
	Profile    *types.CompanyProfile // nil when the profile lookup failed
	Popularity map[uuid.UUID]float64 // industry completion percentile per step
	Sequences  map[uuid.UUID]float64 // next-step frequency per step
	Similarity map[uuid.UUID]float64 // peer-similarity score per step

	// FocusAreas supplied on the request, merged with the profile's own
	FocusAreas []string
	// TimeConstraintDays of the request; 0 means unconstrained
	TimeConstraintDays int
}

// focusUnion merges profile and request focus areas, dropping duplicates while
// preserving order (profile areas first).
func (in Inputs) focusUnion() []string {
	var union []string
	seen := make(map[string]bool)

	add := func(areas []string) {
		for _, a := range areas {
			if a == "" || seen[a] {
				continue
			}
			seen[a] = true
			union = append(union, a)
		}
	}

	if in.Profile != nil {
		add(in.Profile.FocusAreas)
	}
	add(in.FocusAreas)
	return union
}

// ScoreSteps scores every candidate against all eight factors. Output is
// unsorted, one entry per candidate in input order. Reasoning entries are
// attached only for factors contributing more than half their maximum range,
// so the list describes material signals rather than echoing every factor.
func ScoreSteps(candidates []types.Step, in Inputs) []types.RecommendationScore {
	var stage, businessModel string
	if in.Profile != nil {
		stage = in.Profile.Stage
		businessModel = in.Profile.BusinessModel
	}
	focusAreas := in.focusUnion()

	scored := make([]types.RecommendationScore, 0, len(candidates))
	for i := range candidates {
		step := &candidates[i]

		score := BaseScore
		var reasons []string

		prereq := computePrerequisiteScore(step, in.Completed)
		score += prereq
		if prereq > prerequisiteMax/2 {
			if len(step.Prerequisites) == 0 {
				reasons = append(reasons, "Ready to start, no prerequisites")
			} else {
				reasons = append(reasons, "Most prerequisites already completed")
			}
		}

		popularity := computePopularityScore(step.ID, in.Popularity)
		score += popularity
		if popularity > popularityMax/2 {
			reasons = append(reasons, "Popular among companies in your industry")
		}

		sequence := computeSequenceScore(step.ID, in.Sequences)
		score += sequence
		if sequence > sequenceMax/2 {
			reasons = append(reasons, "Commonly follows the steps you have completed")
		}

		stageScore := computeStageScore(step.Phase.Name, stage)
		score += stageScore
		if stageScore > stageBonus/2 {
			reasons = append(reasons, "Well suited to your current stage")
		}

		model := computeBusinessModelScore(step, businessModel)
		score += model
		if model > businessModelMax/2 {
			reasons = append(reasons, "Relevant to your business model")
		}

		similarity := computeSimilarityScore(step.ID, in.Similarity)
		score += similarity
		if similarity > similarityMax/2 {
			reasons = append(reasons, "Similar companies prioritized this step")
		}

		focus := computeFocusScore(step.Categories, focusAreas)
		score += focus
		if focus > focusMax/2 {
			reasons = append(reasons, "Aligned with your focus areas")
		}

		timeFit := computeTimeFitScore(step.Estimate.AverageMinutes(), in.TimeConstraintDays)
		score += timeFit
		if timeFit > timeFitMax/2 {
			reasons = append(reasons, "Fits comfortably within your time budget")
		}

		scored = append(scored, types.RecommendationScore{
			Step:      *step,
			Score:     score,
			Reasoning: reasons,
		})
	}

	return scored
}
