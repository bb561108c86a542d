// Package scoring computes relevance scores for candidate steps against company context.
package scoring

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/types"
)

// Base score and per-factor maximum contributions
const (
	// BaseScore is added to every candidate before factor contributions, so a
	// step absent from every lookup table still has nonzero relevance.
	BaseScore = 1.0

	prerequisiteMax  = 3.0
	popularityMax    = 2.0
	sequenceMax      = 2.5
	stageBonus       = 1.5
	businessModelMax = 1.0
	similarityMax    = 2.0
	focusMax         = 1.5
	timeFitMax       = 1.0
)

// Per-unit multipliers for table-driven factors
const (
	sequenceFrequencyWeight = 0.1
	similarityWeight        = 2.0
	keywordMatchWeight      = 0.25
)

// minutesPerWorkday converts day-denominated time constraints into minutes,
// assuming 8-hour workdays.
const minutesPerWorkday = 8 * 60

// computePrerequisiteScore scores how much of the step's prerequisite list the
// company has already completed. Steps with no prerequisites get the maximum:
// they are immediately actionable.
func computePrerequisiteScore(step *types.Step, completed map[uuid.UUID]bool) float64 {
	if len(step.Prerequisites) == 0 {
		return prerequisiteMax
	}

	done := 0
	for _, prereq := range step.Prerequisites {
		if completed[prereq] {
			done++
		}
	}

	return prerequisiteMax * float64(done) / float64(len(step.Prerequisites))
}

// computePopularityScore scales the step's industry-wide completion percentile
// into [0, 2.0]. Steps absent from the table contribute 0.
func computePopularityScore(stepID uuid.UUID, percentiles map[uuid.UUID]float64) float64 {
	percentile, found := percentiles[stepID]
	if !found {
		return 0.0
	}

	score := popularityMax * percentile / 100.0
	if score < 0 {
		return 0.0
	}
	if score > popularityMax {
		return popularityMax
	}
	return score
}

// computeSequenceScore scores how frequently this step follows the company's
// completed set in industry-wide sequences. Capped at 2.5.
func computeSequenceScore(stepID uuid.UUID, frequencies map[uuid.UUID]float64) float64 {
	frequency, found := frequencies[stepID]
	if !found || frequency < 0 {
		return 0.0
	}

	score := frequency * sequenceFrequencyWeight
	if score > sequenceMax {
		return sequenceMax
	}
	return score
}

// computeStageScore awards a flat bonus when the step's phase applies to the
// company's declared stage. All-or-nothing.
func computeStageScore(phaseName, stage string) float64 {
	if stage == "" {
		return 0.0
	}

	applicable, found := phaseStages[strings.ToLower(phaseName)]
	if !found {
		return 0.0
	}

	stageLower := strings.ToLower(stage)
	for _, s := range applicable {
		if s == stageLower {
			return stageBonus
		}
	}
	return 0.0
}

// computeBusinessModelScore counts case-insensitive keyword matches between
// the step's name+description and the fixed keyword list for the company's
// business model. 0.25 per match, capped at 1.0.
func computeBusinessModelScore(step *types.Step, businessModel string) float64 {
	keywords, found := businessModelKeywords[normalizeModelName(businessModel)]
	if !found {
		return 0.0
	}

	text := strings.ToLower(step.Name + " " + step.Description)
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			matches++
		}
	}

	score := float64(matches) * keywordMatchWeight
	if score > businessModelMax {
		return businessModelMax
	}
	return score
}

// computeSimilarityScore scales the peer-similarity score for this step into
// [0, 2.0]. Steps absent from the table contribute 0.
func computeSimilarityScore(stepID uuid.UUID, similarities map[uuid.UUID]float64) float64 {
	similarity, found := similarities[stepID]
	if !found || similarity < 0 {
		return 0.0
	}

	score := similarity * similarityWeight
	if score > similarityMax {
		return similarityMax
	}
	return score
}

// computeFocusScore scores the overlap between the step's categories and the
// supplied focus areas. With no focus areas the factor is inert.
func computeFocusScore(categories, focusAreas []string) float64 {
	if len(focusAreas) == 0 || len(categories) == 0 {
		return 0.0
	}

	categorySet := make(map[string]bool, len(categories))
	for _, c := range categories {
		categorySet[strings.ToLower(c)] = true
	}

	matched := 0
	for _, focus := range focusAreas {
		if categorySet[strings.ToLower(focus)] {
			matched++
		}
	}

	score := float64(matched) / float64(len(focusAreas)) * focusMax
	if score > focusMax {
		return focusMax
	}
	return score
}

// computeTimeFitScore scores how comfortably the step's average estimated time
// fits inside the request's time constraint. Steps exceeding the budget get 0;
// steps using at most a tenth of it get the full 1.0; in between the score
// decays linearly with the fraction of budget consumed.
func computeTimeFitScore(avgMinutes float64, constraintDays int) float64 {
	if constraintDays <= 0 {
		return 0.0
	}

	budgetMinutes := float64(constraintDays * minutesPerWorkday)
	if avgMinutes > budgetMinutes {
		return 0.0
	}
	if avgMinutes <= budgetMinutes/10 {
		return timeFitMax
	}

	stepDays := avgMinutes / minutesPerWorkday
	score := timeFitMax - stepDays/float64(constraintDays)
	if score < 0 {
		return 0.0
	}
	return score
}
