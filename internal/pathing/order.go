package pathing

import (
	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/types"
)

// Order arranges scored steps into a single sequence that respects
// prerequisite edges. At each round it appends the highest-scored step whose
// prerequisites are all already placed in the output (or which has none).
//
// If no remaining step is eligible, whether from a prerequisite cycle or from
// a prerequisite that lives outside the candidate set, the highest-scored
// remaining step is taken regardless. That keeps the ordering total and
// terminating in O(n²); malformed input degrades to a best-effort order
// rather than an error.
func Order(scored []types.RecommendationScore) []types.RecommendationScore {
	if len(scored) == 0 {
		return nil
	}

	placed := make(map[uuid.UUID]bool, len(scored))
	remaining := make([]types.RecommendationScore, len(scored))
	copy(remaining, scored)

	satisfied := func(step *types.Step) bool {
		for _, prereq := range step.Prerequisites {
			if !placed[prereq] {
				return false
			}
		}
		return true
	}

	ordered := make([]types.RecommendationScore, 0, len(scored))
	for len(remaining) > 0 {
		best := -1
		for i := range remaining {
			if !satisfied(&remaining[i].Step) {
				continue
			}
			if best == -1 || remaining[i].Score > remaining[best].Score {
				best = i
			}
		}

		// Deadlock: no step has all prerequisites satisfied. Take the
		// highest-scored remaining step to guarantee progress.
		if best == -1 {
			for i := range remaining {
				if best == -1 || remaining[i].Score > remaining[best].Score {
					best = i
				}
			}
		}

		ordered = append(ordered, remaining[best])
		placed[remaining[best].Step.ID] = true
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}
