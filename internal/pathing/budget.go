// Package pathing builds dependency-respecting, optionally time-budgeted step sequences.
package pathing

import (
	"sort"

	"github.com/jonathan/venture-compass/internal/types"
)

// minutesPerWorkday converts day-denominated budgets into minutes, assuming
// 8-hour workdays.
const minutesPerWorkday = 8 * 60

// FilterByBudget trims the candidate list to at most maxSteps steps that fit
// inside the optional time constraint.
//
// With a constraint, candidates are sorted ascending by difficulty (easy,
// foundational work first when budget is tight) and accepted greedily while
// the running total stays within budget. Without a constraint the first
// maxSteps candidates are taken in catalog order, with no difficulty sort.
func FilterByBudget(candidates []types.Step, constraintDays, maxSteps int) []types.Step {
	if maxSteps <= 0 {
		return nil
	}

	if constraintDays <= 0 {
		if len(candidates) <= maxSteps {
			return candidates
		}
		return candidates[:maxSteps]
	}

	sorted := make([]types.Step, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Difficulty < sorted[j].Difficulty
	})

	budgetMinutes := float64(constraintDays * minutesPerWorkday)
	used := 0.0

	var accepted []types.Step
	for i := range sorted {
		if len(accepted) >= maxSteps {
			break
		}
		avg := sorted[i].Estimate.AverageMinutes()
		if used+avg > budgetMinutes {
			continue
		}
		accepted = append(accepted, sorted[i])
		used += avg
	}

	return accepted
}
