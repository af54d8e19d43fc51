// Package analytics computes streaks over habit completion data. All
// functions are pure: they operate on value snapshots fetched by the
// caller and never touch storage.
package analytics

import (
	"sort"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/period"
)

// BestStreak identifies the habit with the longest run of consecutive
// periods. The zero value means no habit has a positive streak.
type BestStreak struct {
	Length    int
	HabitID   string
	HabitName string
	Cadence   models.Cadence
}

// LongestRun returns the length of the longest run of consecutive periods
// among the given period keys. Duplicate keys count once and keys that do
// not parse for the cadence are skipped rather than aborting the scan.
func LongestRun(cadence models.Cadence, periodKeys []string) int {
	seen := make(map[int]struct{}, len(periodKeys))
	for _, key := range periodKeys {
		ord, err := period.Ordinal(key, cadence)
		if err != nil {
			continue
		}
		seen[ord] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}

	ordinals := make([]int, 0, len(seen))
	for ord := range seen {
		ordinals = append(ordinals, ord)
	}
	sort.Ints(ordinals)

	step := period.Step(cadence)
	longest, current := 1, 1
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i]-ordinals[i-1] == step {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// BestAcross computes the longest streak per habit and returns the best
// one. Ties go to the lowest habit ID so the result is deterministic. A
// zero-value BestStreak is returned when no habit has a positive streak.
func BestAcross(habits []models.Habit, completions []models.Completion) BestStreak {
	keysByHabit := make(map[string][]string, len(habits))
	for _, c := range completions {
		keysByHabit[c.HabitID] = append(keysByHabit[c.HabitID], c.PeriodKey)
	}

	var best BestStreak
	for _, h := range habits {
		length := LongestRun(h.Cadence, keysByHabit[h.ID])
		if length == 0 {
			continue
		}
		if length > best.Length || (length == best.Length && h.ID < best.HabitID) {
			best = BestStreak{
				Length:    length,
				HabitID:   h.ID,
				HabitName: h.Name,
				Cadence:   h.Cadence,
			}
		}
	}
	return best
}

// FilterByCadence returns the habits matching the given cadence.
func FilterByCadence(habits []models.Habit, cadence models.Cadence) []models.Habit {
	filtered := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Cadence == cadence {
			filtered = append(filtered, h)
		}
	}
	return filtered
}
