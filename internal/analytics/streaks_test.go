package analytics

import (
	"testing"
	"time"

	"github.com/julianstephens/ritual/internal/models"
)

func TestLongestRun(t *testing.T) {
	tests := []struct {
		name    string
		cadence models.Cadence
		keys    []string
		want    int
	}{
		{
			name:    "empty input",
			cadence: models.CadenceDaily,
			keys:    nil,
			want:    0,
		},
		{
			name:    "single period",
			cadence: models.CadenceDaily,
			keys:    []string{"2025-01-01"},
			want:    1,
		},
		{
			name:    "three consecutive days",
			cadence: models.CadenceDaily,
			keys:    []string{"2025-01-01", "2025-01-02", "2025-01-03"},
			want:    3,
		},
		{
			name:    "gap resets the run",
			cadence: models.CadenceDaily,
			keys:    []string{"2025-01-01", "2025-01-02", "2025-01-04", "2025-01-05", "2025-01-06"},
			want:    3,
		},
		{
			name:    "duplicates count once",
			cadence: models.CadenceDaily,
			keys:    []string{"2025-01-01", "2025-01-02", "2025-01-01"},
			want:    2,
		},
		{
			name:    "unsorted input",
			cadence: models.CadenceDaily,
			keys:    []string{"2025-01-03", "2025-01-01", "2025-01-02"},
			want:    3,
		},
		{
			name:    "run across year boundary",
			cadence: models.CadenceDaily,
			keys:    []string{"2025-12-31", "2026-01-01"},
			want:    2,
		},
		{
			name:    "weekly ISO year boundary adjacency",
			cadence: models.CadenceWeekly,
			keys:    []string{"2025-W52", "2026-W01"},
			want:    2,
		},
		{
			name:    "weekly with gap",
			cadence: models.CadenceWeekly,
			keys:    []string{"2025-W10", "2025-W11", "2025-W13"},
			want:    2,
		},
		{
			name:    "invalid keys are skipped",
			cadence: models.CadenceDaily,
			keys:    []string{"2025-01-01", "garbage", "2025-01-02"},
			want:    2,
		},
		{
			name:    "only invalid keys",
			cadence: models.CadenceDaily,
			keys:    []string{"garbage", "also-garbage"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestRun(tt.cadence, tt.keys); got != tt.want {
				t.Errorf("LongestRun() = %d, want %d", got, tt.want)
			}
		})
	}
}

func habit(id, name string, cadence models.Cadence) models.Habit {
	return models.Habit{
		ID:        id,
		ProfileID: "p1",
		Name:      name,
		Cadence:   cadence,
		CreatedAt: time.Now(),
		IsActive:  true,
	}
}

func completion(habitID, key string) models.Completion {
	return models.Completion{ID: "c-" + habitID + "-" + key, HabitID: habitID, PeriodKey: key}
}

func TestBestAcross(t *testing.T) {
	t.Run("no habits", func(t *testing.T) {
		best := BestAcross(nil, nil)
		if best != (BestStreak{}) {
			t.Errorf("BestAcross() = %+v, want zero value", best)
		}
	})

	t.Run("habits without completions", func(t *testing.T) {
		habits := []models.Habit{habit("a", "read", models.CadenceDaily)}
		best := BestAcross(habits, nil)
		if best != (BestStreak{}) {
			t.Errorf("BestAcross() = %+v, want zero value", best)
		}
	})

	t.Run("picks the longest streak", func(t *testing.T) {
		habits := []models.Habit{
			habit("a", "read", models.CadenceDaily),
			habit("b", "run", models.CadenceDaily),
		}
		completions := []models.Completion{
			completion("a", "2025-01-01"),
			completion("b", "2025-01-01"),
			completion("b", "2025-01-02"),
			completion("b", "2025-01-03"),
		}
		best := BestAcross(habits, completions)
		if best.HabitID != "b" || best.Length != 3 {
			t.Errorf("BestAcross() = %+v, want habit b with length 3", best)
		}
		if best.HabitName != "run" || best.Cadence != models.CadenceDaily {
			t.Errorf("BestAcross() descriptive fields = %+v", best)
		}
	})

	t.Run("ties break to the lowest habit id", func(t *testing.T) {
		habits := []models.Habit{
			habit("zz", "later", models.CadenceDaily),
			habit("aa", "earlier", models.CadenceDaily),
		}
		completions := []models.Completion{
			completion("zz", "2025-01-01"),
			completion("zz", "2025-01-02"),
			completion("aa", "2025-03-01"),
			completion("aa", "2025-03-02"),
		}
		best := BestAcross(habits, completions)
		if best.HabitID != "aa" {
			t.Errorf("BestAcross() picked habit %q, want aa", best.HabitID)
		}
		if best.Length != 2 {
			t.Errorf("BestAcross() length = %d, want 2", best.Length)
		}
	})

	t.Run("mixed cadences decode independently", func(t *testing.T) {
		habits := []models.Habit{
			habit("d", "journal", models.CadenceDaily),
			habit("w", "review", models.CadenceWeekly),
		}
		completions := []models.Completion{
			completion("d", "2025-01-01"),
			completion("w", "2025-W01"),
			completion("w", "2025-W02"),
			completion("w", "2025-W03"),
		}
		best := BestAcross(habits, completions)
		if best.HabitID != "w" || best.Length != 3 {
			t.Errorf("BestAcross() = %+v, want weekly habit with length 3", best)
		}
	})
}

func TestFilterByCadence(t *testing.T) {
	habits := []models.Habit{
		habit("a", "read", models.CadenceDaily),
		habit("b", "review", models.CadenceWeekly),
		habit("c", "run", models.CadenceDaily),
	}

	daily := FilterByCadence(habits, models.CadenceDaily)
	if len(daily) != 2 || daily[0].ID != "a" || daily[1].ID != "c" {
		t.Errorf("FilterByCadence(daily) = %+v", daily)
	}

	weekly := FilterByCadence(habits, models.CadenceWeekly)
	if len(weekly) != 1 || weekly[0].ID != "b" {
		t.Errorf("FilterByCadence(weekly) = %+v", weekly)
	}
}
