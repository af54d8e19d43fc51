package stats

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ritual/internal/analytics"
	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/habit"
	"github.com/julianstephens/ritual/internal/models"
)

func periodKeysByHabit(completions []models.Completion) map[string][]string {
	keys := make(map[string][]string)
	for _, comp := range completions {
		keys[comp.HabitID] = append(keys[comp.HabitID], comp.PeriodKey)
	}
	return keys
}

type StatsHabitsCmd struct {
	All     bool   `help:"Include archived habits."`
	Cadence string `short:"c" help:"Filter by cadence (daily|weekly)."`
}

func (c *StatsHabitsCmd) Run(ctx *cli.Context) error {
	engine := ctx.Engine()

	opts := habit.ListOptions{ActiveOnly: !c.All}
	if c.Cadence != "" {
		cadence, err := models.ParseCadence(c.Cadence)
		if err != nil {
			return err
		}
		opts.Cadence = cadence
	}

	habits, err := engine.List(opts)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	completions, err := engine.Completions(ids)
	if err != nil {
		return err
	}
	keys := periodKeysByHabit(completions)

	fmt.Printf("%-30s %-8s %12s %15s\n", "HABIT", "CADENCE", "COMPLETIONS", "LONGEST STREAK")
	for _, h := range habits {
		run := analytics.LongestRun(h.Cadence, keys[h.ID])
		fmt.Printf("%-30s %-8s %12d %15d\n", h.Name, h.Cadence, len(keys[h.ID]), run)
	}
	return nil
}

type StatsStreakCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *StatsStreakCmd) Run(ctx *cli.Context) error {
	engine := ctx.Engine()

	habits, err := engine.List(habit.ListOptions{})
	if err != nil {
		return err
	}

	var target models.Habit
	found := false
	for _, h := range habits {
		if strings.EqualFold(h.Name, c.Name) || h.ID == c.Name {
			target = h
			found = true
			break
		}
	}
	if !found {
		return &habit.NotFoundError{HabitID: c.Name}
	}

	completions, err := engine.Completions([]string{target.ID})
	if err != nil {
		return err
	}
	keys := periodKeysByHabit(completions)

	run := analytics.LongestRun(target.Cadence, keys[target.ID])
	unit := "day"
	if target.Cadence == models.CadenceWeekly {
		unit = "week"
	}
	if run != 1 {
		unit += "s"
	}
	fmt.Printf("%s: longest streak of %d %s (%d completions)\n", target.Name, run, unit, len(keys[target.ID]))
	return nil
}

type StatsBestCmd struct {
	Cadence string `short:"c" help:"Only consider habits with this cadence (daily|weekly)."`
}

func (c *StatsBestCmd) Run(ctx *cli.Context) error {
	engine := ctx.Engine()

	habits, err := engine.List(habit.ListOptions{})
	if err != nil {
		return err
	}
	if c.Cadence != "" {
		cadence, err := models.ParseCadence(c.Cadence)
		if err != nil {
			return err
		}
		habits = analytics.FilterByCadence(habits, cadence)
	}
	if len(habits) == 0 {
		fmt.Println("No habits to rank.")
		return nil
	}

	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	completions, err := engine.Completions(ids)
	if err != nil {
		return err
	}

	best := analytics.BestAcross(habits, completions)
	if best.Length == 0 {
		fmt.Println("No streaks yet. Complete a habit with: ritual habit done <name>")
		return nil
	}

	fmt.Printf("Best streak: %s (%s), %d in a row\n", best.HabitName, best.Cadence, best.Length)
	return nil
}
