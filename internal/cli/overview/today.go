package overview

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/habit"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/period"
	"github.com/julianstephens/ritual/internal/validation"
	"github.com/julianstephens/ritual/internal/xp"
)

type TodayCmd struct {
	Date string `short:"d" help:"Date to summarize (YYYY-MM-DD). Defaults to today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	when, err := validation.ParseDateFlag(c.Date, nil)
	if err != nil {
		return err
	}

	active, err := ctx.Profiles().RequireActive()
	if err != nil {
		return err
	}

	engine := ctx.Engine()
	due, err := engine.Due(when)
	if err != nil {
		return err
	}
	habits, err := engine.List(habit.ListOptions{ActiveOnly: true})
	if err != nil {
		return err
	}

	total, err := ctx.Ledger().TotalXP(active.ID)
	if err != nil {
		return err
	}
	level := xp.Level(total)

	fmt.Printf("%s | %s (level %d, %d XP)\n\n", when.Format("Mon Jan 2 2006"), active.Username, level, total)

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with: ritual habit add <name>")
		return nil
	}

	done := doneSet(habits, due)
	for _, h := range habits {
		mark := "[ ]"
		if done[h.ID] {
			mark = "[x]"
		}
		label := string(h.Cadence)
		if h.Cadence == models.CadenceWeekly {
			label = fmt.Sprintf("week %s", period.Key(when, h.Cadence))
		}
		fmt.Printf("  %s %s (%s)\n", mark, h.Name, label)
	}

	if len(due) == 0 {
		fmt.Println("\nAll caught up. Nothing due.")
	} else {
		fmt.Printf("\n%d habit(s) still due. Mark one with: ritual habit done <name>\n", len(due))
	}
	return nil
}

// doneSet marks the active habits that are not in the due list as completed
// for the period.
func doneSet(habits, due []models.Habit) map[string]bool {
	pending := make(map[string]bool, len(due))
	for _, h := range due {
		pending[h.ID] = true
	}
	done := make(map[string]bool, len(habits))
	for _, h := range habits {
		done[h.ID] = !pending[h.ID]
	}
	return done
}
