package progress

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/habit"
	"github.com/julianstephens/ritual/internal/xp"
)

type XPStatusCmd struct{}

func (c *XPStatusCmd) Run(ctx *cli.Context) error {
	active, err := ctx.Profiles().RequireActive()
	if err != nil {
		return err
	}

	total, err := ctx.Ledger().TotalXP(active.ID)
	if err != nil {
		return err
	}

	level, into, toNext := xp.LevelProgress(total)

	filled := into
	bar := strings.Repeat("█", filled) + strings.Repeat("░", constants.XPPerLevel-filled)

	fmt.Printf("Profile: %s\n", active.Username)
	fmt.Printf("Level %d  [%s]  %d/%d XP into level\n", level, bar, into, constants.XPPerLevel)
	fmt.Printf("Total XP: %d  (%d XP to level %d)\n", total, toNext, level+1)
	return nil
}

type XPLogCmd struct {
	Limit int `short:"n" help:"Maximum number of events to show." default:"20"`
}

func (c *XPLogCmd) Run(ctx *cli.Context) error {
	active, err := ctx.Profiles().RequireActive()
	if err != nil {
		return err
	}

	events, err := ctx.Ledger().Events(active.ID, c.Limit)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No XP earned yet. Complete a habit with: ritual habit done <name>")
		return nil
	}

	habits, err := ctx.Engine().List(habit.ListOptions{})
	if err != nil {
		return err
	}
	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	for _, ev := range events {
		name := names[ev.HabitID]
		if name == "" {
			name = ev.Reason
		}
		fmt.Printf("%s  +%d  %s\n", ev.AwardedAt.Format("2006-01-02 15:04"), ev.Amount, name)
	}
	return nil
}
