package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/habit"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/validation"
)

// resolve finds a habit by name (preferred) or by ID so commands accept either.
func resolve(engine *habit.Engine, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)

	habits, err := engine.List(habit.ListOptions{})
	if err != nil {
		return models.Habit{}, err
	}
	// Names are unique among active habits case-sensitively, so an exact
	// match wins before the case-insensitive convenience fallback.
	for _, h := range habits {
		if h.Name == ref && h.IsActive {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) && h.IsActive {
			return h, nil
		}
	}
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	return models.Habit{}, &habit.NotFoundError{HabitID: ref}
}

type HabitAddCmd struct {
	Name    string `arg:"" optional:"" help:"Habit name. Prompts when omitted."`
	Cadence string `short:"c" help:"Cadence (daily|weekly). Prompts when omitted."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		err := huh.NewInput().
			Title("What habit do you want to track?").
			Validate(validation.ValidateHabitName).
			Value(&c.Name).
			Run()
		if err != nil {
			return err
		}
	}
	if err := validation.ValidateHabitName(c.Name); err != nil {
		return err
	}

	raw := c.Cadence
	if raw == "" {
		err := huh.NewSelect[string]().
			Title("How often should this habit repeat?").
			Options(
				huh.NewOption("Daily", string(models.CadenceDaily)),
				huh.NewOption("Weekly", string(models.CadenceWeekly)),
			).
			Value(&raw).
			Run()
		if err != nil {
			return err
		}
	}

	cadence, err := models.ParseCadence(raw)
	if err != nil {
		return err
	}

	h, err := ctx.Engine().Create(c.Name, cadence)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s habit: %s\n", h.Cadence, h.Name)
	return nil
}

type HabitListCmd struct {
	All     bool   `help:"Include archived habits."`
	Cadence string `short:"c" help:"Filter by cadence (daily|weekly)."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	opts := habit.ListOptions{ActiveOnly: !c.All}
	if c.Cadence != "" {
		cadence, err := models.ParseCadence(c.Cadence)
		if err != nil {
			return err
		}
		opts.Cadence = cadence
	}

	habits, err := ctx.Engine().List(opts)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with: ritual habit add <name>")
		return nil
	}

	for _, h := range habits {
		status := ""
		if !h.IsActive {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%s (%s)%s\n", h.Name, h.Cadence, status)
	}
	return nil
}

type HabitDoneCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `short:"d" help:"Completion date (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	when, err := validation.ParseDateFlag(c.Date, nil)
	if err != nil {
		return err
	}

	engine := ctx.Engine()
	h, err := resolve(engine, c.Name)
	if err != nil {
		return err
	}

	comp, err := engine.Complete(h.ID, when)
	if err != nil {
		var dup *habit.AlreadyCompletedError
		if errors.As(err, &dup) {
			fmt.Printf("%s is already done for %s.\n", h.Name, dup.PeriodKey)
			return nil
		}
		return err
	}

	fmt.Printf("✓ %s done for %s (+1 XP)\n", h.Name, comp.PeriodKey)
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	engine := ctx.Engine()
	h, err := resolve(engine, c.Name)
	if err != nil {
		return err
	}

	h, err = engine.Archive(h.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s\n", h.Name)
	fmt.Println("Its name is free to reuse. Completions and XP are kept.")
	return nil
}

type HabitDueCmd struct {
	Date string `short:"d" help:"Date to check (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitDueCmd) Run(ctx *cli.Context) error {
	when, err := validation.ParseDateFlag(c.Date, nil)
	if err != nil {
		return err
	}

	due, err := ctx.Engine().Due(when)
	if err != nil {
		return err
	}

	if len(due) == 0 {
		fmt.Println("All caught up. Nothing due.")
		return nil
	}

	for _, h := range due {
		fmt.Printf("%s (%s)\n", h.Name, h.Cadence)
	}
	return nil
}
